package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories/dbmodels"
)

// GetAutomationRule loads a rule with its ordered conditions and actions.
// The rule is read once per invocation and treated as immutable for the
// duration of the run.
func (repo DeskhiveDbRepository) GetAutomationRule(
	ctx context.Context,
	exec Executor,
	ruleId uuid.UUID,
) (models.AutomationRule, error) {
	rule, err := SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectAutomationRuleColumns...).
			From(dbmodels.TABLE_AUTOMATION_RULES).
			Where(squirrel.Eq{"id": ruleId}),
		dbmodels.AdaptAutomationRule,
	)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return models.AutomationRule{}, errors.Wrapf(models.ErrAutomationRuleNotFound, "rule %s", ruleId)
		}
		return models.AutomationRule{}, err
	}

	rule.Conditions, err = SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRuleConditionColumns...).
			From(dbmodels.TABLE_AUTOMATION_RULE_CONDITIONS).
			Where(squirrel.Eq{"rule_id": ruleId}).
			OrderBy("condition_order"),
		dbmodels.AdaptRuleCondition,
	)
	if err != nil {
		return models.AutomationRule{}, errors.Wrap(err, "could not load rule conditions")
	}

	rule.Actions, err = SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRuleActionColumns...).
			From(dbmodels.TABLE_AUTOMATION_RULE_ACTIONS).
			Where(squirrel.Eq{"rule_id": ruleId}).
			OrderBy("action_order"),
		dbmodels.AdaptRuleAction,
	)
	if err != nil {
		return models.AutomationRule{}, errors.Wrap(err, "could not load rule actions")
	}

	return rule, nil
}
