package dbmodels

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/utils"
)

type DbAutomationRule struct {
	Id       uuid.UUID `db:"id"`
	TenantId uuid.UUID `db:"tenant_id"`
	Name     string    `db:"name"`
	Enabled  bool      `db:"enabled"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

type DbRuleCondition struct {
	Id             uuid.UUID `db:"id"`
	RuleId         uuid.UUID `db:"rule_id"`
	ConditionOrder int       `db:"condition_order"`
	Field          string    `db:"field"`
	Operator       string    `db:"operator"`
	Value          string    `db:"value"`

	CreatedAt time.Time `db:"created_at"`
}

type DbRuleAction struct {
	Id          uuid.UUID       `db:"id"`
	RuleId      uuid.UUID       `db:"rule_id"`
	ActionOrder int             `db:"action_order"`
	Kind        string          `db:"kind"`
	Params      json.RawMessage `db:"params"`

	CreatedAt time.Time `db:"created_at"`
}

const TABLE_AUTOMATION_RULES = "automation_rules"
const TABLE_AUTOMATION_RULE_CONDITIONS = "automation_rule_conditions"
const TABLE_AUTOMATION_RULE_ACTIONS = "automation_rule_actions"

var SelectAutomationRuleColumns = utils.ColumnList[DbAutomationRule]()
var SelectRuleConditionColumns = utils.ColumnList[DbRuleCondition]()
var SelectRuleActionColumns = utils.ColumnList[DbRuleAction]()

func AdaptRuleCondition(db DbRuleCondition) (models.RuleCondition, error) {
	return models.RuleCondition{
		Field:    db.Field,
		Operator: models.ConditionOperatorFromString(db.Operator),
		Value:    db.Value,
	}, nil
}

func AdaptRuleAction(db DbRuleAction) (models.AutomationAction, error) {
	return models.ParseAutomationAction(db.Kind, db.Params)
}

func AdaptAutomationRule(db DbAutomationRule) (models.AutomationRule, error) {
	return models.AutomationRule{
		Id:        db.Id,
		TenantId:  db.TenantId,
		Name:      db.Name,
		Enabled:   db.Enabled,
		CreatedAt: db.CreatedAt,
		UpdatedAt: db.UpdatedAt,
	}, nil
}
