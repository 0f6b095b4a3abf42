package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories/dbmodels"
)

// CreateRuleRun inserts a new run with status running. A partial unique index
// on (rule_id, idempotency_key) guards against concurrent duplicate
// invocations: callers must map a unique violation to the idempotent-replay
// response.
func (repo DeskhiveDbRepository) CreateRuleRun(
	ctx context.Context,
	exec Executor,
	run models.RuleRun,
) error {
	_, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_RULE_RUNS).
			Columns(
				"id",
				"rule_id",
				"tenant_id",
				"status",
				"trigger_source",
				"dry_run",
				"idempotency_key",
				"input_payload",
			).
			Values(
				run.Id,
				run.RuleId,
				run.TenantId,
				run.Status.String(),
				run.TriggerSource.String(),
				run.DryRun,
				run.IdempotencyKey,
				run.InputPayload,
			),
	)
	return err
}

func (repo DeskhiveDbRepository) GetRuleRun(
	ctx context.Context,
	exec Executor,
	runId uuid.UUID,
) (models.RuleRun, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRuleRunColumns...).
			From(dbmodels.TABLE_RULE_RUNS).
			Where(squirrel.Eq{"id": runId}),
		dbmodels.AdaptRuleRun,
	)
}

// GetRuleRunByIdempotencyKey returns the run previously created for this
// (rule, key) pair, or nil if this is the first invocation with the key.
func (repo DeskhiveDbRepository) GetRuleRunByIdempotencyKey(
	ctx context.Context,
	exec Executor,
	ruleId uuid.UUID,
	idempotencyKey string,
) (*models.RuleRun, error) {
	return SqlToOptionalModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRuleRunColumns...).
			From(dbmodels.TABLE_RULE_RUNS).
			Where(squirrel.Eq{
				"rule_id":         ruleId,
				"idempotency_key": idempotencyKey,
			}),
		dbmodels.AdaptRuleRun,
	)
}

// FinalizeRuleRun performs the single running -> terminal transition of a
// run. Finalizing a run that is not running anymore is a conflict.
func (repo DeskhiveDbRepository) FinalizeRuleRun(
	ctx context.Context,
	exec Executor,
	runId uuid.UUID,
	status models.RuleRunStatus,
	resultPayload map[string]any,
	errorMessage *string,
) error {
	tag, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(dbmodels.TABLE_RULE_RUNS).
			Set("status", status.String()).
			Set("result_payload", resultPayload).
			Set("error_message", errorMessage).
			Set("finished_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{
				"id":     runId,
				"status": models.RuleRunStatusRunning.String(),
			}),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(models.ErrRunAlreadyFinalized, "run %s", runId)
	}
	return nil
}

// CreateRunStep appends one audit record to the run. Steps are append-only.
func (repo DeskhiveDbRepository) CreateRunStep(
	ctx context.Context,
	exec Executor,
	step models.RunStep,
) error {
	_, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_RUN_STEPS).
			Columns(
				"id",
				"run_id",
				"tenant_id",
				"step_order",
				"step_type",
				"status",
				"input_payload",
				"result_payload",
				"error_message",
			).
			Values(
				step.Id,
				step.RunId,
				step.TenantId,
				step.StepOrder,
				string(step.StepType),
				step.Status.String(),
				step.InputPayload,
				step.ResultPayload,
				step.ErrorMessage,
			),
	)
	return err
}

func (repo DeskhiveDbRepository) ListRunSteps(
	ctx context.Context,
	exec Executor,
	runId uuid.UUID,
) ([]models.RunStep, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectRunStepColumns...).
			From(dbmodels.TABLE_RUN_STEPS).
			Where(squirrel.Eq{"run_id": runId}).
			OrderBy("step_order"),
		dbmodels.AdaptRunStep,
	)
}
