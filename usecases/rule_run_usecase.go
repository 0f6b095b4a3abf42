package usecases

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories"
	"github.com/deskhive/deskhive-backend/usecases/automation"
	"github.com/deskhive/deskhive-backend/utils"
)

type executorFactory interface {
	NewExecutor() repositories.Executor
	Transaction(ctx context.Context, fn func(tx repositories.Executor) error) error
}

type automationRuleRepository interface {
	GetAutomationRule(ctx context.Context, exec repositories.Executor,
		ruleId uuid.UUID) (models.AutomationRule, error)
}

type ruleRunLedger interface {
	CreateRuleRun(ctx context.Context, exec repositories.Executor, run models.RuleRun) error
	GetRuleRun(ctx context.Context, exec repositories.Executor, runId uuid.UUID) (models.RuleRun, error)
	GetRuleRunByIdempotencyKey(ctx context.Context, exec repositories.Executor,
		ruleId uuid.UUID, idempotencyKey string) (*models.RuleRun, error)
	FinalizeRuleRun(ctx context.Context, exec repositories.Executor, runId uuid.UUID,
		status models.RuleRunStatus, resultPayload map[string]any, errorMessage *string) error
	CreateRunStep(ctx context.Context, exec repositories.Executor, step models.RunStep) error
	ListRunSteps(ctx context.Context, exec repositories.Executor, runId uuid.UUID) ([]models.RunStep, error)
}

type tenantAdminChecker interface {
	HasTenantAdmin(ctx context.Context, exec repositories.Executor,
		userId uuid.UUID, tenantId uuid.UUID) (bool, error)
}

type actionDispatcher interface {
	DispatchAction(ctx context.Context, exec repositories.Executor,
		rule models.AutomationRule, run models.RuleRun,
		action models.AutomationAction) (automation.ActionOutcome, error)
}

type RuleRunUsecase struct {
	executorFactory executorFactory
	ruleRepository  automationRuleRepository
	runLedger       ruleRunLedger
	adminChecker    tenantAdminChecker
	dispatcher      actionDispatcher
}

type InvokeRuleInput struct {
	RuleId         uuid.UUID
	Caller         models.Caller
	DryRun         bool
	SourcePayload  map[string]any
	IdempotencyKey *string
	TriggerSource  models.TriggerSource
}

type RuleRunResult struct {
	RunId  uuid.UUID
	Status models.RuleRunStatus
	// Reused is set when an idempotent replay short-circuited the invocation
	// and the returned run is the previously created one.
	Reused bool
}

// InvokeRule evaluates one rule against one payload, synchronously, to
// completion or failure: authorize, load the rule, replay on idempotency key,
// create the run, evaluate conditions, execute actions in order, finalize.
// Actions completed before a fatal error remain applied: there is no
// rollback, the run and step records are the faithful record of what
// happened.
func (uc RuleRunUsecase) InvokeRule(ctx context.Context, input InvokeRuleInput) (RuleRunResult, error) {
	exec := uc.executorFactory.NewExecutor()

	if input.Caller == nil {
		return RuleRunResult{}, errors.Wrap(models.UnAuthorizedError, "no caller identity")
	}

	rule, err := uc.ruleRepository.GetAutomationRule(ctx, exec, input.RuleId)
	if err != nil {
		return RuleRunResult{}, err
	}

	if err := uc.authorizeCaller(ctx, exec, input.Caller, rule.TenantId); err != nil {
		return RuleRunResult{}, err
	}

	// Dry-running a disabled rule is allowed, really executing it is not.
	if !rule.Enabled && !input.DryRun {
		return RuleRunResult{}, errors.Wrapf(models.ErrAutomationRuleDisabled, "rule %s", rule.Id)
	}

	if input.IdempotencyKey != nil && *input.IdempotencyKey != "" {
		existing, err := uc.runLedger.GetRuleRunByIdempotencyKey(ctx, exec, rule.Id, *input.IdempotencyKey)
		if err != nil {
			return RuleRunResult{}, err
		}
		if existing != nil {
			return RuleRunResult{RunId: existing.Id, Status: existing.Status, Reused: true}, nil
		}
	}

	payload := input.SourcePayload
	if payload == nil {
		payload = map[string]any{}
	}

	run := models.RuleRun{
		Id:             uuid.New(),
		RuleId:         rule.Id,
		TenantId:       rule.TenantId,
		Status:         models.RuleRunStatusRunning,
		TriggerSource:  input.TriggerSource,
		DryRun:         input.DryRun,
		IdempotencyKey: input.IdempotencyKey,
		InputPayload:   payload,
	}
	if err := uc.runLedger.CreateRuleRun(ctx, exec, run); err != nil {
		// A concurrent invocation with the same idempotency key won the
		// insert race: converge on its run.
		if repositories.IsUniqueViolationError(err) && input.IdempotencyKey != nil {
			existing, lookupErr := uc.runLedger.GetRuleRunByIdempotencyKey(ctx, exec, rule.Id, *input.IdempotencyKey)
			if lookupErr == nil && existing != nil {
				return RuleRunResult{RunId: existing.Id, Status: existing.Status, Reused: true}, nil
			}
		}
		return RuleRunResult{}, err
	}

	if !automation.EvaluateConditions(payload, rule.Conditions) {
		return uc.finalizeConditionsNotMet(ctx, exec, run)
	}

	if err := uc.executeActions(ctx, exec, rule, run); err != nil {
		uc.finalizeFailure(ctx, run, err)
		return RuleRunResult{}, err
	}

	status := models.RuleRunStatusSuccess
	if run.DryRun {
		status = models.RuleRunStatusDryRun
	}
	result := map[string]any{
		"conditions_matched": true,
		"action_count":       len(rule.Actions),
	}
	if err := uc.runLedger.FinalizeRuleRun(ctx, exec, run.Id, status, result, nil); err != nil {
		return RuleRunResult{}, err
	}

	return RuleRunResult{RunId: run.Id, Status: status}, nil
}

func (uc RuleRunUsecase) authorizeCaller(
	ctx context.Context,
	exec repositories.Executor,
	caller models.Caller,
	tenantId uuid.UUID,
) error {
	switch c := caller.(type) {
	case models.TrustedCaller:
		return nil
	case models.AuthenticatedCaller:
		isAdmin, err := uc.adminChecker.HasTenantAdmin(ctx, exec, c.UserId, tenantId)
		if err != nil {
			return err
		}
		if !isAdmin {
			return errors.Wrap(models.ForbiddenError, "caller is not an administrator of the rule's tenant")
		}
		return nil
	default:
		return errors.Wrap(models.UnAuthorizedError, "unknown caller identity")
	}
}

// finalizeConditionsNotMet records the single condition-check step and closes
// the run as a successful skip. No action is ever dispatched on this path.
func (uc RuleRunUsecase) finalizeConditionsNotMet(
	ctx context.Context,
	exec repositories.Executor,
	run models.RuleRun,
) (RuleRunResult, error) {
	step := models.RunStep{
		Id:            uuid.New(),
		RunId:         run.Id,
		TenantId:      run.TenantId,
		StepOrder:     models.StepOrderConditionCheck,
		StepType:      models.StepTypeConditionCheck,
		Status:        models.StepStatusSkipped,
		InputPayload:  run.InputPayload,
		ResultPayload: map[string]any{"matches": false},
	}
	if err := uc.runLedger.CreateRunStep(ctx, exec, step); err != nil {
		return RuleRunResult{}, err
	}

	result := map[string]any{"skipped": true, "reason": "conditions_not_met"}
	if err := uc.runLedger.FinalizeRuleRun(ctx, exec, run.Id, models.RuleRunStatusSuccess, result, nil); err != nil {
		return RuleRunResult{}, err
	}
	return RuleRunResult{RunId: run.Id, Status: models.RuleRunStatusSuccess}, nil
}

// executeActions runs the rule's actions strictly in list order. A malformed
// action is recorded as a skipped step and the run continues; any error is
// fatal and aborts the loop with no step written for the failing action.
func (uc RuleRunUsecase) executeActions(
	ctx context.Context,
	exec repositories.Executor,
	rule models.AutomationRule,
	run models.RuleRun,
) error {
	for i, action := range rule.Actions {
		step := models.RunStep{
			Id:           uuid.New(),
			RunId:        run.Id,
			TenantId:     run.TenantId,
			StepOrder:    models.StepOrderFirstAction + i,
			StepType:     models.StepTypeForAction(action.Kind()),
			InputPayload: actionInputPayload(action),
		}

		if run.DryRun {
			step.Status = models.StepStatusSuccess
			step.ResultPayload = map[string]any{"dry_run": true}
			if err := uc.runLedger.CreateRunStep(ctx, exec, step); err != nil {
				return err
			}
			continue
		}

		outcome, err := uc.dispatcher.DispatchAction(ctx, exec, rule, run, action)
		if err != nil {
			return err
		}

		step.Status = outcome.Status
		step.ResultPayload = outcome.Result
		if err := uc.runLedger.CreateRunStep(ctx, exec, step); err != nil {
			return err
		}
	}
	return nil
}

// finalizeFailure writes the terminal failed status and the synthetic
// order-999 executor_error step in one transaction. It is best effort: the
// original error is what the caller gets either way.
func (uc RuleRunUsecase) finalizeFailure(ctx context.Context, run models.RuleRun, cause error) {
	err := uc.executorFactory.Transaction(ctx, func(tx repositories.Executor) error {
		errorMessage := cause.Error()
		if err := uc.runLedger.FinalizeRuleRun(ctx, tx, run.Id,
			models.RuleRunStatusFailed, nil, &errorMessage); err != nil {
			return err
		}
		return uc.runLedger.CreateRunStep(ctx, tx, models.RunStep{
			Id:           uuid.New(),
			RunId:        run.Id,
			TenantId:     run.TenantId,
			StepOrder:    models.StepOrderExecutorError,
			StepType:     models.StepTypeExecutorError,
			Status:       models.StepStatusFailed,
			InputPayload: map[string]any{},
			ErrorMessage: &errorMessage,
		})
	})
	if err != nil {
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "could not finalize failed run",
			"run_id", run.Id.String(), "error", err.Error())
	}
}

// GetRuleRunWithSteps returns the audit trail of a run, scoped to the
// caller's rights on the run's tenant.
func (uc RuleRunUsecase) GetRuleRunWithSteps(
	ctx context.Context,
	caller models.Caller,
	runId uuid.UUID,
) (models.RuleRunWithSteps, error) {
	exec := uc.executorFactory.NewExecutor()

	if caller == nil {
		return models.RuleRunWithSteps{}, errors.Wrap(models.UnAuthorizedError, "no caller identity")
	}

	run, err := uc.runLedger.GetRuleRun(ctx, exec, runId)
	if err != nil {
		return models.RuleRunWithSteps{}, err
	}

	if err := uc.authorizeCaller(ctx, exec, caller, run.TenantId); err != nil {
		return models.RuleRunWithSteps{}, err
	}

	steps, err := uc.runLedger.ListRunSteps(ctx, exec, runId)
	if err != nil {
		return models.RuleRunWithSteps{}, err
	}

	return models.RuleRunWithSteps{RuleRun: run, Steps: steps}, nil
}

// actionInputPayload captures the action's parameters as the step's input,
// so the audit trail shows what the action was asked to do.
func actionInputPayload(action models.AutomationAction) map[string]any {
	serialized, err := json.Marshal(action)
	if err != nil {
		return map[string]any{"kind": action.Kind().String()}
	}

	payload := map[string]any{}
	if err := json.Unmarshal(serialized, &payload); err != nil {
		return map[string]any{"kind": action.Kind().String()}
	}
	payload["kind"] = action.Kind().String()
	return payload
}
