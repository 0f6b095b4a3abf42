package automation

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories"
	"github.com/deskhive/deskhive-backend/utils"
)

const dueDateLayout = "2006-01-02"

// Skip reasons recorded on the step when an action is malformed.
const (
	SkipReasonMissingTargetUserId = "missing_target_user_id"
	SkipReasonMissingPayload      = "missing_payload"
	SkipReasonMissingTitle        = "missing_title"
)

type notificationCreator interface {
	CreateNotification(ctx context.Context, exec repositories.Executor,
		attrs models.CreateNotificationAttributes) error
}

type entityStatusUpdater interface {
	UpdateEntityStatus(ctx context.Context, exec repositories.Executor,
		table string, recordId string, tenantId uuid.UUID, status string) (int64, error)
}

type taskInserter interface {
	InsertTask(ctx context.Context, exec repositories.Executor,
		attrs models.CreateTaskAttributes) error
}

// Dispatcher executes one action against the collaborator stores. Its
// contract is three-way: the action is executed, or it is malformed and
// skipped without touching any collaborator, or the call fails and the error
// propagates so that the caller aborts the run.
type Dispatcher struct {
	notificationCreator notificationCreator
	entityStatusUpdater entityStatusUpdater
	taskInserter        taskInserter
}

func NewDispatcher(
	notificationCreator notificationCreator,
	entityStatusUpdater entityStatusUpdater,
	taskInserter taskInserter,
) Dispatcher {
	return Dispatcher{
		notificationCreator: notificationCreator,
		entityStatusUpdater: entityStatusUpdater,
		taskInserter:        taskInserter,
	}
}

// ActionOutcome is the non-error result of a dispatch: either the action was
// executed (StepStatusSuccess) or it was malformed and skipped
// (StepStatusSkipped), in which case the run continues with the next action.
type ActionOutcome struct {
	Status models.StepStatus
	Result map[string]any
}

func skipped(reason string) ActionOutcome {
	return ActionOutcome{
		Status: models.StepStatusSkipped,
		Result: map[string]any{"skipped": true, "reason": reason},
	}
}

func executed(result map[string]any) ActionOutcome {
	return ActionOutcome{
		Status: models.StepStatusSuccess,
		Result: result,
	}
}

func (d Dispatcher) DispatchAction(
	ctx context.Context,
	exec repositories.Executor,
	rule models.AutomationRule,
	run models.RuleRun,
	action models.AutomationAction,
) (ActionOutcome, error) {
	switch a := action.(type) {
	case models.CreateNotificationAction:
		return d.createNotification(ctx, exec, rule, run, a)
	case models.UpdateRecordStatusAction:
		return d.updateRecordStatus(ctx, exec, rule, a)
	case models.CreateTaskAction:
		return d.createTask(ctx, exec, rule, a)
	default:
		// The union is closed in models: reaching this is a programming error.
		return ActionOutcome{}, errors.Newf("unhandled automation action kind %q", action.Kind())
	}
}

func (d Dispatcher) createNotification(
	ctx context.Context,
	exec repositories.Executor,
	rule models.AutomationRule,
	run models.RuleRun,
	action models.CreateNotificationAction,
) (ActionOutcome, error) {
	if strings.TrimSpace(action.TargetUserId) == "" {
		return skipped(SkipReasonMissingTargetUserId), nil
	}

	targetUserId, err := uuid.Parse(action.TargetUserId)
	if err != nil {
		return ActionOutcome{}, errors.Wrapf(err, "invalid target_user_id %q", action.TargetUserId)
	}

	err = d.notificationCreator.CreateNotification(ctx, exec, models.CreateNotificationAttributes{
		TenantId: rule.TenantId,
		UserId:   targetUserId,
		Type:     models.NotificationTypeAutomationRule,
		Title:    action.Title,
		Message:  action.Message,
		Data: map[string]any{
			"rule_id": rule.Id.String(),
			"run_id":  run.Id.String(),
		},
		Priority: models.NotificationPriorityMedium,
	})
	if err != nil {
		return ActionOutcome{}, errors.Wrap(err, "error creating notification")
	}

	return executed(map[string]any{"notified_user_id": targetUserId.String()}), nil
}

func (d Dispatcher) updateRecordStatus(
	ctx context.Context,
	exec repositories.Executor,
	rule models.AutomationRule,
	action models.UpdateRecordStatusAction,
) (ActionOutcome, error) {
	if action.Table == "" || action.RecordId == "" || action.Status == "" {
		return skipped(SkipReasonMissingPayload), nil
	}

	// An unknown table is a capability violation, not a malformed action: it
	// aborts the run.
	if !models.StatusTableAllowed(action.Table) {
		return ActionOutcome{}, errors.Wrapf(models.ErrStatusTableNotAllowed, "table %q", action.Table)
	}

	rowsAffected, err := d.entityStatusUpdater.UpdateEntityStatus(
		ctx, exec, action.Table, action.RecordId, rule.TenantId, action.Status)
	if err != nil {
		return ActionOutcome{}, errors.Wrapf(err, "error updating status of %s %s", action.Table, action.RecordId)
	}
	if rowsAffected == 0 {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "update_record_status matched no row",
			"table", action.Table, "record_id", action.RecordId, "tenant_id", rule.TenantId.String())
	}

	return executed(map[string]any{
		"table":         action.Table,
		"record_id":     action.RecordId,
		"status":        action.Status,
		"rows_affected": rowsAffected,
	}), nil
}

func (d Dispatcher) createTask(
	ctx context.Context,
	exec repositories.Executor,
	rule models.AutomationRule,
	action models.CreateTaskAction,
) (ActionOutcome, error) {
	title := strings.TrimSpace(action.Title)
	if title == "" {
		return skipped(SkipReasonMissingTitle), nil
	}

	var dueDate *time.Time
	if action.DueDate.Valid && action.DueDate.String != "" {
		parsed, err := time.Parse(dueDateLayout, action.DueDate.String)
		if err == nil {
			dueDate = &parsed
		} else {
			utils.LoggerFromContext(ctx).WarnContext(ctx, "ignoring unparsable task due_date",
				"due_date", action.DueDate.String, "rule_id", rule.Id.String())
		}
	}

	err := d.taskInserter.InsertTask(ctx, exec, models.CreateTaskAttributes{
		TenantId:    rule.TenantId,
		Title:       title,
		Description: action.Description.Ptr(),
		Status:      models.TaskStatusTodo,
		Priority:    action.Priority,
		Category:    action.Category,
		DueDate:     dueDate,
		AssignedTo:  action.AssignedTo.Ptr(),
	})
	if err != nil {
		return ActionOutcome{}, errors.Wrap(err, "error inserting task")
	}

	return executed(map[string]any{"task_title": title}), nil
}
