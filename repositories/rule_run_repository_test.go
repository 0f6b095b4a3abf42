package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/deskhive/deskhive-backend/models"
)

var ruleRunColumns = []string{
	"id", "rule_id", "tenant_id", "status", "trigger_source", "dry_run",
	"idempotency_key", "input_payload", "result_payload", "error_message",
	"created_at", "started_at", "finished_at",
}

func TestCreateRuleRun(t *testing.T) {
	repo := DeskhiveDbRepository{}
	run := models.RuleRun{
		Id:            uuid.New(),
		RuleId:        uuid.New(),
		TenantId:      uuid.New(),
		Status:        models.RuleRunStatusRunning,
		TriggerSource: models.TriggerSourceManual,
		InputPayload:  map[string]any{"status": "late"},
	}

	t.Run("nominal", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectExec("INSERT INTO automation_rule_runs").
			WithArgs(run.Id, run.RuleId, run.TenantId, "running", "manual",
				false, (*string)(nil), run.InputPayload).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err = repo.CreateRuleRun(context.Background(), mock, run)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate idempotency key surfaces as a unique violation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectExec("INSERT INTO automation_rule_runs").
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err = repo.CreateRuleRun(context.Background(), mock, run)
		assert.Error(t, err)
		assert.True(t, IsUniqueViolationError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetRuleRun(t *testing.T) {
	repo := DeskhiveDbRepository{}
	runId := uuid.New()

	t.Run("nominal", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		createdAt := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT .* FROM automation_rule_runs").
			WithArgs(runId).
			WillReturnRows(pgxmock.NewRows(ruleRunColumns).AddRow(
				runId, uuid.New(), uuid.New(), "success", "scheduled", false,
				(*string)(nil), map[string]any{"status": "late"},
				map[string]any{"conditions_matched": true}, (*string)(nil),
				createdAt, createdAt, (*time.Time)(nil),
			))

		run, err := repo.GetRuleRun(context.Background(), mock, runId)
		assert.NoError(t, err)
		assert.Equal(t, runId, run.Id)
		assert.Equal(t, models.RuleRunStatusSuccess, run.Status)
		assert.Equal(t, models.TriggerSourceScheduled, run.TriggerSource)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery("SELECT .* FROM automation_rule_runs").
			WithArgs(runId).
			WillReturnRows(pgxmock.NewRows(ruleRunColumns))

		_, err = repo.GetRuleRun(context.Background(), mock, runId)
		assert.ErrorIs(t, err, models.NotFoundError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetRuleRunByIdempotencyKey(t *testing.T) {
	repo := DeskhiveDbRepository{}
	ruleId := uuid.New()

	t.Run("no previous run returns nil", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery("SELECT .* FROM automation_rule_runs").
			WithArgs("trigger-42", ruleId).
			WillReturnRows(pgxmock.NewRows(ruleRunColumns))

		run, err := repo.GetRuleRunByIdempotencyKey(context.Background(), mock, ruleId, "trigger-42")
		assert.NoError(t, err)
		assert.Nil(t, run)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFinalizeRuleRun(t *testing.T) {
	repo := DeskhiveDbRepository{}
	runId := uuid.New()
	result := map[string]any{"conditions_matched": true, "action_count": 2}

	t.Run("nominal", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectExec("UPDATE automation_rule_runs").
			WithArgs("success", result, (*string)(nil), runId, "running").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.FinalizeRuleRun(context.Background(), mock, runId,
			models.RuleRunStatusSuccess, result, nil)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already finalized run is a conflict", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectExec("UPDATE automation_rule_runs").
			WithArgs("success", result, (*string)(nil), runId, "running").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err = repo.FinalizeRuleRun(context.Background(), mock, runId,
			models.RuleRunStatusSuccess, result, nil)
		assert.ErrorIs(t, err, models.ErrRunAlreadyFinalized)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateRunStep(t *testing.T) {
	repo := DeskhiveDbRepository{}
	step := models.RunStep{
		Id:            uuid.New(),
		RunId:         uuid.New(),
		TenantId:      uuid.New(),
		StepOrder:     1,
		StepType:      models.StepTypeForAction(models.ActionKindCreateTask),
		Status:        models.StepStatusSuccess,
		InputPayload:  map[string]any{"kind": "create_task", "title": "restock"},
		ResultPayload: map[string]any{"task_title": "restock"},
	}

	t.Run("nominal", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectExec("INSERT INTO automation_rule_run_steps").
			WithArgs(step.Id, step.RunId, step.TenantId, 1, "create_task", "success",
				step.InputPayload, step.ResultPayload, (*string)(nil)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err = repo.CreateRunStep(context.Background(), mock, step)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListRunSteps(t *testing.T) {
	repo := DeskhiveDbRepository{}
	runId := uuid.New()
	tenantId := uuid.New()
	createdAt := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)

	stepColumns := []string{
		"id", "run_id", "tenant_id", "step_order", "step_type", "status",
		"input_payload", "result_payload", "error_message", "created_at",
	}

	t.Run("nominal", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		if err != nil {
			t.Fatal(err)
		}
		defer mock.Close()

		mock.ExpectQuery("SELECT .* FROM automation_rule_run_steps").
			WithArgs(runId).
			WillReturnRows(pgxmock.NewRows(stepColumns).
				AddRow(uuid.New(), runId, tenantId, 1, "create_notification", "success",
					map[string]any{}, map[string]any{}, (*string)(nil), createdAt).
				AddRow(uuid.New(), runId, tenantId, 2, "create_task", "skipped",
					map[string]any{}, map[string]any{"skipped": true}, (*string)(nil), createdAt))

		steps, err := repo.ListRunSteps(context.Background(), mock, runId)
		assert.NoError(t, err)
		assert.Len(t, steps, 2)
		assert.Equal(t, 1, steps[0].StepOrder)
		assert.Equal(t, models.StepStatusSkipped, steps[1].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
