package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/utils"
)

type DbRuleRun struct {
	Id             uuid.UUID      `db:"id"`
	RuleId         uuid.UUID      `db:"rule_id"`
	TenantId       uuid.UUID      `db:"tenant_id"`
	Status         string         `db:"status"`
	TriggerSource  string         `db:"trigger_source"`
	DryRun         bool           `db:"dry_run"`
	IdempotencyKey *string        `db:"idempotency_key"`
	InputPayload   map[string]any `db:"input_payload"`
	ResultPayload  map[string]any `db:"result_payload"`
	ErrorMessage   *string        `db:"error_message"`

	CreatedAt  time.Time  `db:"created_at"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
}

type DbRunStep struct {
	Id            uuid.UUID      `db:"id"`
	RunId         uuid.UUID      `db:"run_id"`
	TenantId      uuid.UUID      `db:"tenant_id"`
	StepOrder     int            `db:"step_order"`
	StepType      string         `db:"step_type"`
	Status        string         `db:"status"`
	InputPayload  map[string]any `db:"input_payload"`
	ResultPayload map[string]any `db:"result_payload"`
	ErrorMessage  *string        `db:"error_message"`

	CreatedAt time.Time `db:"created_at"`
}

const TABLE_RULE_RUNS = "automation_rule_runs"
const TABLE_RUN_STEPS = "automation_rule_run_steps"

var SelectRuleRunColumns = utils.ColumnList[DbRuleRun]()
var SelectRunStepColumns = utils.ColumnList[DbRunStep]()

func AdaptRuleRun(db DbRuleRun) (models.RuleRun, error) {
	return models.RuleRun{
		Id:             db.Id,
		RuleId:         db.RuleId,
		TenantId:       db.TenantId,
		Status:         models.RuleRunStatusFromString(db.Status),
		TriggerSource:  models.TriggerSource(db.TriggerSource),
		DryRun:         db.DryRun,
		IdempotencyKey: db.IdempotencyKey,
		InputPayload:   db.InputPayload,
		ResultPayload:  db.ResultPayload,
		ErrorMessage:   db.ErrorMessage,
		CreatedAt:      db.CreatedAt,
		StartedAt:      db.StartedAt,
		FinishedAt:     db.FinishedAt,
	}, nil
}

func AdaptRunStep(db DbRunStep) (models.RunStep, error) {
	return models.RunStep{
		Id:            db.Id,
		RunId:         db.RunId,
		TenantId:      db.TenantId,
		StepOrder:     db.StepOrder,
		StepType:      models.StepType(db.StepType),
		Status:        models.StepStatus(db.Status),
		InputPayload:  db.InputPayload,
		ResultPayload: db.ResultPayload,
		ErrorMessage:  db.ErrorMessage,
		CreatedAt:     db.CreatedAt,
	}, nil
}
