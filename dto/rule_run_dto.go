package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/pure_utils"
)

type InvokeRuleRunBody struct {
	DryRun         bool           `json:"dry_run"`
	SourcePayload  map[string]any `json:"source_payload"`
	IdempotencyKey *string        `json:"idempotency_key"`
	TriggerSource  string         `json:"trigger_source" binding:"omitempty,oneof=manual scheduled"`
}

type RuleRunResult struct {
	RunId  string `json:"run_id"`
	Status string `json:"status"`
	Reused bool   `json:"reused,omitempty"`
}

func AdaptRuleRunResult(runId uuid.UUID, status models.RuleRunStatus, reused bool) RuleRunResult {
	return RuleRunResult{
		RunId:  runId.String(),
		Status: status.String(),
		Reused: reused,
	}
}

type RuleRun struct {
	Id             string         `json:"id"`
	RuleId         string         `json:"rule_id"`
	TenantId       string         `json:"tenant_id"`
	Status         string         `json:"status"`
	TriggerSource  string         `json:"trigger_source"`
	DryRun         bool           `json:"dry_run"`
	IdempotencyKey *string        `json:"idempotency_key,omitempty"`
	InputPayload   map[string]any `json:"input_payload"`
	ResultPayload  map[string]any `json:"result_payload,omitempty"`
	ErrorMessage   *string        `json:"error_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     *time.Time     `json:"finished_at,omitempty"`

	Steps []RunStep `json:"steps"`
}

type RunStep struct {
	Id            string         `json:"id"`
	StepOrder     int            `json:"step_order"`
	StepType      string         `json:"step_type"`
	Status        string         `json:"status"`
	InputPayload  map[string]any `json:"input_payload"`
	ResultPayload map[string]any `json:"result_payload,omitempty"`
	ErrorMessage  *string        `json:"error_message,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func AdaptRunStep(step models.RunStep) RunStep {
	return RunStep{
		Id:            step.Id.String(),
		StepOrder:     step.StepOrder,
		StepType:      string(step.StepType),
		Status:        step.Status.String(),
		InputPayload:  step.InputPayload,
		ResultPayload: step.ResultPayload,
		ErrorMessage:  step.ErrorMessage,
		CreatedAt:     step.CreatedAt,
	}
}

func AdaptRuleRunWithSteps(run models.RuleRunWithSteps) RuleRun {
	return RuleRun{
		Id:             run.Id.String(),
		RuleId:         run.RuleId.String(),
		TenantId:       run.TenantId.String(),
		Status:         run.Status.String(),
		TriggerSource:  run.TriggerSource.String(),
		DryRun:         run.DryRun,
		IdempotencyKey: run.IdempotencyKey,
		InputPayload:   run.InputPayload,
		ResultPayload:  run.ResultPayload,
		ErrorMessage:   run.ErrorMessage,
		CreatedAt:      run.CreatedAt,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		Steps:          pure_utils.Map(run.Steps, AdaptRunStep),
	}
}
