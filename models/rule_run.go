package models

import (
	"time"

	"github.com/google/uuid"
)

type RuleRunStatus string

const (
	RuleRunStatusUnknown RuleRunStatus = "unknown"
	RuleRunStatusRunning RuleRunStatus = "running"
	RuleRunStatusSuccess RuleRunStatus = "success"
	RuleRunStatusFailed  RuleRunStatus = "failed"
	RuleRunStatusDryRun  RuleRunStatus = "dry_run"
)

func (s RuleRunStatus) String() string {
	return string(s)
}

func RuleRunStatusFromString(s string) RuleRunStatus {
	switch s {
	case RuleRunStatusRunning.String():
		return RuleRunStatusRunning
	case RuleRunStatusSuccess.String():
		return RuleRunStatusSuccess
	case RuleRunStatusFailed.String():
		return RuleRunStatusFailed
	case RuleRunStatusDryRun.String():
		return RuleRunStatusDryRun
	default:
		return RuleRunStatusUnknown
	}
}

type TriggerSource string

const (
	TriggerSourceManual    TriggerSource = "manual"
	TriggerSourceScheduled TriggerSource = "scheduled"
)

func (s TriggerSource) String() string {
	return string(s)
}

// RuleRun is one execution attempt of an automation rule. It is created with
// status running and transitions exactly once to a terminal status; it is
// never deleted by the engine.
type RuleRun struct {
	Id             uuid.UUID
	RuleId         uuid.UUID
	TenantId       uuid.UUID
	Status         RuleRunStatus
	TriggerSource  TriggerSource
	DryRun         bool
	IdempotencyKey *string
	InputPayload   map[string]any
	ResultPayload  map[string]any
	ErrorMessage   *string

	CreatedAt  time.Time
	StartedAt  time.Time
	FinishedAt *time.Time
}

type StepType string

const (
	StepTypeConditionCheck StepType = "condition_check"
	StepTypeExecutorError  StepType = "executor_error"
)

// Action steps carry the action kind as their type.
func StepTypeForAction(kind AutomationActionKind) StepType {
	return StepType(kind)
}

type StepStatus string

const (
	StepStatusSuccess StepStatus = "success"
	StepStatusSkipped StepStatus = "skipped"
	StepStatusFailed  StepStatus = "failed"
)

func (s StepStatus) String() string {
	return string(s)
}

const (
	// StepOrderConditionCheck is the single condition-check unit of a run.
	StepOrderConditionCheck = 0
	// StepOrderFirstAction starts the gapless 1..N action sequence.
	StepOrderFirstAction = 1
	// StepOrderExecutorError is reserved for the synthetic fatal-error step.
	StepOrderExecutorError = 999
)

// RunStep is one append-only audit record inside a run. The set of steps of a
// run is the authoritative record of what was attempted.
type RunStep struct {
	Id            uuid.UUID
	RunId         uuid.UUID
	TenantId      uuid.UUID
	StepOrder     int
	StepType      StepType
	Status        StepStatus
	InputPayload  map[string]any
	ResultPayload map[string]any
	ErrorMessage  *string

	CreatedAt time.Time
}

// RuleRunWithSteps is the audit-trail read model.
type RuleRunWithSteps struct {
	RuleRun

	Steps []RunStep
}
