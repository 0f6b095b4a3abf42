package models

import (
	"time"

	"github.com/google/uuid"
)

type AutomationRule struct {
	Id       uuid.UUID
	TenantId uuid.UUID
	Name     string
	Enabled  bool

	// Conditions are combined with a logical AND, in order. There is no OR
	// and no grouping: the policy language is deliberately minimal.
	Conditions []RuleCondition
	Actions    []AutomationAction

	CreatedAt time.Time
	UpdatedAt *time.Time
}

type ConditionOperator string

const (
	ConditionOperatorUnknown     ConditionOperator = "unknown"
	ConditionOperatorEquals      ConditionOperator = "equals"
	ConditionOperatorNotEquals   ConditionOperator = "not_equals"
	ConditionOperatorContains    ConditionOperator = "contains"
	ConditionOperatorGreaterThan ConditionOperator = "greater_than"
	ConditionOperatorLessThan    ConditionOperator = "less_than"
)

var ValidConditionOperators = []ConditionOperator{
	ConditionOperatorEquals,
	ConditionOperatorNotEquals,
	ConditionOperatorContains,
	ConditionOperatorGreaterThan,
	ConditionOperatorLessThan,
}

func (op ConditionOperator) String() string {
	return string(op)
}

func ConditionOperatorFromString(s string) ConditionOperator {
	switch s {
	case ConditionOperatorEquals.String():
		return ConditionOperatorEquals
	case ConditionOperatorNotEquals.String():
		return ConditionOperatorNotEquals
	case ConditionOperatorContains.String():
		return ConditionOperatorContains
	case ConditionOperatorGreaterThan.String():
		return ConditionOperatorGreaterThan
	case ConditionOperatorLessThan.String():
		return ConditionOperatorLessThan
	default:
		return ConditionOperatorUnknown
	}
}

// RuleCondition matches one field of the run's input payload against a fixed
// value. Conditions have no identity beyond their position in the rule.
type RuleCondition struct {
	Field    string
	Operator ConditionOperator
	Value    string
}
