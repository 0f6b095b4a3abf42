package automation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deskhive/deskhive-backend/models"
)

// EvaluateConditions returns true iff every condition is satisfied by the
// payload. Conditions are combined with a logical AND; an empty list is
// vacuously true. The function is pure and total: it never errors, and an
// unknown operator evaluates to false.
func EvaluateConditions(payload map[string]any, conditions []models.RuleCondition) bool {
	for _, condition := range conditions {
		if !evaluateCondition(payload, condition) {
			return false
		}
	}
	return true
}

func evaluateCondition(payload map[string]any, condition models.RuleCondition) bool {
	value := payload[condition.Field]

	switch condition.Operator {
	case models.ConditionOperatorEquals:
		return stringify(value) == condition.Value
	case models.ConditionOperatorNotEquals:
		return stringify(value) != condition.Value
	case models.ConditionOperatorContains:
		return strings.Contains(stringify(value), condition.Value)
	case models.ConditionOperatorGreaterThan:
		return toNumber(value) > toNumber(condition.Value)
	case models.ConditionOperatorLessThan:
		return toNumber(value) < toNumber(condition.Value)
	default:
		return false
	}
}

// stringify coerces a payload value to a string. Missing fields (nil) coerce
// to the empty string.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toNumber coerces a value to a number for the ordering operators.
// Non-numeric values coerce to 0.
func toNumber(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		parsed, err := strconv.ParseFloat(stringify(v), 64)
		if err != nil {
			return 0
		}
		return parsed
	}
}
