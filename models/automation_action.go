package models

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
)

type AutomationActionKind string

const (
	ActionKindCreateNotification AutomationActionKind = "create_notification"
	ActionKindUpdateRecordStatus AutomationActionKind = "update_record_status"
	ActionKindCreateTask         AutomationActionKind = "create_task"
)

func (k AutomationActionKind) String() string {
	return string(k)
}

// AutomationAction is a closed union over the three action kinds. The
// dispatcher switches exhaustively over the concrete types, so an unknown
// kind can never be silently ignored: it is rejected when the rule is loaded.
type AutomationAction interface {
	Kind() AutomationActionKind
}

type CreateNotificationAction struct {
	TargetUserId string `json:"target_user_id"`
	Title        string `json:"title"`
	Message      string `json:"message"`
}

type UpdateRecordStatusAction struct {
	Table    string `json:"table"`
	RecordId string `json:"record_id"`
	Status   string `json:"status"`
}

type CreateTaskAction struct {
	Title       string      `json:"title"`
	Description null.String `json:"description"`
	Priority    string      `json:"priority"`
	Category    string      `json:"category"`
	DueDate     null.String `json:"due_date"`
	AssignedTo  null.String `json:"assigned_to"`
}

func (CreateNotificationAction) Kind() AutomationActionKind { return ActionKindCreateNotification }
func (UpdateRecordStatusAction) Kind() AutomationActionKind { return ActionKindUpdateRecordStatus }
func (CreateTaskAction) Kind() AutomationActionKind         { return ActionKindCreateTask }

// AllowedStatusTables is the fixed capability allow-list for the
// update_record_status action. Any other table is a fatal capability
// violation, not a skip.
var AllowedStatusTables = []string{
	"desks",
	"bookings",
	"visitors",
	"service_requests",
}

func StatusTableAllowed(table string) bool {
	for _, allowed := range AllowedStatusTables {
		if table == allowed {
			return true
		}
	}
	return false
}

// ParseAutomationAction decodes a stored (kind, params) pair into the action
// union. Required-field validation does not happen here: a present but empty
// field is a dispatch-time skip, not a parse error.
func ParseAutomationAction(kind string, params json.RawMessage) (AutomationAction, error) {
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	switch AutomationActionKind(kind) {
	case ActionKindCreateNotification:
		var action CreateNotificationAction
		if err := json.Unmarshal(params, &action); err != nil {
			return nil, errors.Wrap(err, "could not unmarshal create_notification action parameters")
		}
		return action, nil
	case ActionKindUpdateRecordStatus:
		var action UpdateRecordStatusAction
		if err := json.Unmarshal(params, &action); err != nil {
			return nil, errors.Wrap(err, "could not unmarshal update_record_status action parameters")
		}
		return action, nil
	case ActionKindCreateTask:
		var action CreateTaskAction
		if err := json.Unmarshal(params, &action); err != nil {
			return nil, errors.Wrap(err, "could not unmarshal create_task action parameters")
		}
		return action, nil
	default:
		return nil, errors.Wrapf(BadParameterError, "unknown automation action kind %q", kind)
	}
}
