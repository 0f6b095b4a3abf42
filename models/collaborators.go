package models

import (
	"time"

	"github.com/google/uuid"
)

// Values the engine fixes when writing to collaborator stores.
const (
	NotificationTypeAutomationRule = "automation_rule"
	NotificationPriorityMedium     = "medium"

	TaskStatusTodo = "todo"
)

type CreateNotificationAttributes struct {
	TenantId uuid.UUID
	UserId   uuid.UUID
	Type     string
	Title    string
	Message  string
	Data     map[string]any
	Priority string
}

type CreateTaskAttributes struct {
	TenantId    uuid.UUID
	Title       string
	Description *string
	Status      string
	Priority    string
	Category    string
	DueDate     *time.Time
	AssignedTo  *string
}
