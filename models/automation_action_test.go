package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAutomationAction(t *testing.T) {
	t.Run("create_notification", func(t *testing.T) {
		action, err := ParseAutomationAction("create_notification",
			json.RawMessage(`{"target_user_id":"u-1","title":"hello","message":"world"}`))

		assert.NoError(t, err)
		assert.Equal(t, CreateNotificationAction{
			TargetUserId: "u-1",
			Title:        "hello",
			Message:      "world",
		}, action)
		assert.Equal(t, ActionKindCreateNotification, action.Kind())
	})

	t.Run("update_record_status", func(t *testing.T) {
		action, err := ParseAutomationAction("update_record_status",
			json.RawMessage(`{"table":"bookings","record_id":"b-1","status":"cancelled"}`))

		assert.NoError(t, err)
		assert.Equal(t, UpdateRecordStatusAction{
			Table:    "bookings",
			RecordId: "b-1",
			Status:   "cancelled",
		}, action)
	})

	t.Run("create_task with optional fields absent", func(t *testing.T) {
		action, err := ParseAutomationAction("create_task",
			json.RawMessage(`{"title":"restock"}`))

		assert.NoError(t, err)
		task, ok := action.(CreateTaskAction)
		assert.True(t, ok)
		assert.Equal(t, "restock", task.Title)
		assert.False(t, task.Description.Valid)
		assert.False(t, task.DueDate.Valid)
	})

	t.Run("empty parameters parse to the zero action", func(t *testing.T) {
		action, err := ParseAutomationAction("create_notification", nil)

		assert.NoError(t, err)
		assert.Equal(t, CreateNotificationAction{}, action)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := ParseAutomationAction("send_email", json.RawMessage(`{}`))

		assert.ErrorIs(t, err, BadParameterError)
	})

	t.Run("malformed parameters are rejected", func(t *testing.T) {
		_, err := ParseAutomationAction("create_task", json.RawMessage(`{"title":`))

		assert.Error(t, err)
	})
}

func TestStatusTableAllowed(t *testing.T) {
	for _, table := range AllowedStatusTables {
		assert.True(t, StatusTableAllowed(table))
	}
	assert.False(t, StatusTableAllowed("tenant_users"))
	assert.False(t, StatusTableAllowed("automation_rules"))
	assert.False(t, StatusTableAllowed(""))
}
