package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/utils"
)

// Notifications are owned by the notification subsystem; the engine only
// inserts rows into it.
type DbNotification struct {
	Id       uuid.UUID      `db:"id"`
	TenantId uuid.UUID      `db:"tenant_id"`
	UserId   uuid.UUID      `db:"user_id"`
	Type     string         `db:"type"`
	Title    string         `db:"title"`
	Message  string         `db:"message"`
	Data     map[string]any `db:"data"`
	Priority string         `db:"priority"`

	CreatedAt time.Time `db:"created_at"`
}

const TABLE_NOTIFICATIONS = "notifications"

var SelectNotificationColumns = utils.ColumnList[DbNotification]()
