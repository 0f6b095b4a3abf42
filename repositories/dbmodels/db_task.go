package dbmodels

import (
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"

	"github.com/deskhive/deskhive-backend/utils"
)

// Tasks are owned by the task subsystem; the engine only inserts rows into it.
type DbTask struct {
	Id          uuid.UUID   `db:"id"`
	TenantId    uuid.UUID   `db:"tenant_id"`
	Title       string      `db:"title"`
	Description null.String `db:"description"`
	Status      string      `db:"status"`
	Priority    string      `db:"priority"`
	Category    string      `db:"category"`
	DueDate     null.Time   `db:"due_date"`
	AssignedTo  null.String `db:"assigned_to"`

	CreatedAt time.Time `db:"created_at"`
}

const TABLE_TASKS = "tasks"

var SelectTaskColumns = utils.ColumnList[DbTask]()
