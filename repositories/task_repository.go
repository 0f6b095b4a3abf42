package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories/dbmodels"
)

// InsertTask inserts into the task subsystem's store. The engine does not own
// this schema.
func (repo DeskhiveDbRepository) InsertTask(
	ctx context.Context,
	exec Executor,
	attrs models.CreateTaskAttributes,
) error {
	_, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_TASKS).
			Columns(dbmodels.SelectTaskColumns...).
			Values(
				uuid.New(),
				attrs.TenantId,
				attrs.Title,
				attrs.Description,
				attrs.Status,
				attrs.Priority,
				attrs.Category,
				attrs.DueDate,
				attrs.AssignedTo,
				squirrel.Expr("now()"),
			),
	)
	return err
}
