package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories/dbmodels"
)

// CreateNotification inserts into the notification subsystem's store. The
// engine does not own this schema.
func (repo DeskhiveDbRepository) CreateNotification(
	ctx context.Context,
	exec Executor,
	attrs models.CreateNotificationAttributes,
) error {
	_, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_NOTIFICATIONS).
			Columns(dbmodels.SelectNotificationColumns...).
			Values(
				uuid.New(),
				attrs.TenantId,
				attrs.UserId,
				attrs.Type,
				attrs.Title,
				attrs.Message,
				attrs.Data,
				attrs.Priority,
				squirrel.Expr("now()"),
			),
	)
	return err
}
