package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/deskhive/deskhive-backend/models"
)

// UpdateEntityStatus updates the status of one row of a product entity
// table. The tenant filter is a safety invariant: the engine must never write
// a row belonging to another tenant. The table name is interpolated into the
// query, so the allow-list check here is load-bearing, not cosmetic.
func (repo DeskhiveDbRepository) UpdateEntityStatus(
	ctx context.Context,
	exec Executor,
	table string,
	recordId string,
	tenantId uuid.UUID,
	status string,
) (int64, error) {
	if !models.StatusTableAllowed(table) {
		return 0, errors.Wrapf(models.ErrStatusTableNotAllowed, "table %q", table)
	}

	tag, err := ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Update(table).
			Set("status", status).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{
				"id":        recordId,
				"tenant_id": tenantId,
			}),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
