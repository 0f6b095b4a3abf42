package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const TABLE_TENANT_USERS = "tenant_users"

// HasTenantAdmin reports whether the user is an administrator of the tenant.
// Membership rows are owned by the main product.
func (repo DeskhiveDbRepository) HasTenantAdmin(
	ctx context.Context,
	exec Executor,
	userId uuid.UUID,
	tenantId uuid.UUID,
) (bool, error) {
	query, args, err := NewQueryBuilder().
		Select("1").
		From(TABLE_TENANT_USERS).
		Where("user_id = ? and tenant_id = ? and role = 'admin'", userId, tenantId).
		ToSql()
	if err != nil {
		return false, errors.Wrap(err, "can't build sql query")
	}

	var one int
	err = exec.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, errors.Wrap(err, "error checking tenant admin")
	}
	return true, nil
}
