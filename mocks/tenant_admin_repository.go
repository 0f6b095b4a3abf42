package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/deskhive/deskhive-backend/repositories"
)

type TenantAdminRepository struct {
	mock.Mock
}

func (r *TenantAdminRepository) HasTenantAdmin(ctx context.Context, exec repositories.Executor,
	userId uuid.UUID, tenantId uuid.UUID,
) (bool, error) {
	args := r.Called(ctx, exec, userId, tenantId)
	return args.Bool(0), args.Error(1)
}
