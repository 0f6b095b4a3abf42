package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories"
)

type NotificationRepository struct {
	mock.Mock
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, exec repositories.Executor,
	attrs models.CreateNotificationAttributes,
) error {
	args := r.Called(ctx, exec, attrs)
	return args.Error(0)
}

type EntityStatusRepository struct {
	mock.Mock
}

func (r *EntityStatusRepository) UpdateEntityStatus(ctx context.Context, exec repositories.Executor,
	table string, recordId string, tenantId uuid.UUID, status string,
) (int64, error) {
	args := r.Called(ctx, exec, table, recordId, tenantId, status)
	return args.Get(0).(int64), args.Error(1)
}

type TaskRepository struct {
	mock.Mock
}

func (r *TaskRepository) InsertTask(ctx context.Context, exec repositories.Executor,
	attrs models.CreateTaskAttributes,
) error {
	args := r.Called(ctx, exec, attrs)
	return args.Error(0)
}
