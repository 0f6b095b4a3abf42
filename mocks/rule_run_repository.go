package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories"
)

type RuleRunRepository struct {
	mock.Mock
}

func (r *RuleRunRepository) CreateRuleRun(ctx context.Context, exec repositories.Executor,
	run models.RuleRun,
) error {
	args := r.Called(ctx, exec, run)
	return args.Error(0)
}

func (r *RuleRunRepository) GetRuleRun(ctx context.Context, exec repositories.Executor,
	runId uuid.UUID,
) (models.RuleRun, error) {
	args := r.Called(ctx, exec, runId)
	return args.Get(0).(models.RuleRun), args.Error(1)
}

func (r *RuleRunRepository) GetRuleRunByIdempotencyKey(ctx context.Context, exec repositories.Executor,
	ruleId uuid.UUID, idempotencyKey string,
) (*models.RuleRun, error) {
	args := r.Called(ctx, exec, ruleId, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RuleRun), args.Error(1)
}

func (r *RuleRunRepository) FinalizeRuleRun(ctx context.Context, exec repositories.Executor,
	runId uuid.UUID, status models.RuleRunStatus, resultPayload map[string]any, errorMessage *string,
) error {
	args := r.Called(ctx, exec, runId, status, resultPayload, errorMessage)
	return args.Error(0)
}

func (r *RuleRunRepository) CreateRunStep(ctx context.Context, exec repositories.Executor,
	step models.RunStep,
) error {
	args := r.Called(ctx, exec, step)
	return args.Error(0)
}

func (r *RuleRunRepository) ListRunSteps(ctx context.Context, exec repositories.Executor,
	runId uuid.UUID,
) ([]models.RunStep, error) {
	args := r.Called(ctx, exec, runId)
	return args.Get(0).([]models.RunStep), args.Error(1)
}
