package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories"
)

type AutomationRuleRepository struct {
	mock.Mock
}

func (r *AutomationRuleRepository) GetAutomationRule(ctx context.Context, exec repositories.Executor,
	ruleId uuid.UUID,
) (models.AutomationRule, error) {
	args := r.Called(ctx, exec, ruleId)
	return args.Get(0).(models.AutomationRule), args.Error(1)
}
