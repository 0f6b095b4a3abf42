package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/repositories"
	"github.com/deskhive/deskhive-backend/usecases/automation"
)

type ActionDispatcher struct {
	mock.Mock
}

func (d *ActionDispatcher) DispatchAction(ctx context.Context, exec repositories.Executor,
	rule models.AutomationRule, run models.RuleRun, action models.AutomationAction,
) (automation.ActionOutcome, error) {
	args := d.Called(ctx, exec, rule, run, action)
	return args.Get(0).(automation.ActionOutcome), args.Error(1)
}
