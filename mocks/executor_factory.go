package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/deskhive/deskhive-backend/repositories"
)

type ExecutorFactory struct {
	mock.Mock
	ExecMock *Executor
}

func (f *ExecutorFactory) NewExecutor() repositories.Executor {
	args := f.Called()
	return args.Get(0).(repositories.Executor)
}

func (f *ExecutorFactory) Transaction(ctx context.Context, fn func(tx repositories.Executor) error) error {
	args := f.Called(ctx, fn)
	err := fn(f.ExecMock)
	if err != nil {
		return err
	}
	return args.Error(0)
}
