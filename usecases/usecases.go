package usecases

import (
	"github.com/deskhive/deskhive-backend/repositories"
	"github.com/deskhive/deskhive-backend/usecases/automation"
)

type Usecases struct {
	Repositories   repositories.DeskhiveDbRepository
	ExecutorGetter repositories.ExecutorGetter
}

func NewUsecases(executorGetter repositories.ExecutorGetter) Usecases {
	return Usecases{
		Repositories:   repositories.DeskhiveDbRepository{},
		ExecutorGetter: executorGetter,
	}
}

func (u Usecases) NewRuleRunUsecase() RuleRunUsecase {
	return RuleRunUsecase{
		executorFactory: u.ExecutorGetter,
		ruleRepository:  u.Repositories,
		runLedger:       u.Repositories,
		adminChecker:    u.Repositories,
		dispatcher: automation.NewDispatcher(
			u.Repositories,
			u.Repositories,
			u.Repositories,
		),
	}
}
