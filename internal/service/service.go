package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-ledger/internal/autopost"
	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid request")
)

// Processor runs write actions. *operator.OperatorDelegator satisfies it.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Category    *CategoryService
	Rule        *RuleService
	Budget      *BudgetService
	AutoPost    *AutoPostService
	Analytics   *AnalyticsService
}

// NewService wires every service to the shared reader, write queue and auto-post engine.
func NewService(reader *storage.Reader, proc Processor, engine *autopost.Engine, logger *logrus.Logger) *Service {
	return &Service{
		Account:     NewAccountService(reader.Accounts, proc),
		Transaction: NewTransactionService(reader.Transactions, proc),
		Category:    NewCategoryService(reader.Categories, proc),
		Rule:        NewRuleService(reader.Rules, proc, engine),
		Budget:      NewBudgetService(reader.Budgets, proc),
		AutoPost:    NewAutoPostService(proc, engine, logger),
		Analytics:   NewAnalyticsService(reader.Accounts, reader.Transactions, reader.Categories, reader.Budgets),
	}
}

// classify maps write failures onto ErrNotFound and ErrInvalid, keeping the cause.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, actions.ErrNotFound), errors.Is(err, autopost.ErrRuleNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, actions.ErrMissingReference), autopost.IsRuleFailure(err):
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
