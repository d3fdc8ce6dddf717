package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/schedule"
	"github.com/carson-networks/finance-ledger/internal/storage/budget"
)

type budgetReader interface {
	List(ctx context.Context) ([]*budget.Budget, error)
}

type BudgetService struct {
	reader    budgetReader
	processor Processor
}

func NewBudgetService(reader budgetReader, proc Processor) *BudgetService {
	return &BudgetService{reader: reader, processor: proc}
}

// CreateBudget validates the budget window and stores it. The category must exist.
func (s *BudgetService) CreateBudget(ctx context.Context, create budget.BudgetCreate) (uuid.UUID, error) {
	period, err := budget.ParsePeriod(string(create.Period))
	if err != nil {
		return uuid.Nil, invalid("%v", err)
	}
	if !create.Amount.IsPositive() {
		return uuid.Nil, invalid("budget amount must be positive")
	}
	if create.EffectiveFrom.IsZero() {
		return uuid.Nil, invalid("effectiveFrom is required")
	}
	create.Period = period
	create.EffectiveFrom = schedule.DateOf(create.EffectiveFrom)
	if to, ok := create.EffectiveTo.Get(); ok {
		to = schedule.DateOf(to)
		if to.Before(create.EffectiveFrom) {
			return uuid.Nil, invalid("effectiveTo must not be before effectiveFrom")
		}
		create.EffectiveTo.Set(to)
	}

	action := &actions.CreateBudget{Create: create}
	if err = s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, classify(err)
	}
	return action.ID, nil
}

func (s *BudgetService) ListBudgets(ctx context.Context) ([]*budget.Budget, error) {
	return s.reader.List(ctx)
}

func (s *BudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return classify(s.processor.Process(ctx, &actions.DeleteBudget{ID: id}))
}
