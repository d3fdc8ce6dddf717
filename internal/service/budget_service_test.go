package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/schedule"
	"github.com/carson-networks/finance-ledger/internal/storage/budget"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
)

func TestCreateBudget_Success(t *testing.T) {
	proc := &mockProcessor{}
	svc := NewBudgetService(&mockBudgetReader{}, proc)
	expectedID := uuid.Must(uuid.NewV4())

	proc.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateBudget) bool {
		return a.Create.Period == budget.PeriodYearly
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateBudget).ID = expectedID
	}).Return(nil)

	id, err := svc.CreateBudget(context.Background(), budget.BudgetCreate{
		CategoryID:    uuid.Must(uuid.NewV4()),
		Amount:        decimal.NewFromInt(1200),
		Period:        "yearly",
		EffectiveFrom: schedule.Date(2024, 1, 1),
	})

	require.NoError(t, err)
	assert.Equal(t, expectedID, id)
}

func TestCreateBudget_Validation(t *testing.T) {
	svc := NewBudgetService(&mockBudgetReader{}, &mockProcessor{})
	base := budget.BudgetCreate{
		CategoryID:    uuid.Must(uuid.NewV4()),
		Amount:        decimal.NewFromInt(100),
		Period:        budget.PeriodMonthly,
		EffectiveFrom: schedule.Date(2024, 1, 1),
	}

	badPeriod := base
	badPeriod.Period = "WEEKLY"
	zeroAmount := base
	zeroAmount.Amount = decimal.Zero
	inverted := base
	inverted.EffectiveTo = null.From(schedule.Date(2023, 1, 1))

	for _, create := range []budget.BudgetCreate{badPeriod, zeroAmount, inverted} {
		_, err := svc.CreateBudget(context.Background(), create)
		assert.ErrorIs(t, err, ErrInvalid)
	}
}

func TestCreateBudget_UnknownCategory(t *testing.T) {
	proc := &mockProcessor{}
	svc := NewBudgetService(&mockBudgetReader{}, proc)
	proc.On("Process", mock.Anything, mock.Anything).Return(fmt.Errorf("category x: %w", actions.ErrMissingReference))

	_, err := svc.CreateBudget(context.Background(), budget.BudgetCreate{
		CategoryID:    uuid.Must(uuid.NewV4()),
		Amount:        decimal.NewFromInt(100),
		Period:        budget.PeriodMonthly,
		EffectiveFrom: schedule.Date(2024, 1, 1),
	})

	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCreateCategory_Validation(t *testing.T) {
	svc := NewCategoryService(&mockCategoryReader{}, &mockProcessor{})

	_, err := svc.CreateCategory(context.Background(), category.CategoryCreate{Name: " ", Kind: category.KindExpense})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.CreateCategory(context.Background(), category.CategoryCreate{Name: "Rent", Kind: "ASSET"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	proc := &mockProcessor{}
	svc := NewCategoryService(&mockCategoryReader{}, proc)
	id := uuid.Must(uuid.NewV4())
	proc.On("Process", mock.Anything, &actions.DeleteCategory{ID: id}).Return(fmt.Errorf("category: %w", actions.ErrNotFound))

	err := svc.DeleteCategory(context.Background(), id)

	assert.ErrorIs(t, err, ErrNotFound)
}
