package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/budget"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type mockAccountReader struct {
	mock.Mock
}

func (m *mockAccountReader) List(ctx context.Context, filter *account.AccountFilter) (*account.AccountListResult, error) {
	args := m.Called(ctx, filter)
	result, _ := args.Get(0).(*account.AccountListResult)
	return result, args.Error(1)
}

func (m *mockAccountReader) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*account.Account)
	return result, args.Error(1)
}

func (m *mockAccountReader) TotalStartingBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	result, _ := args.Get(0).([]*transaction.Transaction)
	return result, args.Error(1)
}

func (m *mockTransactionReader) ListByDate(ctx context.Context, from, to time.Time) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, from, to)
	result, _ := args.Get(0).([]*transaction.Transaction)
	return result, args.Error(1)
}

func (m *mockTransactionReader) SumUpTo(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockRuleReader struct {
	mock.Mock
}

func (m *mockRuleReader) FindByID(ctx context.Context, id uuid.UUID) (*rule.Rule, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*rule.Rule)
	return result, args.Error(1)
}

func (m *mockRuleReader) List(ctx context.Context) ([]*rule.Rule, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]*rule.Rule)
	return result, args.Error(1)
}

type mockCategoryReader struct {
	mock.Mock
}

func (m *mockCategoryReader) List(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]*category.Category)
	return result, args.Error(1)
}

type mockBudgetReader struct {
	mock.Mock
}

func (m *mockBudgetReader) List(ctx context.Context) ([]*budget.Budget, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]*budget.Budget)
	return result, args.Error(1)
}
