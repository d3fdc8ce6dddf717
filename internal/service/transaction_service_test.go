package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

func newTestService(t *testing.T) (*TransactionService, *mockTransactionReader, *mockProcessor) {
	t.Helper()
	reader := &mockTransactionReader{}
	proc := &mockProcessor{}
	t.Cleanup(func() {
		reader.AssertExpectations(t)
		proc.AssertExpectations(t)
	})
	return NewTransactionService(reader, proc), reader, proc
}

// -- CreateTransaction tests --

func TestCreateTransaction_Success(t *testing.T) {
	svc, _, proc := newTestService(t)

	accountID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())
	amount := decimal.RequireFromString("42.50")
	txDate := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expectedID := uuid.Must(uuid.NewV4())

	proc.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.CreateTransaction) bool {
		return a.AccountID == accountID &&
			a.CategoryID == null.From(categoryID) &&
			a.Amount.Equal(amount) &&
			a.Type == transaction.TypeVariableExpense &&
			a.TransactionName == "Groceries" &&
			a.TransactionDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateTransaction).ID = expectedID
	}).Return(nil)

	id, err := svc.CreateTransaction(context.Background(), Transaction{
		AccountID:       accountID,
		CategoryID:      null.From(categoryID),
		Amount:          amount,
		TransactionName: "Groceries",
		TransactionDate: txDate,
	})

	assert.NoError(t, err)
	assert.Equal(t, expectedID, id)
}

func TestCreateTransaction_InvalidType(t *testing.T) {
	svc, _, _ := newTestService(t)

	id, err := svc.CreateTransaction(context.Background(), Transaction{Type: "REFUND"})

	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, uuid.Nil, id)
}

func TestCreateTransaction_MissingAccount(t *testing.T) {
	svc, _, proc := newTestService(t)

	proc.On("Process", mock.Anything, mock.Anything).
		Return(fmt.Errorf("account x: %w", actions.ErrMissingReference))

	_, err := svc.CreateTransaction(context.Background(), Transaction{Amount: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCreateTransaction_ProcessError(t *testing.T) {
	svc, _, proc := newTestService(t)

	proc.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	id, err := svc.CreateTransaction(context.Background(), Transaction{
		AccountID:       uuid.Must(uuid.NewV4()),
		Amount:          decimal.RequireFromString("10.00"),
		TransactionName: "Test",
	})

	assert.EqualError(t, err, "connection refused")
	assert.Equal(t, uuid.Nil, id)
}

// -- ListTransactions tests --

func makeStorageRows(n int, createdAt time.Time) []*transaction.Transaction {
	rows := make([]*transaction.Transaction, n)
	for i := range rows {
		rows[i] = &transaction.Transaction{
			ID:              uuid.Must(uuid.NewV4()),
			AccountID:       uuid.Must(uuid.NewV4()),
			CategoryID:      null.From(uuid.Must(uuid.NewV4())),
			Amount:          decimal.RequireFromString("5.00"),
			Type:            transaction.TypeVariableExpense,
			TransactionName: "Item",
			TransactionDate: createdAt,
			CreatedAt:       createdAt,
		}
	}
	return rows
}

func TestListTransactions_NoResults(t *testing.T) {
	svc, reader, _ := newTestService(t)

	reader.On("List", mock.Anything, mock.Anything).Return([]*transaction.Transaction{}, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), nil, nil)

	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_SinglePage(t *testing.T) {
	svc, reader, _ := newTestService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(2, now)

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime == nil
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), nil, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Nil(t, nextCursor)

	tx := txs[0]
	assert.Equal(t, rows[0].ID, tx.ID)
	assert.Equal(t, rows[0].AccountID, tx.AccountID)
	assert.Equal(t, rows[0].CategoryID, tx.CategoryID)
	assert.True(t, rows[0].Amount.Equal(tx.Amount))
	assert.Equal(t, rows[0].TransactionName, tx.TransactionName)
	assert.Equal(t, rows[0].TransactionDate, tx.TransactionDate)
	assert.Equal(t, rows[0].CreatedAt, tx.CreatedAt)
}

func TestListTransactions_PassesQueryFilters(t *testing.T) {
	svc, reader, _ := newTestService(t)

	accountID := uuid.Must(uuid.NewV4())
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.AccountID != nil && *f.AccountID == accountID &&
			f.From != nil && f.From.Equal(from) &&
			f.To != nil && f.To.Equal(to)
	})).Return(nil, nil)

	_, _, err := svc.ListTransactions(context.Background(), &TransactionQuery{
		AccountID: &accountID,
		From:      &from,
		To:        &to,
	}, nil)

	assert.NoError(t, err)
}

func TestListTransactions_HasNextPage(t *testing.T) {
	svc, reader, _ := newTestService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(defaultLimit+1, now)

	reader.On("List", mock.Anything, mock.Anything).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), nil, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit, "truncated to default limit")

	assert.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, defaultLimit, nextCursor.Limit)
	assert.Equal(t, now, nextCursor.MaxCreationTime, "derived from first row")
}

func TestListTransactions_WithCursor(t *testing.T) {
	svc, reader, _ := newTestService(t)

	cursorTime := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	rowTime := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	rows := makeStorageRows(3, rowTime) // limit=2, returns 3 → has next page

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == 2 &&
			f.Offset == 20 &&
			f.MaxCreationTime != nil &&
			f.MaxCreationTime.Equal(cursorTime)
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), nil, &TransactionCursor{
		Position:        20,
		Limit:           2,
		MaxCreationTime: cursorTime,
	})

	assert.NoError(t, err)
	assert.Len(t, txs, 2)

	assert.NotNil(t, nextCursor)
	assert.Equal(t, 22, nextCursor.Position)
	assert.Equal(t, 2, nextCursor.Limit)
	assert.Equal(t, cursorTime, nextCursor.MaxCreationTime, "echoed from cursor, not overridden by row data")
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, reader, _ := newTestService(t)

	reader.On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	txs, nextCursor, err := svc.ListTransactions(context.Background(), nil, nil)

	assert.Error(t, err)
	assert.Equal(t, "database unavailable", err.Error())
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}
