package service

import (
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	CategoryID      null.Val[uuid.UUID]
	Amount          decimal.Decimal
	Type            transaction.TransactionType
	TransactionName string
	TransactionDate time.Time
	RecurringRuleID null.Val[uuid.UUID]
	CreatedAt       time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// TransactionQuery narrows a transaction listing. Nil fields do not filter.
type TransactionQuery struct {
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	RecurringRuleID *uuid.UUID
	From            *time.Time
	To              *time.Time
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:              row.ID,
		AccountID:       row.AccountID,
		CategoryID:      row.CategoryID,
		Amount:          row.Amount,
		Type:            row.Type,
		TransactionName: row.TransactionName,
		TransactionDate: row.TransactionDate,
		RecurringRuleID: row.RecurringRuleID,
		CreatedAt:       row.CreatedAt,
	}
}
