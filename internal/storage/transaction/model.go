package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "transactions"

var columns = []any{
	"id", "account_id", "category_id", "amount", "type", "transaction_name",
	"transaction_date", "recurring_rule_id", "created_at",
}

// TransactionType classifies an entry for the monthly summaries.
type TransactionType string

const (
	TypeIncome          TransactionType = "INCOME"
	TypeFixedCost       TransactionType = "FIXED_COST"
	TypeVariableExpense TransactionType = "VARIABLE_EXPENSE"
)

func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeIncome, TypeFixedCost, TypeVariableExpense:
		return t, nil
	}
	return "", fmt.Errorf("invalid transaction type %q", s)
}

// Transaction represents a ledger entry. RecurringRuleID is set only on entries
// posted from a recurring rule.
type Transaction struct {
	ID              uuid.UUID           `db:"id"`
	AccountID       uuid.UUID           `db:"account_id"`
	CategoryID      null.Val[uuid.UUID] `db:"category_id"`
	Amount          decimal.Decimal     `db:"amount"`
	Type            TransactionType     `db:"type"`
	TransactionName string              `db:"transaction_name"`
	TransactionDate time.Time           `db:"transaction_date"`
	RecurringRuleID null.Val[uuid.UUID] `db:"recurring_rule_id"`
	CreatedAt       time.Time           `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID       uuid.UUID
	CategoryID      null.Val[uuid.UUID]
	Amount          decimal.Decimal
	Type            TransactionType
	TransactionName string
	TransactionDate time.Time // defaults to today if zero
	RecurringRuleID null.Val[uuid.UUID]
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	RecurringRuleID *uuid.UUID
	From            *time.Time
	To              *time.Time
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}
