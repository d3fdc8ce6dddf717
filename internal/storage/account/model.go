package account

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "accounts"

var columns = []any{"id", "name", "type", "sub_type", "balance", "starting_balance", "created_at"}

// Account represents an account record.
type Account struct {
	ID              uuid.UUID       `db:"id"`
	Name            string          `db:"name"`
	Type            AccountType     `db:"type"`
	SubType         string          `db:"sub_type"`
	Balance         decimal.Decimal `db:"balance"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	CreatedAt       time.Time       `db:"created_at"`
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	Limit  int
	Offset int
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// AccountListResult contains a page of accounts and an optional next cursor.
type AccountListResult struct {
	Accounts   []*Account
	NextCursor *AccountCursor
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	Name            string
	Type            AccountType
	SubType         string
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal
}

type AccountType int16

const (
	AccountTypeCash AccountType = iota
	AccountTypeCreditCards
	AccountTypeInvestments
	AccountTypeLoans
	AccountTypeAssets
)

func (t AccountType) Valid() bool {
	return t >= AccountTypeCash && t <= AccountTypeAssets
}
