package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/budget"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

type Reader struct {
	Accounts     *account.Reader
	Categories   *category.Reader
	Rules        *rule.Reader
	Transactions *transaction.Reader
	Budgets      *budget.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Categories:   category.NewReader(exec),
		Rules:        rule.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Budgets:      budget.NewReader(exec),
	}
}
