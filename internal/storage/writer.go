package storage

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/budget"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// autoPostLockKey identifies the advisory lock held for the length of an auto-post pass.
const autoPostLockKey int64 = 0x61757470

var ErrAccountNotFound = errors.New("storage: account not found")

type Writer struct {
	tx          bob.Tx
	Account     *account.Writer
	Category    *category.Writer
	Rule        *rule.Writer
	Transaction *transaction.Writer
	Budget      *budget.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		Account:     account.NewWriter(tx),
		Category:    category.NewWriter(tx),
		Rule:        rule.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
		Budget:      budget.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}

// LockAutoPost blocks until no other transaction holds the auto-post lock. The lock
// is released when this transaction commits or rolls back.
func (w *Writer) LockAutoPost(ctx context.Context) error {
	_, err := w.tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", autoPostLockKey)
	return err
}

// PostTransaction inserts the transaction and applies its amount to the account balance.
func (w *Writer) PostTransaction(ctx context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	acct, err := w.Account.FindByIDForUpdate(ctx, create.AccountID)
	if err != nil {
		return uuid.Nil, err
	}
	if acct == nil {
		return uuid.Nil, ErrAccountNotFound
	}

	id, err := w.Transaction.Insert(ctx, create)
	if err != nil {
		return uuid.Nil, err
	}

	newBalance := acct.Balance.Add(create.Amount)
	if err = w.Account.UpdateBalance(ctx, create.AccountID, newBalance); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) ListAutoPostRules(ctx context.Context) ([]*rule.Rule, error) {
	return w.Rule.ListAutoPost(ctx)
}

func (w *Writer) FindRule(ctx context.Context, id uuid.UUID) (*rule.Rule, error) {
	return w.Rule.FindByID(ctx, id)
}

func (w *Writer) FindAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return w.Account.FindByID(ctx, id)
}

func (w *Writer) FindCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return w.Category.FindByID(ctx, id)
}

func (w *Writer) LatestRuleTransaction(ctx context.Context, ruleID uuid.UUID, onOrBefore time.Time) (*transaction.Transaction, error) {
	return w.Transaction.LatestForRule(ctx, ruleID, onOrBefore)
}

func (w *Writer) FindTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return w.Transaction.FindByID(ctx, id)
}
