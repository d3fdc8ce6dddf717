package actions

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// CreateTransaction records a manual ledger entry and applies it to the account balance.
type CreateTransaction struct {
	AccountID       uuid.UUID
	CategoryID      null.Val[uuid.UUID]
	Amount          decimal.Decimal
	Type            transaction.TransactionType
	TransactionName string
	TransactionDate time.Time

	ID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if categoryID, ok := t.CategoryID.Get(); ok {
		cat, err := writer.Category.FindByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return missingReference("category", categoryID)
		}
	}

	id, err := writer.PostTransaction(ctx, &transaction.TransactionCreate{
		AccountID:       t.AccountID,
		CategoryID:      t.CategoryID,
		Amount:          t.Amount,
		Type:            t.Type,
		TransactionName: t.TransactionName,
		TransactionDate: t.TransactionDate,
	})
	if errors.Is(err, storage.ErrAccountNotFound) {
		return missingReference("account", t.AccountID)
	}
	if err != nil {
		return err
	}

	t.ID = id
	return nil
}
