package autopost

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/storage/rule"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// SignedAmount forces the rule magnitude's sign to match its direction: positive for
// income, negative for everything else.
func SignedAmount(amount null.Val[decimal.Decimal], direction rule.Direction) (decimal.Decimal, error) {
	magnitude, ok := amount.Get()
	if !ok {
		return decimal.Zero, ErrMissingAmount
	}
	if direction == rule.DirectionIncome {
		return magnitude.Abs(), nil
	}
	return magnitude.Abs().Neg(), nil
}

// TypeFor classifies entries posted from a rule with the given direction.
func TypeFor(direction rule.Direction) transaction.TransactionType {
	if direction == rule.DirectionIncome {
		return transaction.TypeIncome
	}
	return transaction.TypeFixedCost
}

// entryTemplate holds everything about a rule's entries except the date, resolved once
// per rule.
type entryTemplate struct {
	create transaction.TransactionCreate
}

func (t *entryTemplate) on(date time.Time) *transaction.TransactionCreate {
	c := t.create
	c.TransactionDate = date
	return &c
}

// template checks that the rule's account and category still exist and derives the
// signed amount and type of its entries.
func template(ctx context.Context, store Store, r *rule.Rule) (*entryTemplate, error) {
	acct, err := store.FindAccount(ctx, r.AccountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrAccountNotFound
	}

	if categoryID, ok := r.CategoryID.Get(); ok {
		cat, err := store.FindCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
	}

	amount, err := SignedAmount(r.Amount, r.Direction)
	if err != nil {
		return nil, err
	}

	return &entryTemplate{
		create: transaction.TransactionCreate{
			AccountID:       r.AccountID,
			CategoryID:      r.CategoryID,
			Amount:          amount,
			Type:            TypeFor(r.Direction),
			TransactionName: entryName(r),
			RecurringRuleID: null.From(r.ID),
		},
	}, nil
}

func entryName(r *rule.Rule) string {
	if note, ok := r.Note.Get(); ok && note != "" {
		return note
	}
	if r.Direction == rule.DirectionIncome {
		return "Recurring income"
	}
	return "Recurring expense"
}
