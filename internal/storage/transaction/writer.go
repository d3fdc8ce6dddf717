package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new transaction and returns its generated ID. It does not touch
// the account balance; use storage.Writer.PostTransaction for that.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	cols := []string{"id", "account_id", "category_id", "amount", "type", "transaction_name", "recurring_rule_id"}
	vals := []any{
		id,
		create.AccountID,
		create.CategoryID.Ptr(),
		create.Amount,
		string(create.Type),
		create.TransactionName,
		create.RecurringRuleID.Ptr(),
	}
	if !create.TransactionDate.IsZero() {
		cols = append(cols, "transaction_date")
		vals = append(vals, create.TransactionDate)
	}

	q := psql.Insert(
		im.Into(tableName, cols...),
		im.Values(psql.Arg(vals...)),
	)
	if _, err = bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
