package budget

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
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

func (w *Writer) Create(ctx context.Context, create *BudgetCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(tableName, "id", "category_id", "amount", "period", "effective_from", "effective_to"),
		im.Values(psql.Arg(id, create.CategoryID, create.Amount, string(create.Period), create.EffectiveFrom, create.EffectiveTo.Ptr())),
	)
	if _, err = bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
