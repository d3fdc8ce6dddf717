package category

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

func (w *Writer) Create(ctx context.Context, create *CategoryCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(tableName, "id", "name", "kind", "fixed_cost"),
		im.Values(psql.Arg(id, create.Name, string(create.Kind), create.FixedCost)),
	)
	if _, err = bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Delete removes the category. Transactions keep their rows with a null category
// and budgets for it are dropped, both by foreign key rules.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
