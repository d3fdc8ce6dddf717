package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
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

// FindByIDForUpdate locks the account row until the surrounding transaction ends.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return w.findByID(ctx, id, true)
}

func (w *Writer) Create(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(tableName, "id", "name", "type", "sub_type", "balance", "starting_balance"),
		im.Values(psql.Arg(id, create.Name, int16(create.Type), create.SubType, create.Balance, create.StartingBalance)),
	)
	if _, err = bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
