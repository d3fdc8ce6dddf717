package rule

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
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

func (w *Writer) Create(ctx context.Context, create *RuleCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	q := psql.Insert(
		im.Into(tableName,
			"id", "account_id", "category_id", "amount", "direction", "period",
			"start_date", "end_date", "auto_post", "note",
		),
		im.Values(psql.Arg(
			id,
			create.AccountID,
			create.CategoryID.Ptr(),
			create.Amount,
			string(create.Direction),
			string(create.Period),
			create.StartDate,
			create.EndDate.Ptr(),
			create.AutoPost,
			create.Note.Ptr(),
		)),
	)
	if _, err = bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update applies the set fields of update. An empty update is a no-op.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *RuleUpdate) error {
	var setMods []bob.Mod[*dialect.UpdateQuery]
	if v, ok := update.AccountID.Get(); ok {
		setMods = append(setMods, um.SetCol("account_id").ToArg(v))
	}
	if !update.CategoryID.IsUnset() {
		setMods = append(setMods, um.SetCol("category_id").ToArg(update.CategoryID.MustPtr()))
	}
	if v, ok := update.Amount.Get(); ok {
		setMods = append(setMods, um.SetCol("amount").ToArg(v))
	}
	if v, ok := update.Direction.Get(); ok {
		setMods = append(setMods, um.SetCol("direction").ToArg(string(v)))
	}
	if v, ok := update.Period.Get(); ok {
		setMods = append(setMods, um.SetCol("period").ToArg(string(v)))
	}
	if v, ok := update.StartDate.Get(); ok {
		setMods = append(setMods, um.SetCol("start_date").ToArg(v))
	}
	if !update.EndDate.IsUnset() {
		setMods = append(setMods, um.SetCol("end_date").ToArg(update.EndDate.MustPtr()))
	}
	if v, ok := update.AutoPost.Get(); ok {
		setMods = append(setMods, um.SetCol("auto_post").ToArg(v))
	}
	if !update.Note.IsUnset() {
		setMods = append(setMods, um.SetCol("note").ToArg(update.Note.MustPtr()))
	}
	if len(setMods) == 0 {
		return nil
	}

	queryMods := append([]bob.Mod[*dialect.UpdateQuery]{um.Table(tableName)}, setMods...)
	queryMods = append(queryMods, um.Where(psql.Quote("id").EQ(psql.Arg(id))))
	_, err := bob.Exec(ctx, w.tx, psql.Update(queryMods...))
	return err
}

// Delete removes the rule. Entries it already posted keep their back-reference.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
