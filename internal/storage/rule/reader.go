package rule

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID returns nil when no rule has the given ID.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Rule, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Rule]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) List(ctx context.Context) ([]*Rule, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.OrderBy(psql.Quote("created_at")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Rule]())
}

// ListAutoPost returns every rule flagged for automatic posting, in no particular order.
func (r *Reader) ListAutoPost(ctx context.Context) ([]*Rule, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("auto_post").EQ(psql.Arg(true))),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Rule]())
}
