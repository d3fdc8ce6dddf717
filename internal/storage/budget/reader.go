package budget

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

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Budget]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) List(ctx context.Context) ([]*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.OrderBy(psql.Quote("effective_from")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Budget]())
}
