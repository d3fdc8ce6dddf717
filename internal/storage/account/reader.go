package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) List(ctx context.Context, filter *AccountFilter) (*AccountListResult, error) {
	limit := 20
	offset := 0
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
	}

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Limit(limit + 1),
		sm.Offset(offset),
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	}
	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Account]())
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return &AccountListResult{Accounts: nil, NextCursor: nil}, nil
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	return &AccountListResult{Accounts: rows, NextCursor: nextCursor}, nil
}

// FindByID returns nil when no account has the given ID.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return r.findByID(ctx, id, false)
}

// TotalStartingBalance sums the starting balance of every account.
func (r *Reader) TotalStartingBalance(ctx context.Context) (decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(starting_balance), 0)")),
		sm.From(tableName),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[decimal.Decimal])
}

func (r *Reader) findByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
