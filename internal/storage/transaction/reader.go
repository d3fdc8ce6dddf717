package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

// FindByID returns nil when no transaction has the given ID.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return oneOrNil(ctx, r.exec, q)
}

// List returns transactions matching the filter, newest first. When Limit is set one
// extra row is fetched so callers can tell whether another page exists.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}
	if filter != nil {
		if filter.AccountID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
		}
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.RecurringRuleID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("recurring_rule_id").EQ(psql.Arg(*filter.RecurringRuleID))))
		}
		if filter.From != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(*filter.From))))
		}
		if filter.To != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(*filter.To))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// ListByDate returns every transaction dated within [from, to], oldest first.
func (r *Reader) ListByDate(ctx context.Context, from, to time.Time) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(to))),
		sm.OrderBy(psql.Quote("transaction_date")).Asc(),
		sm.OrderBy(psql.Quote("created_at")).Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Transaction]())
}

// SumUpTo adds up the signed amounts of every transaction dated on or before date.
func (r *Reader) SumUpTo(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("COALESCE(SUM(amount), 0)")),
		sm.From(tableName),
		sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(date))),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[decimal.Decimal])
}

// LatestForRule returns the most recent entry posted for ruleID dated on or before
// onOrBefore, or nil when the rule has never posted within that range.
func (r *Reader) LatestForRule(ctx context.Context, ruleID uuid.UUID, onOrBefore time.Time) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("recurring_rule_id").EQ(psql.Arg(ruleID))),
		sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(onOrBefore))),
		sm.OrderBy(psql.Quote("transaction_date")).Desc(),
		sm.Limit(1),
	)
	return oneOrNil(ctx, r.exec, q)
}

func oneOrNil(ctx context.Context, exec bob.Executor, q bob.Query) (*Transaction, error) {
	row, err := bob.One(ctx, exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}
