package rule

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/schedule"
)

const tableName = "recurring_rules"

var columns = []any{
	"id", "account_id", "category_id", "amount", "direction", "period",
	"start_date", "end_date", "auto_post", "note", "created_at",
}

// Direction says whether a rule's occurrences are inflows or outflows.
type Direction string

const (
	DirectionIncome  Direction = "INCOME"
	DirectionExpense Direction = "EXPENSE"
)

func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if d != DirectionIncome && d != DirectionExpense {
		return "", fmt.Errorf("invalid direction %q", s)
	}
	return d, nil
}

// Rule is a recurring-transaction definition. Fields the scheduler needs are
// nullable because older rows and partial edits can leave them empty; the auto-post
// engine skips such rules instead of failing the batch.
type Rule struct {
	ID         uuid.UUID                 `db:"id"`
	AccountID  uuid.UUID                 `db:"account_id"`
	CategoryID null.Val[uuid.UUID]       `db:"category_id"`
	Amount     null.Val[decimal.Decimal] `db:"amount"`
	Direction  Direction                 `db:"direction"`
	Period     null.Val[schedule.Period] `db:"period"`
	StartDate  null.Val[time.Time]       `db:"start_date"`
	EndDate    null.Val[time.Time]       `db:"end_date"`
	AutoPost   bool                      `db:"auto_post"`
	Note       null.Val[string]          `db:"note"`
	CreatedAt  time.Time                 `db:"created_at"`
}

// RuleCreate is the input for creating a new rule.
type RuleCreate struct {
	AccountID  uuid.UUID
	CategoryID null.Val[uuid.UUID]
	Amount     decimal.Decimal
	Direction  Direction
	Period     schedule.Period
	StartDate  time.Time
	EndDate    null.Val[time.Time]
	AutoPost   bool
	Note       null.Val[string]
}

// RuleUpdate carries a partial edit; unset fields are left untouched.
type RuleUpdate struct {
	AccountID  omit.Val[uuid.UUID]
	CategoryID omitnull.Val[uuid.UUID]
	Amount     omit.Val[decimal.Decimal]
	Direction  omit.Val[Direction]
	Period     omit.Val[schedule.Period]
	StartDate  omit.Val[time.Time]
	EndDate    omitnull.Val[time.Time]
	AutoPost   omit.Val[bool]
	Note       omitnull.Val[string]
}

// Empty reports whether the update changes nothing.
func (u *RuleUpdate) Empty() bool {
	return u.AccountID.IsUnset() && u.CategoryID.IsUnset() && u.Amount.IsUnset() &&
		u.Direction.IsUnset() && u.Period.IsUnset() && u.StartDate.IsUnset() &&
		u.EndDate.IsUnset() && u.AutoPost.IsUnset() && u.Note.IsUnset()
}
