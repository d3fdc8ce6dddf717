package budget

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const tableName = "budgets"

var columns = []any{"id", "category_id", "amount", "period", "effective_from", "effective_to", "created_at"}

// Period is how often a budget amount resets.
type Period string

const (
	PeriodMonthly Period = "MONTHLY"
	PeriodYearly  Period = "YEARLY"
)

func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToUpper(strings.TrimSpace(s)))
	if p != PeriodMonthly && p != PeriodYearly {
		return "", fmt.Errorf("invalid budget period %q", s)
	}
	return p, nil
}

// Budget caps spending in one category from EffectiveFrom until EffectiveTo (inclusive,
// open-ended when null).
type Budget struct {
	ID            uuid.UUID           `db:"id"`
	CategoryID    uuid.UUID           `db:"category_id"`
	Amount        decimal.Decimal     `db:"amount"`
	Period        Period              `db:"period"`
	EffectiveFrom time.Time           `db:"effective_from"`
	EffectiveTo   null.Val[time.Time] `db:"effective_to"`
	CreatedAt     time.Time           `db:"created_at"`
}

// ActiveDuring reports whether the budget overlaps [from, to].
func (b *Budget) ActiveDuring(from, to time.Time) bool {
	if b.EffectiveFrom.After(to) {
		return false
	}
	if end, ok := b.EffectiveTo.Get(); ok && end.Before(from) {
		return false
	}
	return true
}

// MonthlyAmount is the budget amount for a single month; yearly budgets are spread evenly.
func (b *Budget) MonthlyAmount() decimal.Decimal {
	if b.Period == PeriodYearly {
		return b.Amount.DivRound(decimal.NewFromInt(12), 2)
	}
	return b.Amount
}

// BudgetCreate is the input for creating a new budget.
type BudgetCreate struct {
	CategoryID    uuid.UUID
	Amount        decimal.Decimal
	Period        Period
	EffectiveFrom time.Time
	EffectiveTo   null.Val[time.Time]
}
