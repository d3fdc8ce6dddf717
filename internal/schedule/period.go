package schedule

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Period is the fixed set of recurrence intervals a rule can use.
type Period string

const (
	PeriodDaily   Period = "DAILY"
	PeriodWeekly  Period = "WEEKLY"
	PeriodMonthly Period = "MONTHLY"
	PeriodYearly  Period = "YEARLY"
)

// Periods lists every recognized period in ascending length.
var Periods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}

// ParsePeriod normalizes case and rejects anything outside Periods.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToUpper(strings.TrimSpace(s)))
	if p == "" {
		return "", ErrMissingPeriod
	}
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return p, nil
}

func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

func (p Period) String() string {
	return string(p)
}

// Scan implements sql.Scanner so periods can be read straight from a text column.
func (p *Period) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*p = Period(v)
	case []byte:
		*p = Period(v)
	case nil:
		*p = ""
	default:
		return fmt.Errorf("schedule: cannot scan %T into Period", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (p Period) Value() (driver.Value, error) {
	return string(p), nil
}
