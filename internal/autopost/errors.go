package autopost

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/schedule"
)

var (
	ErrMissingAmount      = errors.New("autopost: rule amount is required")
	ErrAccountNotFound    = errors.New("autopost: account not found for rule")
	ErrCategoryNotFound   = errors.New("autopost: category not found for rule")
	ErrRuleNotFound       = errors.New("autopost: rule not found")
	ErrNoFutureOccurrence = errors.New("autopost: no future occurrences for this rule")
)

// RuleError ties a failure to the rule that caused it.
type RuleError struct {
	RuleID uuid.UUID
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// OccurrenceLimitError is returned when a rule still has due occurrences after the
// per-pass maximum was posted. The next pass resumes where this one stopped.
type OccurrenceLimitError struct {
	Limit int
	Next  time.Time
}

func (e *OccurrenceLimitError) Error() string {
	return fmt.Sprintf("autopost: posted the maximum of %d occurrences in one pass, next due %s",
		e.Limit, e.Next.Format(time.DateOnly))
}

func (e *OccurrenceLimitError) Is(target error) bool {
	return target == schedule.ErrScheduleUnbounded
}

// IsRuleFailure reports whether err is a problem with a single rule's data, as opposed
// to an infrastructure failure.
func IsRuleFailure(err error) bool {
	for _, target := range []error{
		schedule.ErrMissingDate,
		schedule.ErrMissingPeriod,
		schedule.ErrInvalidPeriod,
		schedule.ErrScheduleUnbounded,
		ErrMissingAmount,
		ErrAccountNotFound,
		ErrCategoryNotFound,
		ErrRuleNotFound,
		ErrNoFutureOccurrence,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
