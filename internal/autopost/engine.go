// Package autopost posts the due occurrences of recurring rules to the ledger.
//
// Progress is never cached on the rule: where a rule resumes is derived from the latest
// entry it has already posted, which makes every pass idempotent and lets a late pass
// back-fill every missed occurrence. Callers must not run two passes concurrently
// against the same ledger; storage.Writer.LockAutoPost provides that in production.
package autopost

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-ledger/internal/schedule"
	"github.com/carson-networks/finance-ledger/internal/storage/account"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

const (
	DefaultMaxOccurrencesPerPass = 1000
)

// Store is the slice of the ledger the engine reads and appends to. Find* methods
// return nil without an error when the record does not exist.
type Store interface {
	ListAutoPostRules(ctx context.Context) ([]*rule.Rule, error)
	FindRule(ctx context.Context, id uuid.UUID) (*rule.Rule, error)
	FindAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*category.Category, error)
	FindTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	LatestRuleTransaction(ctx context.Context, ruleID uuid.UUID, onOrBefore time.Time) (*transaction.Transaction, error)
	PostTransaction(ctx context.Context, create *transaction.TransactionCreate) (uuid.UUID, error)
}

type Config struct {
	// MaxOccurrencesPerPass caps how many entries one rule may post in a single pass.
	MaxOccurrencesPerPass int
	// MaxSearchSteps bounds the occurrence search used by GenerateNext.
	MaxSearchSteps int
}

type Engine struct {
	cfg    Config
	logger *logrus.Logger
	now    func() time.Time
}

type Option func(*Engine)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(cfg Config, logger *logrus.Logger, opts ...Option) *Engine {
	if cfg.MaxOccurrencesPerPass <= 0 {
		cfg.MaxOccurrencesPerPass = DefaultMaxOccurrencesPerPass
	}
	if cfg.MaxSearchSteps <= 0 {
		cfg.MaxSearchSteps = schedule.DefaultMaxSearchSteps
	}

	e := &Engine{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today is the engine clock's current civil date.
func (e *Engine) Today() time.Time {
	return schedule.DateOf(e.now())
}

// AutoPostDue posts every due, unposted occurrence of every auto-post rule up to and
// including referenceDate (today when zero) and returns how many entries it created.
//
// A rule with bad data is logged and skipped without affecting the others; entries it
// posted before failing stay. The returned error is reserved for store failures, after
// which the caller should discard the pass.
func (e *Engine) AutoPostDue(ctx context.Context, store Store, referenceDate time.Time) (int, error) {
	if referenceDate.IsZero() {
		referenceDate = e.now()
	}
	referenceDate = schedule.DateOf(referenceDate)

	rules, err := store.ListAutoPostRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("list auto-post rules: %w", err)
	}

	created := 0
	skipped := 0
	for _, r := range rules {
		n, err := e.autoPostRule(ctx, store, r, referenceDate)
		created += n
		if err == nil {
			continue
		}
		if !IsRuleFailure(err) {
			return 0, &RuleError{RuleID: r.ID, Err: err}
		}

		skipped++
		e.logger.WithFields(logrus.Fields{
			"ruleID":        r.ID.String(),
			"posted":        n,
			"referenceDate": referenceDate.Format(time.DateOnly),
		}).WithError(err).Warn("AutoPost.Rule.Skipped")
	}

	e.logger.WithFields(logrus.Fields{
		"created":       created,
		"rules":         len(rules),
		"skipped":       skipped,
		"referenceDate": referenceDate.Format(time.DateOnly),
	}).Info("AutoPost.Pass.Complete")

	return created, nil
}

func (e *Engine) autoPostRule(ctx context.Context, store Store, r *rule.Rule, referenceDate time.Time) (int, error) {
	start, ok := r.StartDate.Get()
	if !ok {
		return 0, schedule.ErrMissingDate
	}
	period, ok := r.Period.Get()
	if !ok || period == "" {
		return 0, schedule.ErrMissingPeriod
	}
	if !period.Valid() {
		return 0, fmt.Errorf("%w: %q", schedule.ErrInvalidPeriod, string(period))
	}

	next, err := e.resumePoint(ctx, store, r.ID, start, period, referenceDate)
	if err != nil {
		return 0, err
	}

	var tmpl *entryTemplate
	created := 0
	for !next.After(referenceDate) {
		if end, ok := r.EndDate.Get(); ok && next.After(schedule.DateOf(end)) {
			break
		}
		if created >= e.cfg.MaxOccurrencesPerPass {
			return created, &OccurrenceLimitError{Limit: e.cfg.MaxOccurrencesPerPass, Next: next}
		}

		if tmpl == nil {
			if tmpl, err = template(ctx, store, r); err != nil {
				return created, err
			}
		}
		if _, err = store.PostTransaction(ctx, tmpl.on(next)); err != nil {
			return created, err
		}
		created++

		if next, err = schedule.Advance(next, period); err != nil {
			return created, err
		}
	}
	return created, nil
}

// resumePoint is the day after the last posted occurrence, or the start date when the
// rule has never posted.
func (e *Engine) resumePoint(
	ctx context.Context,
	store Store,
	ruleID uuid.UUID,
	start time.Time,
	period schedule.Period,
	referenceDate time.Time,
) (time.Time, error) {
	latest, err := store.LatestRuleTransaction(ctx, ruleID, referenceDate)
	if err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return schedule.DateOf(start), nil
	}
	return schedule.Advance(latest.TransactionDate, period)
}

// GenerateNext posts exactly one entry for the rule, dated at the first occurrence after
// today counted from the rule's start date. Posting history is not consulted, so calling
// it twice on the same day posts the same date twice. Every failure is returned.
func (e *Engine) GenerateNext(ctx context.Context, store Store, ruleID uuid.UUID) (*transaction.Transaction, error) {
	r, err := store.FindRule(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &RuleError{RuleID: ruleID, Err: ErrRuleNotFound}
	}

	start, ok := r.StartDate.Get()
	if !ok {
		return nil, &RuleError{RuleID: ruleID, Err: schedule.ErrMissingDate}
	}
	period, ok := r.Period.Get()
	if !ok {
		return nil, &RuleError{RuleID: ruleID, Err: schedule.ErrMissingPeriod}
	}

	next, err := schedule.FirstOccurrenceAfter(e.Today(), start, period, e.cfg.MaxSearchSteps)
	if err != nil {
		return nil, &RuleError{RuleID: ruleID, Err: err}
	}
	if end, ok := r.EndDate.Get(); ok && next.After(schedule.DateOf(end)) {
		return nil, &RuleError{RuleID: ruleID, Err: ErrNoFutureOccurrence}
	}

	tmpl, err := template(ctx, store, r)
	if err != nil {
		if IsRuleFailure(err) {
			return nil, &RuleError{RuleID: ruleID, Err: err}
		}
		return nil, err
	}

	id, err := store.PostTransaction(ctx, tmpl.on(next))
	if err != nil {
		return nil, err
	}
	return store.FindTransaction(ctx, id)
}
