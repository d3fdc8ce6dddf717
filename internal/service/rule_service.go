package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/autopost"
	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/schedule"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
)

type ruleReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*rule.Rule, error)
	List(ctx context.Context) ([]*rule.Rule, error)
}

// RuleService manages recurring rules and the manual "generate next" action.
type RuleService struct {
	reader    ruleReader
	processor Processor
	engine    *autopost.Engine
}

func NewRuleService(reader ruleReader, proc Processor, engine *autopost.Engine) *RuleService {
	return &RuleService{reader: reader, processor: proc, engine: engine}
}

// CreateRule stores the amount as a magnitude; its sign comes from the direction when
// entries are posted.
func (s *RuleService) CreateRule(ctx context.Context, create rule.RuleCreate) (uuid.UUID, error) {
	if create.StartDate.IsZero() {
		return uuid.Nil, invalid("startDate is required")
	}
	if !create.Period.Valid() {
		return uuid.Nil, invalid("unsupported period %q", string(create.Period))
	}
	if _, err := rule.ParseDirection(string(create.Direction)); err != nil {
		return uuid.Nil, invalid("%v", err)
	}

	create.Amount = create.Amount.Abs()
	create.StartDate = schedule.DateOf(create.StartDate)
	if end, ok := create.EndDate.Get(); ok {
		end = schedule.DateOf(end)
		if end.Before(create.StartDate) {
			return uuid.Nil, invalid("endDate must not be before startDate")
		}
		create.EndDate.Set(end)
	}

	action := &actions.CreateRule{Create: create}
	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, classify(err)
	}
	return action.ID, nil
}

func (s *RuleService) GetRule(ctx context.Context, id uuid.UUID) (*rule.Rule, error) {
	r, err := s.reader.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *RuleService) ListRules(ctx context.Context) ([]*rule.Rule, error) {
	return s.reader.List(ctx)
}

// UpdateRule applies a partial edit and returns the rule as stored afterwards.
func (s *RuleService) UpdateRule(ctx context.Context, id uuid.UUID, update rule.RuleUpdate) (*rule.Rule, error) {
	existing, err := s.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}

	if v, ok := update.Period.Get(); ok && !v.Valid() {
		return nil, invalid("unsupported period %q", string(v))
	}
	if v, ok := update.Direction.Get(); ok {
		if _, err = rule.ParseDirection(string(v)); err != nil {
			return nil, invalid("%v", err)
		}
	}
	if v, ok := update.Amount.Get(); ok {
		update.Amount.Set(v.Abs())
	}
	if v, ok := update.StartDate.Get(); ok {
		update.StartDate.Set(schedule.DateOf(v))
	}
	if v, ok := update.EndDate.Get(); ok {
		update.EndDate.Set(schedule.DateOf(v))
	}
	if err = checkWindow(existing, &update); err != nil {
		return nil, err
	}

	action := &actions.UpdateRule{ID: id, Update: update}
	if err = s.processor.Process(ctx, action); err != nil {
		return nil, classify(err)
	}
	return action.Rule, nil
}

func (s *RuleService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return classify(s.processor.Process(ctx, &actions.DeleteRule{ID: id}))
}

// GenerateNext posts one entry for the rule at its first occurrence after today.
func (s *RuleService) GenerateNext(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	action := &actions.GenerateNext{Engine: s.engine, RuleID: id}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, classify(err)
	}
	tx := transactionFromStorage(action.Transaction)
	return &tx, nil
}

// checkWindow rejects an update that would leave the end date before the start date.
func checkWindow(existing *rule.Rule, update *rule.RuleUpdate) error {
	var start time.Time
	if v, ok := update.StartDate.Get(); ok {
		start = v
	} else if v, ok := existing.StartDate.Get(); ok {
		start = schedule.DateOf(v)
	}

	var end time.Time
	switch {
	case update.EndDate.IsNull():
		return nil
	case !update.EndDate.IsUnset():
		end = update.EndDate.GetOrZero()
	default:
		v, ok := existing.EndDate.Get()
		if !ok {
			return nil
		}
		end = schedule.DateOf(v)
	}

	if !start.IsZero() && end.Before(start) {
		return invalid("endDate must not be before startDate")
	}
	return nil
}
