package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/rule"
)

// CreateRule stores a new recurring rule after checking that what it points at exists.
type CreateRule struct {
	Create rule.RuleCreate

	ID uuid.UUID
}

func (c *CreateRule) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := checkRuleReferences(ctx, writer, c.Create.AccountID, c.Create.CategoryID.Ptr()); err != nil {
		return err
	}

	id, err := writer.Rule.Create(ctx, &c.Create)
	if err != nil {
		return err
	}

	c.ID = id
	return nil
}

// UpdateRule applies a partial edit and reloads the rule into Rule.
type UpdateRule struct {
	ID     uuid.UUID
	Update rule.RuleUpdate

	Rule *rule.Rule
}

func (u *UpdateRule) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Rule.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("rule", u.ID)
	}

	if v, ok := u.Update.AccountID.Get(); ok {
		if err = checkAccount(ctx, writer, v); err != nil {
			return err
		}
	}
	if v, ok := u.Update.CategoryID.Get(); ok {
		if err = checkCategory(ctx, writer, v); err != nil {
			return err
		}
	}

	if err = writer.Rule.Update(ctx, u.ID, &u.Update); err != nil {
		return err
	}

	u.Rule, err = writer.Rule.FindByID(ctx, u.ID)
	return err
}

type DeleteRule struct {
	ID uuid.UUID
}

func (d *DeleteRule) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Rule.FindByID(ctx, d.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("rule", d.ID)
	}

	return writer.Rule.Delete(ctx, d.ID)
}

func checkRuleReferences(ctx context.Context, writer *storage.Writer, accountID uuid.UUID, categoryID *uuid.UUID) error {
	if err := checkAccount(ctx, writer, accountID); err != nil {
		return err
	}
	if categoryID == nil {
		return nil
	}
	return checkCategory(ctx, writer, *categoryID)
}

func checkAccount(ctx context.Context, writer *storage.Writer, id uuid.UUID) error {
	acct, err := writer.Account.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if acct == nil {
		return missingReference("account", id)
	}
	return nil
}

func checkCategory(ctx context.Context, writer *storage.Writer, id uuid.UUID) error {
	cat, err := writer.Category.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return missingReference("category", id)
	}
	return nil
}
