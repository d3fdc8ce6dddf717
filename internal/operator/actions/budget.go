package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/budget"
)

type CreateBudget struct {
	Create budget.BudgetCreate

	ID uuid.UUID
}

func (c *CreateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	cat, err := writer.Category.FindByID(ctx, c.Create.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return missingReference("category", c.Create.CategoryID)
	}

	id, err := writer.Budget.Create(ctx, &c.Create)
	if err != nil {
		return err
	}

	c.ID = id
	return nil
}

type DeleteBudget struct {
	ID uuid.UUID
}

func (d *DeleteBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Budget.FindByID(ctx, d.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("budget", d.ID)
	}

	return writer.Budget.Delete(ctx, d.ID)
}
