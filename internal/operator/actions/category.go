package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
)

type CreateCategory struct {
	Name      string
	Kind      category.Kind
	FixedCost bool

	ID uuid.UUID
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Category.Create(ctx, &category.CategoryCreate{
		Name:      c.Name,
		Kind:      c.Kind,
		FixedCost: c.FixedCost,
	})
	if err != nil {
		return err
	}

	c.ID = id
	return nil
}

type DeleteCategory struct {
	ID uuid.UUID
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Category.FindByID(ctx, d.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("category", d.ID)
	}

	return writer.Category.Delete(ctx, d.ID)
}
