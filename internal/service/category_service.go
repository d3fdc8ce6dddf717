package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/operator/actions"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
)

type categoryReader interface {
	List(ctx context.Context) ([]*category.Category, error)
}

type CategoryService struct {
	reader    categoryReader
	processor Processor
}

func NewCategoryService(reader categoryReader, proc Processor) *CategoryService {
	return &CategoryService{reader: reader, processor: proc}
}

func (s *CategoryService) CreateCategory(ctx context.Context, create category.CategoryCreate) (uuid.UUID, error) {
	name := strings.TrimSpace(create.Name)
	if name == "" {
		return uuid.Nil, invalid("category name is required")
	}
	kind, err := category.ParseKind(string(create.Kind))
	if err != nil {
		return uuid.Nil, invalid("%v", err)
	}

	action := &actions.CreateCategory{Name: name, Kind: kind, FixedCost: create.FixedCost}
	if err = s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, classify(err)
	}
	return action.ID, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*category.Category, error) {
	return s.reader.List(ctx)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return classify(s.processor.Process(ctx, &actions.DeleteCategory{ID: id}))
}
