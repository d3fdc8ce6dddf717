// Package category exposes the category endpoints.
package category

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/storage/category"
)

// Category is the API response model for a category.
type Category struct {
	ID        string `json:"id" doc:"Category UUID"`
	Name      string `json:"name" doc:"Category name"`
	Kind      string `json:"kind" doc:"INCOME or EXPENSE"`
	FixedCost bool   `json:"fixedCost" doc:"Whether spending in this category is a fixed cost"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
}

type CreateCategoryBody struct {
	Name      string `json:"name" minLength:"1" doc:"Category name"`
	Kind      string `json:"kind" enum:"INCOME,EXPENSE" doc:"INCOME or EXPENSE"`
	FixedCost bool   `json:"fixedCost,omitempty" doc:"Whether spending in this category is a fixed cost"`
}

type CreateCategoryInput struct {
	Body CreateCategoryBody
}

type CreateCategoryOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created category UUID"`
	}
}

type ListCategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories" doc:"All categories ordered by name"`
	}
}

type DeleteCategoryInput struct {
	ID string `path:"id" format:"uuid" doc:"Category UUID"`
}

type categoryService interface {
	CreateCategory(ctx context.Context, create category.CategoryCreate) (uuid.UUID, error)
	ListCategories(ctx context.Context) ([]*category.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// Handler serves /v1/category.
type Handler struct {
	CategoryService categoryService
}

func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

// Register registers the category endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/category",
		Summary:       "Create a category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/category",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/v1/category/{id}",
		Summary:       "Delete a category",
		Description:   "Deletes a category and its budgets. Transactions that referenced it become uncategorised.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *Handler) create(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	id, err := h.CategoryService.CreateCategory(ctx, category.CategoryCreate{
		Name:      input.Body.Name,
		Kind:      category.Kind(input.Body.Kind),
		FixedCost: input.Body.FixedCost,
	})
	if err != nil {
		return nil, apierr.FromService(err, "failed to create category")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("categoryID", id.String())
	}

	out := &CreateCategoryOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories, err := h.CategoryService.ListCategories(ctx)
	if err != nil {
		return nil, apierr.FromService(err, "failed to list categories")
	}

	out := &ListCategoriesOutput{}
	out.Body.Categories = make([]Category, len(categories))
	for i, c := range categories {
		out.Body.Categories[i] = Category{
			ID:        c.ID.String(),
			Name:      c.Name,
			Kind:      string(c.Kind),
			FixedCost: c.FixedCost,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteCategoryInput) (*struct{}, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	if err = h.CategoryService.DeleteCategory(ctx, id); err != nil {
		return nil, apierr.FromService(err, "failed to delete category")
	}
	return &struct{}{}, nil
}
