// Package budget exposes the budget endpoints.
package budget

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/null"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/storage/budget"
)

// Budget is the API response model for a budget.
type Budget struct {
	ID            string `json:"id" doc:"Budget UUID"`
	CategoryID    string `json:"categoryID" doc:"Category UUID"`
	Amount        string `json:"amount" doc:"Decimal budget amount per period"`
	Period        string `json:"period" doc:"MONTHLY or YEARLY"`
	EffectiveFrom string `json:"effectiveFrom" doc:"First day the budget applies (YYYY-MM-DD)"`
	EffectiveTo   string `json:"effectiveTo,omitempty" doc:"Last day the budget applies (YYYY-MM-DD), open-ended when absent"`
}

type CreateBudgetBody struct {
	CategoryID    string `json:"categoryID" format:"uuid" doc:"Category UUID"`
	Amount        string `json:"amount" doc:"Positive decimal amount per period"`
	Period        string `json:"period" enum:"MONTHLY,YEARLY" doc:"MONTHLY or YEARLY"`
	EffectiveFrom string `json:"effectiveFrom" doc:"First day the budget applies (YYYY-MM-DD)"`
	EffectiveTo   string `json:"effectiveTo,omitempty" doc:"Last day the budget applies (YYYY-MM-DD)"`
}

type CreateBudgetInput struct {
	Body CreateBudgetBody
}

type CreateBudgetOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created budget UUID"`
	}
}

type ListBudgetsOutput struct {
	Body struct {
		Budgets []Budget `json:"budgets" doc:"All budgets"`
	}
}

type DeleteBudgetInput struct {
	ID string `path:"id" format:"uuid" doc:"Budget UUID"`
}

type budgetService interface {
	CreateBudget(ctx context.Context, create budget.BudgetCreate) (uuid.UUID, error)
	ListBudgets(ctx context.Context) ([]*budget.Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

// Handler serves /v1/budget.
type Handler struct {
	BudgetService budgetService
}

func NewHandler(svc budgetService) *Handler {
	return &Handler{BudgetService: svc}
}

// Register registers the budget endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-budget",
		Method:        http.MethodPost,
		Path:          "/v1/budget",
		Summary:       "Create a budget",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusCreated,
	}, h.create)
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "List budgets",
		Tags:        []string{"Budgets"},
	}, h.list)
	huma.Register(api, huma.Operation{
		OperationID:   "delete-budget",
		Method:        http.MethodDelete,
		Path:          "/v1/budget/{id}",
		Summary:       "Delete a budget",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func parseCreateBudgetInput(input *CreateBudgetInput) (budget.BudgetCreate, error) {
	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return budget.BudgetCreate{}, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
	}
	amount, err := apierr.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return budget.BudgetCreate{}, err
	}
	from, err := apierr.ParseDate("effectiveFrom", input.Body.EffectiveFrom)
	if err != nil {
		return budget.BudgetCreate{}, err
	}

	create := budget.BudgetCreate{
		CategoryID:    categoryID,
		Amount:        amount,
		Period:        budget.Period(input.Body.Period),
		EffectiveFrom: from,
	}
	if input.Body.EffectiveTo != "" {
		to, err := apierr.ParseDate("effectiveTo", input.Body.EffectiveTo)
		if err != nil {
			return budget.BudgetCreate{}, err
		}
		create.EffectiveTo = null.From(to)
	}
	return create, nil
}

func (h *Handler) create(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	create, err := parseCreateBudgetInput(input)
	if err != nil {
		return nil, err
	}

	id, err := h.BudgetService.CreateBudget(ctx, create)
	if err != nil {
		return nil, apierr.FromService(err, "failed to create budget")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("budgetID", id.String())
	}

	out := &CreateBudgetOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*ListBudgetsOutput, error) {
	budgets, err := h.BudgetService.ListBudgets(ctx)
	if err != nil {
		return nil, apierr.FromService(err, "failed to list budgets")
	}

	out := &ListBudgetsOutput{}
	out.Body.Budgets = make([]Budget, len(budgets))
	for i, b := range budgets {
		out.Body.Budgets[i] = Budget{
			ID:            b.ID.String(),
			CategoryID:    b.CategoryID.String(),
			Amount:        b.Amount.String(),
			Period:        string(b.Period),
			EffectiveFrom: apierr.FormatDate(b.EffectiveFrom),
		}
		if to, ok := b.EffectiveTo.Get(); ok {
			out.Body.Budgets[i].EffectiveTo = apierr.FormatDate(to)
		}
	}
	return out, nil
}

func (h *Handler) delete(ctx context.Context, input *DeleteBudgetInput) (*struct{}, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	if err = h.BudgetService.DeleteBudget(ctx, id); err != nil {
		return nil, apierr.FromService(err, "failed to delete budget")
	}
	return &struct{}{}, nil
}
