package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage/budget"
)

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) CreateBudget(ctx context.Context, create budget.BudgetCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func (m *mockBudgetService) ListBudgets(ctx context.Context) ([]*budget.Budget, error) {
	args := m.Called(ctx)
	budgets, _ := args.Get(0).([]*budget.Budget)
	return budgets, args.Error(1)
}

func (m *mockBudgetService) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func newTestAPI(t *testing.T, svc *mockBudgetService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(svc).Register(api)
	return api
}

func TestParseCreateBudgetInput(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())

	create, err := parseCreateBudgetInput(&CreateBudgetInput{Body: CreateBudgetBody{
		CategoryID:    categoryID.String(),
		Amount:        "1200",
		Period:        "YEARLY",
		EffectiveFrom: "2024-01-01",
		EffectiveTo:   "2024-12-31",
	}})

	require.NoError(t, err)
	assert.Equal(t, categoryID, create.CategoryID)
	assert.Equal(t, budget.PeriodYearly, create.Period)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), create.EffectiveTo.GetOrZero())
}

func TestHTTP_CreateBudget_ValidationErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		body CreateBudgetBody
	}{
		{"amount", CreateBudgetBody{Amount: "plenty", EffectiveFrom: "2024-01-01"}},
		{"from", CreateBudgetBody{Amount: "10", EffectiveFrom: "01/01/2024"}},
		{"to", CreateBudgetBody{Amount: "10", EffectiveFrom: "2024-01-01", EffectiveTo: "never"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockBudgetService)
			tc.body.CategoryID = uuid.Must(uuid.NewV4()).String()
			tc.body.Period = "MONTHLY"

			resp := newTestAPI(t, svc).Post("/v1/budget", tc.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			svc.AssertNotCalled(t, "CreateBudget")
		})
	}
}

func TestHTTP_CreateBudget_ServiceErrors(t *testing.T) {
	for _, tc := range []struct {
		err  error
		code int
	}{
		{nil, http.StatusCreated},
		{fmt.Errorf("%w: category does not exist", service.ErrInvalid), http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	} {
		svc := new(mockBudgetService)
		svc.On("CreateBudget", mock.Anything, mock.Anything).Return(uuid.Must(uuid.NewV4()), tc.err)

		resp := newTestAPI(t, svc).Post("/v1/budget", CreateBudgetBody{
			CategoryID:    uuid.Must(uuid.NewV4()).String(),
			Amount:        "300",
			Period:        "MONTHLY",
			EffectiveFrom: "2024-01-01",
		})

		assert.Equal(t, tc.code, resp.Code)
	}
}

func TestHTTP_ListBudgets(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("ListBudgets", mock.Anything).Return([]*budget.Budget{{
		ID:            uuid.Must(uuid.NewV4()),
		CategoryID:    uuid.Must(uuid.NewV4()),
		Amount:        decimal.RequireFromString("300"),
		Period:        budget.PeriodMonthly,
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EffectiveTo:   null.From(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)),
	}}, nil)

	resp := newTestAPI(t, svc).Get("/v1/budget")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Budgets []Budget `json:"budgets"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Budgets, 1)
	assert.Equal(t, "2024-01-01", body.Budgets[0].EffectiveFrom)
	assert.Equal(t, "2024-06-30", body.Budgets[0].EffectiveTo)
}

func TestHTTP_DeleteBudget_NotFound(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := new(mockBudgetService)
	svc.On("DeleteBudget", mock.Anything, id).Return(fmt.Errorf("%w: budget", service.ErrNotFound))

	resp := newTestAPI(t, svc).Delete("/v1/budget/" + id.String())

	assert.Equal(t, http.StatusNotFound, resp.Code)
	svc.AssertExpectations(t)
}
