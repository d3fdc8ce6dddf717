// Package analytics exposes the read-only reporting endpoints.
package analytics

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/apierr"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
)

type MonthInput struct {
	Year  int `query:"year" required:"true" minimum:"1" maximum:"9999" doc:"Calendar year"`
	Month int `query:"month" required:"true" minimum:"1" maximum:"12" doc:"Calendar month, 1-12"`
}

type RangeInput struct {
	From string `query:"from" required:"true" doc:"First day (YYYY-MM-DD)"`
	To   string `query:"to" required:"true" doc:"Last day (YYYY-MM-DD), inclusive"`
}

type MonthSummary struct {
	TotalIncome       string `json:"totalIncome" doc:"Sum of INCOME entries"`
	FixedCosts        string `json:"fixedCosts" doc:"Sum of FIXED_COST outflows, positive"`
	VariableExpenses  string `json:"variableExpenses" doc:"Sum of VARIABLE_EXPENSE outflows, positive"`
	Savings           string `json:"savings" doc:"Income minus fixed and variable costs"`
	EndOfMonthBalance string `json:"endOfMonthBalance" doc:"Balance across all accounts at the end of the month"`
}

type MonthSummaryOutput struct {
	Body MonthSummary
}

type CategoryAmount struct {
	CategoryID   string `json:"categoryID" doc:"Category UUID"`
	CategoryName string `json:"categoryName" doc:"Category name"`
	Amount       string `json:"amount" doc:"Outflow in the month, positive"`
}

type CategoryBreakdownOutput struct {
	Body struct {
		Categories []CategoryAmount `json:"categories" doc:"Outflow per category, largest first"`
	}
}

type NetWorthPoint struct {
	Date    string `json:"date" doc:"Day (YYYY-MM-DD)"`
	Balance string `json:"balance" doc:"Balance across all accounts at the end of the day"`
}

type NetWorthOutput struct {
	Body struct {
		Points []NetWorthPoint `json:"points" doc:"One point per day"`
	}
}

type BudgetVsActual struct {
	BudgetID     string `json:"budgetID" doc:"Budget UUID"`
	CategoryID   string `json:"categoryID" doc:"Category UUID"`
	CategoryName string `json:"categoryName" doc:"Category name"`
	Period       string `json:"period" doc:"Budget period"`
	BudgetAmount string `json:"budgetAmount" doc:"Budget for the month, yearly budgets spread over twelve months"`
	ActualAmount string `json:"actualAmount" doc:"Outflow in the category for the month"`
}

type BudgetVsActualOutput struct {
	Body struct {
		Budgets []BudgetVsActual `json:"budgets" doc:"Budgets active during the month"`
	}
}

type analyticsService interface {
	MonthSummary(ctx context.Context, year int, month time.Month) (*service.MonthSummary, error)
	CategoryBreakdown(ctx context.Context, year int, month time.Month) ([]service.CategoryAmount, error)
	NetWorthTrend(ctx context.Context, from, to time.Time) ([]service.NetWorthPoint, error)
	BudgetVsActual(ctx context.Context, year int, month time.Month) ([]service.BudgetVsActual, error)
}

// Handler serves /v1/analytics.
type Handler struct {
	AnalyticsService analyticsService
}

func NewHandler(svc analyticsService) *Handler {
	return &Handler{AnalyticsService: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "month-summary",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/month-summary",
		Summary:     "Monthly income, costs and savings",
		Tags:        []string{"Analytics"},
	}, h.monthSummary)
	huma.Register(api, huma.Operation{
		OperationID: "category-breakdown",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/category-breakdown",
		Summary:     "Monthly outflow per category",
		Tags:        []string{"Analytics"},
	}, h.categoryBreakdown)
	huma.Register(api, huma.Operation{
		OperationID: "net-worth",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/net-worth",
		Summary:     "Daily net worth",
		Description: "Returns the total balance at the end of every day in the range, at most 366 days.",
		Tags:        []string{"Analytics"},
	}, h.netWorth)
	huma.Register(api, huma.Operation{
		OperationID: "budget-vs-actual",
		Method:      http.MethodGet,
		Path:        "/v1/analytics/budget-vs-actual",
		Summary:     "Budgets against actual spending",
		Tags:        []string{"Analytics"},
	}, h.budgetVsActual)
}

func timed(ctx context.Context, name string) func() {
	if logData := logging.GetLogData(ctx); logData != nil {
		return logData.AddTiming(name)
	}
	return func() {}
}

func (h *Handler) monthSummary(ctx context.Context, input *MonthInput) (*MonthSummaryOutput, error) {
	stop := timed(ctx, "monthSummaryMs")
	summary, err := h.AnalyticsService.MonthSummary(ctx, input.Year, time.Month(input.Month))
	stop()
	if err != nil {
		return nil, apierr.FromService(err, "failed to build month summary")
	}

	return &MonthSummaryOutput{Body: MonthSummary{
		TotalIncome:       summary.TotalIncome.StringFixed(2),
		FixedCosts:        summary.FixedCosts.StringFixed(2),
		VariableExpenses:  summary.VariableExpenses.StringFixed(2),
		Savings:           summary.Savings.StringFixed(2),
		EndOfMonthBalance: summary.EndOfMonthBalance.StringFixed(2),
	}}, nil
}

func (h *Handler) categoryBreakdown(ctx context.Context, input *MonthInput) (*CategoryBreakdownOutput, error) {
	stop := timed(ctx, "categoryBreakdownMs")
	rows, err := h.AnalyticsService.CategoryBreakdown(ctx, input.Year, time.Month(input.Month))
	stop()
	if err != nil {
		return nil, apierr.FromService(err, "failed to build category breakdown")
	}

	out := &CategoryBreakdownOutput{}
	out.Body.Categories = make([]CategoryAmount, len(rows))
	for i, row := range rows {
		out.Body.Categories[i] = CategoryAmount{
			CategoryID:   row.CategoryID.String(),
			CategoryName: row.CategoryName,
			Amount:       row.Amount.StringFixed(2),
		}
	}
	return out, nil
}

func (h *Handler) netWorth(ctx context.Context, input *RangeInput) (*NetWorthOutput, error) {
	from, err := apierr.ParseDate("from", input.From)
	if err != nil {
		return nil, err
	}
	to, err := apierr.ParseDate("to", input.To)
	if err != nil {
		return nil, err
	}

	stop := timed(ctx, "netWorthMs")
	points, err := h.AnalyticsService.NetWorthTrend(ctx, from, to)
	stop()
	if err != nil {
		return nil, apierr.FromService(err, "failed to build net worth trend")
	}

	out := &NetWorthOutput{}
	out.Body.Points = make([]NetWorthPoint, len(points))
	for i, p := range points {
		out.Body.Points[i] = NetWorthPoint{
			Date:    apierr.FormatDate(p.Date),
			Balance: p.Balance.StringFixed(2),
		}
	}
	return out, nil
}

func (h *Handler) budgetVsActual(ctx context.Context, input *MonthInput) (*BudgetVsActualOutput, error) {
	stop := timed(ctx, "budgetVsActualMs")
	rows, err := h.AnalyticsService.BudgetVsActual(ctx, input.Year, time.Month(input.Month))
	stop()
	if err != nil {
		return nil, apierr.FromService(err, "failed to compare budgets")
	}

	out := &BudgetVsActualOutput{}
	out.Body.Budgets = make([]BudgetVsActual, len(rows))
	for i, row := range rows {
		out.Body.Budgets[i] = BudgetVsActual{
			BudgetID:     row.BudgetID.String(),
			CategoryID:   row.CategoryID.String(),
			CategoryName: row.CategoryName,
			Period:       string(row.Period),
			BudgetAmount: row.BudgetAmount.StringFixed(2),
			ActualAmount: row.ActualAmount.StringFixed(2),
		}
	}
	return out, nil
}
