package service

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-ledger/internal/schedule"
	"github.com/carson-networks/finance-ledger/internal/storage/budget"
	"github.com/carson-networks/finance-ledger/internal/storage/transaction"
)

// MaxNetWorthDays caps the length of a net-worth trend.
const MaxNetWorthDays = 366

type startingBalanceReader interface {
	TotalStartingBalance(ctx context.Context) (decimal.Decimal, error)
}

type ledgerReader interface {
	ListByDate(ctx context.Context, from, to time.Time) ([]*transaction.Transaction, error)
	SumUpTo(ctx context.Context, date time.Time) (decimal.Decimal, error)
}

type MonthSummary struct {
	TotalIncome       decimal.Decimal
	FixedCosts        decimal.Decimal
	VariableExpenses  decimal.Decimal
	Savings           decimal.Decimal
	EndOfMonthBalance decimal.Decimal
}

type CategoryAmount struct {
	CategoryID   uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
}

type NetWorthPoint struct {
	Date    time.Time
	Balance decimal.Decimal
}

type BudgetVsActual struct {
	BudgetID     uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	Period       budget.Period
	BudgetAmount decimal.Decimal
	ActualAmount decimal.Decimal
}

// AnalyticsService derives read-only reports from the ledger.
type AnalyticsService struct {
	accounts     startingBalanceReader
	transactions ledgerReader
	categories   categoryReader
	budgets      budgetReader
}

func NewAnalyticsService(accounts startingBalanceReader, transactions ledgerReader, categories categoryReader, budgets budgetReader) *AnalyticsService {
	return &AnalyticsService{
		accounts:     accounts,
		transactions: transactions,
		categories:   categories,
		budgets:      budgets,
	}
}

// MonthSummary totals income and outflows by type for one month. Outflows are reported as
// positive amounts; the end balance is every account's starting balance plus every entry
// dated up to the last day of the month.
func (s *AnalyticsService) MonthSummary(ctx context.Context, year int, month time.Month) (*MonthSummary, error) {
	start, end, err := monthRange(year, month)
	if err != nil {
		return nil, err
	}

	rows, err := s.transactions.ListByDate(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := &MonthSummary{}
	for _, tx := range rows {
		switch tx.Type {
		case transaction.TypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		case transaction.TypeFixedCost:
			summary.FixedCosts = summary.FixedCosts.Add(tx.Amount.Abs())
		case transaction.TypeVariableExpense:
			summary.VariableExpenses = summary.VariableExpenses.Add(tx.Amount.Abs())
		}
	}
	summary.Savings = summary.TotalIncome.Sub(summary.FixedCosts.Add(summary.VariableExpenses))

	summary.EndOfMonthBalance, err = s.balanceUpTo(ctx, end)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// CategoryBreakdown sums the outflows of one month per category, largest first.
// Uncategorized entries and inflows are left out.
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, year int, month time.Month) ([]CategoryAmount, error) {
	start, end, err := monthRange(year, month)
	if err != nil {
		return nil, err
	}

	outflows, err := s.outflowsByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := make([]CategoryAmount, 0, len(outflows))
	for id, amount := range outflows {
		breakdown = append(breakdown, CategoryAmount{
			CategoryID:   id,
			CategoryName: names[id],
			Amount:       amount,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if c := breakdown[i].Amount.Cmp(breakdown[j].Amount); c != 0 {
			return c > 0
		}
		return breakdown[i].CategoryName < breakdown[j].CategoryName
	})
	return breakdown, nil
}

// NetWorthTrend returns the total balance at the end of every day in [from, to].
func (s *AnalyticsService) NetWorthTrend(ctx context.Context, from, to time.Time) ([]NetWorthPoint, error) {
	from, to = schedule.DateOf(from), schedule.DateOf(to)
	if to.Before(from) {
		return nil, invalid("to must not be before from")
	}
	days := int(to.Sub(from).Hours()/24) + 1
	if days > MaxNetWorthDays {
		return nil, invalid("range is %d days, at most %d are allowed", days, MaxNetWorthDays)
	}

	balance, err := s.balanceUpTo(ctx, from.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	rows, err := s.transactions.ListByDate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	daily := make(map[time.Time]decimal.Decimal, len(rows))
	for _, tx := range rows {
		day := schedule.DateOf(tx.TransactionDate)
		daily[day] = daily[day].Add(tx.Amount)
	}

	points := make([]NetWorthPoint, 0, days)
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		balance = balance.Add(daily[day])
		points = append(points, NetWorthPoint{Date: day, Balance: balance})
	}
	return points, nil
}

// BudgetVsActual compares every budget active in the month with that month's outflows in
// its category. Yearly budgets are spread evenly over twelve months.
func (s *AnalyticsService) BudgetVsActual(ctx context.Context, year int, month time.Month) ([]BudgetVsActual, error) {
	start, end, err := monthRange(year, month)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return nil, err
	}
	outflows, err := s.outflowsByCategory(ctx, start, end)
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	var report []BudgetVsActual
	for _, b := range budgets {
		if !b.ActiveDuring(start, end) {
			continue
		}
		report = append(report, BudgetVsActual{
			BudgetID:     b.ID,
			CategoryID:   b.CategoryID,
			CategoryName: names[b.CategoryID],
			Period:       b.Period,
			BudgetAmount: b.MonthlyAmount(),
			ActualAmount: outflows[b.CategoryID],
		})
	}
	sort.SliceStable(report, func(i, j int) bool {
		return report[i].CategoryName < report[j].CategoryName
	})
	return report, nil
}

func (s *AnalyticsService) balanceUpTo(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	starting, err := s.accounts.TotalStartingBalance(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	movements, err := s.transactions.SumUpTo(ctx, date)
	if err != nil {
		return decimal.Zero, err
	}
	return starting.Add(movements), nil
}

func (s *AnalyticsService) outflowsByCategory(ctx context.Context, start, end time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	rows, err := s.transactions.ListByDate(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totals := map[uuid.UUID]decimal.Decimal{}
	for _, tx := range rows {
		categoryID, ok := tx.CategoryID.Get()
		if !ok || !tx.Amount.IsNegative() {
			continue
		}
		totals[categoryID] = totals[categoryID].Add(tx.Amount.Abs())
	}
	return totals, nil
}

func (s *AnalyticsService) categoryNames(ctx context.Context) (map[uuid.UUID]string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func monthRange(year int, month time.Month) (time.Time, time.Time, error) {
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, invalid("year %d is out of range", year)
	}
	if month < time.January || month > time.December {
		return time.Time{}, time.Time{}, invalid("month %d is out of range", int(month))
	}
	start := schedule.Date(year, month, 1)
	return start, start.AddDate(0, 1, -1), nil
}
