package services

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/query"
	"expensetracker/internal/repository"
)

// percentPlaces is the rounding applied to every derived percentage.
const percentPlaces = 2

var hundred = decimal.NewFromInt(100)

// dashboardService computes spending aggregations. Trailing windows are
// measured back from now().
type dashboardService struct {
	expenses repository.ExpenseRepository
	now      func() time.Time
}

// NewDashboardService creates a new DashboardServicer. A nil clock means time.Now.
func NewDashboardService(expenses repository.ExpenseRepository, now func() time.Time) DashboardServicer {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{expenses: expenses, now: now}
}

// GetSummary returns count, total, average and maximum over the window.
// An empty window yields all zeros.
func (s *dashboardService) GetSummary(window query.DateRange) (*models.Summary, error) {
	summary, err := s.expenses.Summary(window)
	if err != nil {
		return nil, apperrors.Store("Error fetching summary", err)
	}
	summary.TotalAmount = summary.TotalAmount.Round(models.MoneyPlaces)
	summary.AverageAmount = summary.AverageAmount.Round(models.MoneyPlaces)
	summary.HighestExpense = summary.HighestExpense.Round(models.MoneyPlaces)
	return summary, nil
}

// GetCategoryBreakdown returns each category's share of spending in the
// window. Rounding happens here, once, on exact decimal totals.
func (s *dashboardService) GetCategoryBreakdown(window query.DateRange) ([]models.CategoryBreakdown, error) {
	rows, err := s.expenses.CategoryTotals(window)
	if err != nil {
		return nil, apperrors.Store("Error fetching category breakdown", err)
	}

	grand := decimal.Zero
	for _, r := range rows {
		grand = grand.Add(r.TotalAmount)
	}

	for i := range rows {
		rows[i].TotalAmount = rows[i].TotalAmount.Round(models.MoneyPlaces)
		rows[i].Percentage = percentOf(rows[i].TotalAmount, grand)
	}
	return rows, nil
}

// GetMonthlyTrend buckets spending of the trailing months by calendar month.
// Months without expenses are absent, not zero-filled.
func (s *dashboardService) GetMonthlyTrend(months int) ([]models.MonthlyTrend, error) {
	since := query.TrailingStart(s.now(), query.NormalizeMonths(months))
	rows, err := s.expenses.MonthlyTrend(since)
	if err != nil {
		return nil, apperrors.Store("Error fetching monthly trend", err)
	}
	for i := range rows {
		rows[i].TotalAmount = rows[i].TotalAmount.Round(models.MoneyPlaces)
	}
	return rows, nil
}

// GetCategoryComparison returns per-month, per-category totals over the trailing months.
func (s *dashboardService) GetCategoryComparison(months int) ([]models.CategoryComparison, error) {
	since := query.TrailingStart(s.now(), query.NormalizeMonths(months))
	rows, err := s.expenses.CategoryComparison(since)
	if err != nil {
		return nil, apperrors.Store("Error fetching category comparison", err)
	}
	for i := range rows {
		rows[i].TotalAmount = rows[i].TotalAmount.Round(models.MoneyPlaces)
	}
	return rows, nil
}

// GetCategoryGrowth compares the trailing month with the month before it.
// Categories idle in both windows are dropped.
func (s *dashboardService) GetCategoryGrowth() ([]models.CategoryGrowth, error) {
	now := s.now()
	rows, err := s.expenses.CategoryWindows(query.TrailingStart(now, 1), query.TrailingStart(now, 2))
	if err != nil {
		return nil, apperrors.Store("Error fetching category growth", err)
	}

	growth := make([]models.CategoryGrowth, 0, len(rows))
	for _, r := range rows {
		r.CurrentMonth = r.CurrentMonth.Round(models.MoneyPlaces)
		r.PreviousMonth = r.PreviousMonth.Round(models.MoneyPlaces)
		if r.CurrentMonth.IsZero() && r.PreviousMonth.IsZero() {
			continue
		}
		r.GrowthAmount = r.CurrentMonth.Sub(r.PreviousMonth)
		r.GrowthPercentage = growthPercent(r.CurrentMonth, r.PreviousMonth)
		growth = append(growth, r)
	}
	return growth, nil
}

// percentOf returns part/whole*100 rounded to two places; a zero whole gives zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(percentPlaces)
}

// growthPercent is the relative change from previous to current. Growth from
// nothing counts as 100%; no activity at all counts as 0%.
func growthPercent(current, previous decimal.Decimal) decimal.Decimal {
	switch {
	case previous.IsPositive():
		return current.Sub(previous).Div(previous).Mul(hundred).Round(percentPlaces)
	case current.IsPositive():
		return hundred
	default:
		return decimal.Zero
	}
}
