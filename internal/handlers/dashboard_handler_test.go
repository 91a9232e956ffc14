package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/query"
)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	r.GET("/dashboard/summary", handler.GetSummary)
	r.GET("/dashboard/category-breakdown", handler.GetCategoryBreakdown)
	r.GET("/dashboard/monthly-trend", handler.GetMonthlyTrend)
	r.GET("/dashboard/category-comparison", handler.GetCategoryComparison)
	r.GET("/dashboard/category-growth", handler.GetCategoryGrowth)
	return r
}

func TestDashboardHandler_GetSummary(t *testing.T) {
	t.Run("passes the window and returns the summary", func(t *testing.T) {
		var got query.DateRange
		svc := &mockDashboardService{
			getSummaryFn: func(window query.DateRange) (*models.Summary, error) {
				got = window
				return &models.Summary{
					TotalTransactions: 2,
					TotalAmount:       decimal.RequireFromString("150"),
					AverageAmount:     decimal.RequireFromString("75"),
					HighestExpense:    decimal.RequireFromString("100"),
				}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/summary?startDate=2025-01-01", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Start == nil || got.Start.String() != "2025-01-01" || got.End != nil {
			t.Errorf("unexpected window %+v", got)
		}
		data := dataObject(t, parseJSON(t, rec))
		if data["total_transactions"] != float64(2) || data["total_amount"] != float64(150) {
			t.Errorf("unexpected summary %v", data)
		}
	})

	t.Run("returns 400 on malformed date", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, "GET", "/dashboard/summary?endDate=yesterday", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestDashboardHandler_GetCategoryBreakdown(t *testing.T) {
	svc := &mockDashboardService{
		getCategoryBreakdownFn: func(query.DateRange) ([]models.CategoryBreakdown, error) {
			return []models.CategoryBreakdown{
				{CategoryID: 1, CategoryName: "Food", TransactionCount: 1, TotalAmount: decimal.NewFromInt(75), Percentage: decimal.NewFromInt(75)},
				{CategoryID: 2, CategoryName: "Travel", TransactionCount: 1, TotalAmount: decimal.NewFromInt(25), Percentage: decimal.NewFromInt(25)},
			}, nil
		},
	}
	r := setupDashboardRouter(NewDashboardHandler(svc))

	rec := doRequest(r, "GET", "/dashboard/category-breakdown", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rows := dataList(t, parseJSON(t, rec))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].(map[string]interface{})["percentage"] != float64(75) {
		t.Errorf("unexpected first row %v", rows[0])
	}
}

func TestDashboardHandler_GetMonthlyTrend(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		months int
	}{
		{"default", "/dashboard/monthly-trend", query.DefaultMonths},
		{"explicit", "/dashboard/monthly-trend?months=12", 12},
		{"non-numeric", "/dashboard/monthly-trend?months=abc", query.DefaultMonths},
		{"negative passed through", "/dashboard/monthly-trend?months=-3", -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got int
			svc := &mockDashboardService{
				getMonthlyTrendFn: func(months int) ([]models.MonthlyTrend, error) {
					got = months
					return []models.MonthlyTrend{{Month: "2025-01", TransactionCount: 1, TotalAmount: decimal.NewFromInt(100)}}, nil
				},
			}
			r := setupDashboardRouter(NewDashboardHandler(svc))

			rec := doRequest(r, "GET", tc.path, "")

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if got != tc.months {
				t.Errorf("expected months %d, got %d", tc.months, got)
			}
		})
	}
}

func TestDashboardHandler_GetCategoryComparison(t *testing.T) {
	var got int
	svc := &mockDashboardService{
		getCategoryComparisonFn: func(months int) ([]models.CategoryComparison, error) {
			got = months
			return nil, nil
		},
	}
	r := setupDashboardRouter(NewDashboardHandler(svc))

	rec := doRequest(r, "GET", "/dashboard/category-comparison?months=3", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != 3 {
		t.Errorf("expected months 3, got %d", got)
	}
	if len(dataList(t, parseJSON(t, rec))) != 0 {
		t.Errorf("expected empty array")
	}
}

func TestDashboardHandler_GetCategoryGrowth(t *testing.T) {
	svc := &mockDashboardService{
		getCategoryGrowthFn: func() ([]models.CategoryGrowth, error) {
			return []models.CategoryGrowth{{
				ID:               1,
				Name:             "Food",
				CurrentMonth:     decimal.NewFromInt(20),
				PreviousMonth:    decimal.NewFromInt(30),
				GrowthAmount:     decimal.NewFromInt(-10),
				GrowthPercentage: decimal.RequireFromString("-33.33"),
			}}, nil
		},
	}
	r := setupDashboardRouter(NewDashboardHandler(svc))

	rec := doRequest(r, "GET", "/dashboard/category-growth", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	row := dataList(t, parseJSON(t, rec))[0].(map[string]interface{})
	if row["growth_percentage"] != -33.33 || row["growth_amount"] != float64(-10) {
		t.Errorf("unexpected growth row %v", row)
	}
}
