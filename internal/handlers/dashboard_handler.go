package handlers

import (
	"github.com/gin-gonic/gin"

	"expensetracker/internal/response"
	"expensetracker/internal/services"
)

// DashboardHandler serves the spending aggregations.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary handles the spending summary
// @Summary     Spending summary
// @Description Count, total, average and largest expense in an optional date window. An empty window is all zeros.
// @Tags        dashboard
// @Produce     json
// @Param       startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       endDate   query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success     200 {object} response.Envelope{data=models.Summary} "Summary"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	window, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetSummary(window)
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.OK(c, summary)
}

// GetCategoryBreakdown handles per-category spending shares
// @Summary     Category breakdown
// @Description Per-category count, total and percentage of the window's spending, largest first
// @Tags        dashboard
// @Produce     json
// @Param       startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       endDate   query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success     200 {object} response.Envelope{data=[]models.CategoryBreakdown} "Breakdown"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/category-breakdown [get]
func (h *DashboardHandler) GetCategoryBreakdown(c *gin.Context) {
	window, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.dashboardService.GetCategoryBreakdown(window)
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.OK(c, breakdown)
}

// GetMonthlyTrend handles spending per calendar month
// @Summary     Monthly trend
// @Description Spending per YYYY-MM over the trailing months, oldest first. Months without expenses are omitted.
// @Tags        dashboard
// @Produce     json
// @Param       months query int false "Trailing window in months (default 6)"
// @Success     200 {object} response.Envelope{data=[]models.MonthlyTrend} "Trend"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/monthly-trend [get]
func (h *DashboardHandler) GetMonthlyTrend(c *gin.Context) {
	trend, err := h.dashboardService.GetMonthlyTrend(parseMonths(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.OK(c, trend)
}

// GetCategoryComparison handles per-month, per-category spending
// @Summary     Category comparison
// @Description Spending per month and category over the trailing months
// @Tags        dashboard
// @Produce     json
// @Param       months query int false "Trailing window in months (default 6)"
// @Success     200 {object} response.Envelope{data=[]models.CategoryComparison} "Comparison"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/category-comparison [get]
func (h *DashboardHandler) GetCategoryComparison(c *gin.Context) {
	comparison, err := h.dashboardService.GetCategoryComparison(parseMonths(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.OK(c, comparison)
}

// GetCategoryGrowth handles month-over-month growth
// @Summary     Category growth
// @Description Each active category's spending in the trailing month against the month before
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} response.Envelope{data=[]models.CategoryGrowth} "Growth"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/category-growth [get]
func (h *DashboardHandler) GetCategoryGrowth(c *gin.Context) {
	growth, err := h.dashboardService.GetCategoryGrowth()
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.OK(c, growth)
}
