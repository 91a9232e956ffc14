package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/query"
	"expensetracker/internal/services"
	"expensetracker/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["success"] != false {
		t.Fatalf("expected failure envelope, got: %v", result)
	}
	if result["code"] != code {
		t.Errorf("expected error code %q, got %q", code, result["code"])
	}
}

func dataObject(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got: %v", result)
	}
	return data
}

func dataList(t *testing.T, result map[string]interface{}) []interface{} {
	t.Helper()
	data, ok := result["data"].([]interface{})
	if !ok {
		t.Fatalf("expected data array, got: %v", result)
	}
	return data
}

// --- mock category service ---

type mockCategoryService struct {
	listCategoriesFn func() ([]models.Category, error)
	getCategoryFn    func(id uint) (*models.Category, error)
	createCategoryFn func(input services.CategoryInput) (*models.Category, error)
	updateCategoryFn func(id uint, input services.CategoryInput) (*models.Category, error)
	deleteCategoryFn func(id uint) error
}

func (m *mockCategoryService) ListCategories() ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn()
	}
	return nil, nil
}

func (m *mockCategoryService) GetCategory(id uint) (*models.Category, error) {
	if m.getCategoryFn != nil {
		return m.getCategoryFn(id)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) CreateCategory(input services.CategoryInput) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(input)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(id uint, input services.CategoryInput) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(id, input)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(id uint) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(id)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

// --- mock expense service ---

type mockExpenseService struct {
	listExpensesFn  func(filter query.ExpenseFilter, sort query.Sort) ([]models.ExpenseDetail, error)
	getExpenseFn    func(id uint) (*models.ExpenseDetail, error)
	createExpenseFn func(input services.ExpenseInput) (*models.ExpenseDetail, error)
	updateExpenseFn func(id uint, input services.ExpenseInput) (*models.ExpenseDetail, error)
	deleteExpenseFn func(id uint) error
}

func (m *mockExpenseService) ListExpenses(filter query.ExpenseFilter, sort query.Sort) ([]models.ExpenseDetail, error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(filter, sort)
	}
	return nil, nil
}

func (m *mockExpenseService) GetExpense(id uint) (*models.ExpenseDetail, error) {
	if m.getExpenseFn != nil {
		return m.getExpenseFn(id)
	}
	return &models.ExpenseDetail{}, nil
}

func (m *mockExpenseService) CreateExpense(input services.ExpenseInput) (*models.ExpenseDetail, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(input)
	}
	return &models.ExpenseDetail{}, nil
}

func (m *mockExpenseService) UpdateExpense(id uint, input services.ExpenseInput) (*models.ExpenseDetail, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(id, input)
	}
	return &models.ExpenseDetail{}, nil
}

func (m *mockExpenseService) DeleteExpense(id uint) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(id)
	}
	return nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

// --- mock dashboard service ---

type mockDashboardService struct {
	getSummaryFn            func(window query.DateRange) (*models.Summary, error)
	getCategoryBreakdownFn  func(window query.DateRange) ([]models.CategoryBreakdown, error)
	getMonthlyTrendFn       func(months int) ([]models.MonthlyTrend, error)
	getCategoryComparisonFn func(months int) ([]models.CategoryComparison, error)
	getCategoryGrowthFn     func() ([]models.CategoryGrowth, error)
}

func (m *mockDashboardService) GetSummary(window query.DateRange) (*models.Summary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(window)
	}
	return &models.Summary{}, nil
}

func (m *mockDashboardService) GetCategoryBreakdown(window query.DateRange) ([]models.CategoryBreakdown, error) {
	if m.getCategoryBreakdownFn != nil {
		return m.getCategoryBreakdownFn(window)
	}
	return nil, nil
}

func (m *mockDashboardService) GetMonthlyTrend(months int) ([]models.MonthlyTrend, error) {
	if m.getMonthlyTrendFn != nil {
		return m.getMonthlyTrendFn(months)
	}
	return nil, nil
}

func (m *mockDashboardService) GetCategoryComparison(months int) ([]models.CategoryComparison, error) {
	if m.getCategoryComparisonFn != nil {
		return m.getCategoryComparisonFn(months)
	}
	return nil, nil
}

func (m *mockDashboardService) GetCategoryGrowth() ([]models.CategoryGrowth, error) {
	if m.getCategoryGrowthFn != nil {
		return m.getCategoryGrowthFn()
	}
	return nil, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

// --- mock receipt service ---

type mockReceiptService struct {
	uploadReceiptFn func(content io.Reader) (*models.Receipt, error)
	openReceiptFn   func(filename string) (*services.ReceiptFile, error)
	deleteReceiptFn func(filename string) error
}

func (m *mockReceiptService) UploadReceipt(content io.Reader) (*models.Receipt, error) {
	if m.uploadReceiptFn != nil {
		return m.uploadReceiptFn(content)
	}
	return &models.Receipt{}, nil
}

func (m *mockReceiptService) OpenReceipt(filename string) (*services.ReceiptFile, error) {
	if m.openReceiptFn != nil {
		return m.openReceiptFn(filename)
	}
	return nil, nil
}

func (m *mockReceiptService) DeleteReceipt(filename string) error {
	if m.deleteReceiptFn != nil {
		return m.deleteReceiptFn(filename)
	}
	return nil
}

var _ services.ReceiptServicer = (*mockReceiptService)(nil)
