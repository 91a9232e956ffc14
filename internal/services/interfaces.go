package services

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/query"
)

// CategoryInput carries the writable fields of a category. A nil Color or
// Icon means the field was omitted.
type CategoryInput struct {
	Name  string
	Color *string
	Icon  *string
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories() ([]models.Category, error)
	GetCategory(id uint) (*models.Category, error)
	CreateCategory(input CategoryInput) (*models.Category, error)
	UpdateCategory(id uint, input CategoryInput) (*models.Category, error)
	DeleteCategory(id uint) error
}

// ExpenseInput carries the writable fields of an expense. Required fields
// are pointers so a missing value can be told apart from a zero one.
type ExpenseInput struct {
	Amount       *decimal.Decimal
	CategoryID   *uint
	Description  string
	ExpenseDate  *models.Date
	ReceiptImage *string
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	ListExpenses(filter query.ExpenseFilter, sort query.Sort) ([]models.ExpenseDetail, error)
	GetExpense(id uint) (*models.ExpenseDetail, error)
	CreateExpense(input ExpenseInput) (*models.ExpenseDetail, error)
	UpdateExpense(id uint, input ExpenseInput) (*models.ExpenseDetail, error)
	DeleteExpense(id uint) error
}

// DashboardServicer defines the contract for the spending aggregations.
type DashboardServicer interface {
	GetSummary(window query.DateRange) (*models.Summary, error)
	GetCategoryBreakdown(window query.DateRange) ([]models.CategoryBreakdown, error)
	GetMonthlyTrend(months int) ([]models.MonthlyTrend, error)
	GetCategoryComparison(months int) ([]models.CategoryComparison, error)
	GetCategoryGrowth() ([]models.CategoryGrowth, error)
}

// ReceiptFile is an opened receipt ready to be streamed.
type ReceiptFile struct {
	Name        string
	ContentType string
	ModTime     time.Time
	Content     io.ReadSeekCloser
}

// ReceiptServicer defines the contract for receipt image storage.
type ReceiptServicer interface {
	UploadReceipt(content io.Reader) (*models.Receipt, error)
	OpenReceipt(filename string) (*ReceiptFile, error)
	DeleteReceipt(filename string) error
}
