package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"expensetracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category with a unique name and default styling.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  name,
		Color: models.DefaultCategoryColor,
		Icon:  models.DefaultCategoryIcon,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense; amount is given as a decimal string
// ("45.50") and date as YYYY-MM-DD.
func CreateTestExpense(t *testing.T, db *gorm.DB, categoryID uint, amount, date string) *models.Expense {
	t.Helper()

	expenseDate, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("invalid fixture date: %v", err)
	}
	expense := &models.Expense{
		Amount:      decimal.RequireFromString(amount),
		CategoryID:  categoryID,
		Description: fmt.Sprintf("Test expense %d", nextID()),
		ExpenseDate: expenseDate,
	}
	if err := db.Omit("Category").Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
