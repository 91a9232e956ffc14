// Package repository holds the store-facing record access for categories and
// expenses. Each entity is reached through a small interface with a GORM
// implementation, so services can run against an in-memory fake in tests.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"expensetracker/internal/models"
	"expensetracker/internal/query"
)

// Store-level outcomes that services translate into application errors.
var (
	ErrNotFound   = errors.New("record not found")
	ErrReferenced = errors.New("record is referenced by other rows")
	ErrDuplicate  = errors.New("duplicate key")
	ErrDangling   = errors.New("reference to a missing row")
)

// CategoryRepository is record access for categories.
type CategoryRepository interface {
	List() ([]models.Category, error)
	FindByID(id uint) (*models.Category, error)
	FindByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
}

// ExpenseRepository is record access and aggregation for expenses.
type ExpenseRepository interface {
	List(filter query.ExpenseFilter, sort query.Sort) ([]models.ExpenseDetail, error)
	FindByID(id uint) (*models.ExpenseDetail, error)
	Create(expense *models.Expense) error
	Update(expense *models.Expense) error
	Delete(id uint) error

	Summary(window query.DateRange) (*models.Summary, error)
	CategoryTotals(window query.DateRange) ([]models.CategoryBreakdown, error)
	MonthlyTrend(since models.Date) ([]models.MonthlyTrend, error)
	CategoryComparison(since models.Date) ([]models.CategoryComparison, error)
	CategoryWindows(currentFrom, previousFrom models.Date) ([]models.CategoryGrowth, error)
}

// translate maps GORM's translated driver errors onto repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(ErrDuplicate, err)
	default:
		return err
	}
}
