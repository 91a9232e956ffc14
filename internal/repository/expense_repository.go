package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"expensetracker/internal/models"
	"expensetracker/internal/query"
)

// detailColumns projects an expense with its category's display fields.
const detailColumns = "e.id, e.amount, e.category_id, e.description, e.expense_date, e.receipt_image, " +
	"e.created_at, e.updated_at, c.name AS category_name, c.color AS category_color, c.icon AS category_icon"

const categoryGroup = "c.id, c.name, c.color, c.icon"

type expenseRepository struct {
	db          *gorm.DB
	monthBucket string
}

// NewExpenseRepository creates a GORM-backed ExpenseRepository. The month
// bucketing expression is picked from the connection's dialect.
func NewExpenseRepository(db *gorm.DB) (ExpenseRepository, error) {
	bucket, err := query.MonthBucket(db.Dialector.Name())
	if err != nil {
		return nil, err
	}
	return &expenseRepository{db: db, monthBucket: bucket}, nil
}

func (r *expenseRepository) details() *gorm.DB {
	return r.db.Table("expenses e").
		Select(detailColumns).
		Joins("JOIN categories c ON e.category_id = c.id")
}

// List returns the filtered expenses joined with their categories, always ordered.
func (r *expenseRepository) List(filter query.ExpenseFilter, sort query.Sort) ([]models.ExpenseDetail, error) {
	expenses := []models.ExpenseDetail{}
	err := r.details().
		Scopes(query.Where(filter.Predicates()...), sort.Scope()).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) FindByID(id uint) (*models.ExpenseDetail, error) {
	var expense models.ExpenseDetail
	if err := r.details().Where("e.id = ?", id).Take(&expense).Error; err != nil {
		return nil, translate(err)
	}
	return &expense, nil
}

func (r *expenseRepository) Create(expense *models.Expense) error {
	return translateWrite(r.db.Omit("Category").Create(expense).Error)
}

// Update replaces every mutable field and refreshes updated_at.
func (r *expenseRepository) Update(expense *models.Expense) error {
	expense.UpdatedAt = time.Now()
	result := r.db.Model(&models.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]interface{}{
			"amount":        expense.Amount,
			"category_id":   expense.CategoryID,
			"description":   expense.Description,
			"expense_date":  expense.ExpenseDate,
			"receipt_image": expense.ReceiptImage,
			"updated_at":    expense.UpdatedAt,
		})
	return translateWrite(result.Error)
}

func (r *expenseRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Expense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary aggregates the window. Every aggregate is coalesced so an empty
// window yields zeros rather than NULLs.
func (r *expenseRepository) Summary(window query.DateRange) (*models.Summary, error) {
	var summary models.Summary
	err := r.db.Table("expenses e").
		Select("COUNT(e.id) AS total_transactions, " +
			"COALESCE(SUM(e.amount), 0) AS total_amount, " +
			"COALESCE(AVG(e.amount), 0) AS average_amount, " +
			"COALESCE(MAX(e.amount), 0) AS highest_expense").
		Scopes(query.Where(window.Predicates()...)).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// CategoryTotals computes per-category counts and totals over the window.
// Categories are left-joined so every category takes part in the grouping;
// those without spending in the window are dropped by the HAVING clause.
// Percentages are left to the caller.
func (r *expenseRepository) CategoryTotals(window query.DateRange) ([]models.CategoryBreakdown, error) {
	join, args := query.JoinOn("LEFT JOIN expenses e ON e.category_id = c.id", window.Predicates()...)

	rows := []models.CategoryBreakdown{}
	err := r.db.Table("categories c").
		Select("c.id AS category_id, c.name AS category_name, c.color AS category_color, c.icon AS category_icon, " +
			"COUNT(e.id) AS transaction_count, COALESCE(SUM(e.amount), 0) AS total_amount").
		Joins(join, args...).
		Group(categoryGroup).
		Having("COALESCE(SUM(e.amount), 0) > 0").
		Order("total_amount DESC").
		Order("c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlyTrend buckets expenses dated on or after since by calendar month.
// Months without expenses do not appear.
func (r *expenseRepository) MonthlyTrend(since models.Date) ([]models.MonthlyTrend, error) {
	rows := []models.MonthlyTrend{}
	err := r.db.Table("expenses e").
		Select(r.monthBucket + " AS month, COUNT(e.id) AS transaction_count, SUM(e.amount) AS total_amount").
		Scopes(query.Where(query.OnOrAfter{Column: query.ColExpenseDate, Value: since})).
		Group(r.monthBucket).
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CategoryComparison returns (month, category) totals for categories with at
// least one expense in that month, by month then total descending.
func (r *expenseRepository) CategoryComparison(since models.Date) ([]models.CategoryComparison, error) {
	rows := []models.CategoryComparison{}
	err := r.db.Table("expenses e").
		Select(r.monthBucket + " AS month, c.id AS category_id, c.name AS category_name, " +
			"c.color AS category_color, c.icon AS category_icon, " +
			"SUM(e.amount) AS total_amount, COUNT(e.id) AS transaction_count").
		Joins("JOIN categories c ON e.category_id = c.id").
		Scopes(query.Where(query.OnOrAfter{Column: query.ColExpenseDate, Value: since})).
		Group(r.monthBucket + ", " + categoryGroup).
		Order("month ASC").
		Order("total_amount DESC").
		Order("c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CategoryWindows sums every category's spending in the current window
// [currentFrom, ∞) and the previous window [previousFrom, currentFrom).
// All categories are returned, ordered by current total descending.
func (r *expenseRepository) CategoryWindows(currentFrom, previousFrom models.Date) ([]models.CategoryGrowth, error) {
	current, currentArgs := query.And(
		query.OnOrAfter{Column: query.ColExpenseDate, Value: currentFrom},
	)
	previous, previousArgs := query.And(
		query.OnOrAfter{Column: query.ColExpenseDate, Value: previousFrom},
		query.Before{Column: query.ColExpenseDate, Value: currentFrom},
	)

	selectSQL := fmt.Sprintf("c.id AS id, c.name AS name, c.color AS color, c.icon AS icon, "+
		"COALESCE(SUM(CASE WHEN %s THEN e.amount ELSE 0 END), 0) AS current_month, "+
		"COALESCE(SUM(CASE WHEN %s THEN e.amount ELSE 0 END), 0) AS previous_month", current, previous)

	rows := []models.CategoryGrowth{}
	err := r.db.Table("categories c").
		Select(selectSQL, append(currentArgs, previousArgs...)...).
		Joins("LEFT JOIN expenses e ON e.category_id = c.id").
		Group(categoryGroup).
		Order("current_month DESC").
		Order("c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// translateWrite maps a failed insert/update; a foreign key failure there
// means the expense points at a category that does not exist.
func translateWrite(err error) error {
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		return errors.Join(ErrDangling, err)
	}
	return translate(err)
}
