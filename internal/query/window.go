package query

import (
	"fmt"
	"time"

	"expensetracker/internal/models"
)

// Trailing window sizes, in calendar months.
const (
	DefaultMonths = 6
	MaxMonths     = 120
)

// NormalizeMonths applies the default for missing or non-positive values and caps the window.
func NormalizeMonths(months int) int {
	if months <= 0 {
		return DefaultMonths
	}
	if months > MaxMonths {
		return MaxMonths
	}
	return months
}

// TrailingStart returns the first date of the trailing window of the given
// number of months ending today, i.e. today minus months calendar months.
func TrailingStart(now time.Time, months int) models.Date {
	return models.DateOf(now).AddMonths(-months)
}

// monthBuckets maps a GORM dialector name to its YYYY-MM expression over expense_date.
var monthBuckets = map[string]string{
	"postgres": "to_char(e.expense_date, 'YYYY-MM')",
	"mysql":    "DATE_FORMAT(e.expense_date, '%Y-%m')",
	"sqlite":   "strftime('%Y-%m', e.expense_date)",
}

// MonthBucket returns the dialect's expression grouping expense_date by calendar month.
func MonthBucket(dialect string) (string, error) {
	expr, ok := monthBuckets[dialect]
	if !ok {
		return "", fmt.Errorf("no month bucket expression for dialect %q", dialect)
	}
	return expr, nil
}
