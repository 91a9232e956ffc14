// Package query builds the filtering and sorting parts of expense queries
// from typed values. User input only ever reaches SQL as bound parameters;
// the only structural choices (sort column, month bucketing) come from
// fixed allow-lists in this package.
package query

import (
	"strings"

	"gorm.io/gorm"

	"expensetracker/internal/models"
)

// Column is a qualified column reference known to the query builder.
// Callers cannot construct columns from request input.
type Column string

// Columns of the expense listing/aggregation queries. Expenses are aliased
// "e" and categories "c" throughout.
const (
	ColExpenseID   Column = "e.id"
	ColExpenseDate Column = "e.expense_date"
	ColAmount      Column = "e.amount"
	ColCategoryID  Column = "e.category_id"
	ColCategoryNm  Column = "c.name"
)

// Predicate is a single filter lowered to a parameterized SQL fragment.
type Predicate interface {
	SQL() (string, []interface{})
}

// OnOrAfter matches rows whose column is >= Value (inclusive lower bound).
type OnOrAfter struct {
	Column Column
	Value  interface{}
}

// SQL implements Predicate.
func (p OnOrAfter) SQL() (string, []interface{}) {
	return string(p.Column) + " >= ?", []interface{}{p.Value}
}

// OnOrBefore matches rows whose column is <= Value (inclusive upper bound).
type OnOrBefore struct {
	Column Column
	Value  interface{}
}

// SQL implements Predicate.
func (p OnOrBefore) SQL() (string, []interface{}) {
	return string(p.Column) + " <= ?", []interface{}{p.Value}
}

// Before matches rows whose column is < Value (exclusive upper bound).
type Before struct {
	Column Column
	Value  interface{}
}

// SQL implements Predicate.
func (p Before) SQL() (string, []interface{}) {
	return string(p.Column) + " < ?", []interface{}{p.Value}
}

// Equals matches rows whose column equals Value.
type Equals struct {
	Column Column
	Value  interface{}
}

// SQL implements Predicate.
func (p Equals) SQL() (string, []interface{}) {
	return string(p.Column) + " = ?", []interface{}{p.Value}
}

// And lowers predicates into one AND-combined fragment. No predicates yields "".
func And(preds ...Predicate) (string, []interface{}) {
	parts := make([]string, 0, len(preds))
	var args []interface{}
	for _, p := range preds {
		sql, pArgs := p.SQL()
		parts = append(parts, sql)
		args = append(args, pArgs...)
	}
	return strings.Join(parts, " AND "), args
}

// Where returns a GORM scope applying every predicate as a WHERE condition.
func Where(preds ...Predicate) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range preds {
			sql, args := p.SQL()
			db = db.Where(sql, args...)
		}
		return db
	}
}

// JoinOn appends predicates to a join condition, so that a LEFT JOIN keeps
// every row of the left table while only counting matching right rows.
func JoinOn(join string, preds ...Predicate) (string, []interface{}) {
	extra, args := And(preds...)
	if extra == "" {
		return join, nil
	}
	return join + " AND " + extra, args
}

// DateRange is an optional inclusive window over expense_date.
type DateRange struct {
	Start *models.Date
	End   *models.Date
}

// Predicates lowers the window to its bound predicates; absent bounds impose no constraint.
func (r DateRange) Predicates() []Predicate {
	var preds []Predicate
	if r.Start != nil {
		preds = append(preds, OnOrAfter{Column: ColExpenseDate, Value: *r.Start})
	}
	if r.End != nil {
		preds = append(preds, OnOrBefore{Column: ColExpenseDate, Value: *r.End})
	}
	return preds
}

// ExpenseFilter holds the optional filters of the expense listing.
type ExpenseFilter struct {
	DateRange
	CategoryID *uint
}

// Predicates lowers the filter to AND-combined predicates.
func (f ExpenseFilter) Predicates() []Predicate {
	preds := f.DateRange.Predicates()
	if f.CategoryID != nil {
		preds = append(preds, Equals{Column: ColCategoryID, Value: *f.CategoryID})
	}
	return preds
}
