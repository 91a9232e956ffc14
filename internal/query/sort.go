package query

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort keys accepted by the expense listing.
const (
	SortByExpenseDate  = "expense_date"
	SortByAmount       = "amount"
	SortByCategoryName = "category_name"
)

// sortColumns is the allow-list of sort keys. It is the only place request
// input selects SQL structure rather than a parameter value.
var sortColumns = map[string]Column{
	SortByExpenseDate:  ColExpenseDate,
	SortByAmount:       ColAmount,
	SortByCategoryName: ColCategoryNm,
}

// Sort is a resolved, always-valid ordering.
type Sort struct {
	Key  string
	Desc bool
}

// DefaultSort orders by expense date, newest first.
var DefaultSort = Sort{Key: SortByExpenseDate, Desc: true}

// ParseSort resolves raw sortBy/sortOrder values. Unknown keys fall back to
// expense_date; any order other than "asc" means descending. It never fails.
func ParseSort(sortBy, sortOrder string) Sort {
	key := strings.ToLower(strings.TrimSpace(sortBy))
	if _, ok := sortColumns[key]; !ok {
		key = SortByExpenseDate
	}
	return Sort{
		Key:  key,
		Desc: !strings.EqualFold(strings.TrimSpace(sortOrder), "asc"),
	}
}

// Column returns the allow-listed column for the sort key.
func (s Sort) Column() Column {
	if col, ok := sortColumns[s.Key]; ok {
		return col
	}
	return ColExpenseDate
}

// Scope returns a GORM scope applying the ordering, with the expense id in
// the same direction as a tie-breaker so results are fully ordered.
func (s Sort) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Name: string(s.Column()), Raw: true}, Desc: s.Desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: string(ColExpenseID), Raw: true}, Desc: s.Desc})
	}
}
