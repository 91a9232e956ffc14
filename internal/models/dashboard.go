package models

import "github.com/shopspring/decimal"

// Summary aggregates every expense in a date window.
type Summary struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	AverageAmount     decimal.Decimal `json:"average_amount"`
	HighestExpense    decimal.Decimal `json:"highest_expense"`
}

// CategoryBreakdown is one category's share of spending in a date window.
type CategoryBreakdown struct {
	CategoryID       uint            `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	CategoryColor    string          `json:"category_color"`
	CategoryIcon     string          `json:"category_icon"`
	TransactionCount int64           `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Percentage       decimal.Decimal `json:"percentage" gorm:"-"`
}

// MonthlyTrend is the spending of a single YYYY-MM bucket.
type MonthlyTrend struct {
	Month            string          `json:"month"`
	TransactionCount int64           `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// CategoryComparison is one (month, category) cell of the comparison grid.
type CategoryComparison struct {
	Month            string          `json:"month"`
	CategoryID       uint            `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	CategoryColor    string          `json:"category_color"`
	CategoryIcon     string          `json:"category_icon"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int64           `json:"transaction_count"`
}

// CategoryGrowth compares a category's spending in the current and previous
// one-month windows.
type CategoryGrowth struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Color            string          `json:"color"`
	Icon             string          `json:"icon"`
	CurrentMonth     decimal.Decimal `json:"current_month"`
	PreviousMonth    decimal.Decimal `json:"previous_month"`
	GrowthAmount     decimal.Decimal `json:"growth_amount" gorm:"-"`
	GrowthPercentage decimal.Decimal `json:"growth_percentage" gorm:"-"`
}

// Receipt describes an uploaded receipt image.
type Receipt struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimetype"`
}
