package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single recorded spend against a category.
type Expense struct {
	Base
	Amount       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	CategoryID   uint            `gorm:"not null;index" json:"category_id"`
	Description  string          `json:"description"`
	ExpenseDate  Date            `gorm:"not null;index" json:"expense_date"`
	ReceiptImage *string         `gorm:"size:255" json:"receipt_image"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// ExpenseDetail is an expense row joined with its category's display fields.
type ExpenseDetail struct {
	Expense
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color"`
	CategoryIcon  string `json:"category_icon"`
}
