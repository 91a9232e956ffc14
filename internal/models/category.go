package models

// Defaults applied when a category is created without a color or icon.
const (
	DefaultCategoryColor = "#3B82F6"
	DefaultCategoryIcon  = "💰"
)

// Category groups expenses for display and aggregation.
type Category struct {
	Base
	Name  string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Color string `gorm:"size:7;not null" json:"color"`
	Icon  string `gorm:"size:50;not null" json:"icon"`
}
