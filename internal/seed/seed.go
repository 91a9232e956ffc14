// Package seed loads the default categories and optional sample expenses.
package seed

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/repository"
)

// DefaultCategories are created by Run when missing.
var DefaultCategories = []models.Category{
	{Name: "Food & Dining", Color: "#EF4444", Icon: "🍔"},
	{Name: "Transportation", Color: "#3B82F6", Icon: "🚗"},
	{Name: "Shopping", Color: "#8B5CF6", Icon: "🛍️"},
	{Name: "Entertainment", Color: "#EC4899", Icon: "🎬"},
	{Name: "Bills & Utilities", Color: "#F59E0B", Icon: "💡"},
	{Name: "Healthcare", Color: "#10B981", Icon: "⚕️"},
	{Name: "Education", Color: "#06B6D4", Icon: "📚"},
	{Name: "Other", Color: "#6B7280", Icon: "📌"},
}

// SampleExpense is a demo expense keyed by category name.
type SampleExpense struct {
	Amount      string
	Category    string
	Description string
	Date        models.Date
}

// SampleExpenses are inserted by Run when sample data is requested.
var SampleExpenses = []SampleExpense{
	{"45.50", "Food & Dining", "Lunch at restaurant", models.NewDate(2024, time.December, 20)},
	{"80.00", "Transportation", "Uber rides", models.NewDate(2024, time.December, 21)},
	{"120.00", "Shopping", "New shoes", models.NewDate(2024, time.December, 22)},
	{"25.00", "Entertainment", "Movie tickets", models.NewDate(2024, time.December, 23)},
	{"150.00", "Bills & Utilities", "Electricity bill", models.NewDate(2024, time.December, 24)},
	{"60.00", "Food & Dining", "Grocery shopping", models.NewDate(2024, time.December, 25)},
	{"30.00", "Healthcare", "Medicine", models.NewDate(2024, time.December, 19)},
	{"200.00", "Education", "Online course", models.NewDate(2024, time.December, 18)},
}

// Result counts the rows Run inserted.
type Result struct {
	Categories int
	Expenses   int
}

// Run creates every default category whose name is not taken and, when
// samples is set, the sample expenses. Sample expenses are not deduplicated.
func Run(categories repository.CategoryRepository, expenses repository.ExpenseRepository, samples bool) (Result, error) {
	var res Result
	ids := make(map[string]uint, len(DefaultCategories))

	for _, def := range DefaultCategories {
		existing, err := categories.FindByName(def.Name)
		switch {
		case err == nil:
			ids[def.Name] = existing.ID
			continue
		case !errors.Is(err, repository.ErrNotFound):
			return res, fmt.Errorf("looking up category %q: %w", def.Name, err)
		}

		category := def
		if err := categories.Create(&category); err != nil {
			return res, fmt.Errorf("creating category %q: %w", def.Name, err)
		}
		ids[def.Name] = category.ID
		res.Categories++
	}
	logger.Get().Infow("default categories seeded", "created", res.Categories)

	if !samples {
		return res, nil
	}

	for _, sample := range SampleExpenses {
		amount, err := decimal.NewFromString(sample.Amount)
		if err != nil {
			return res, fmt.Errorf("sample amount %q: %w", sample.Amount, err)
		}
		expense := models.Expense{
			Amount:      amount,
			CategoryID:  ids[sample.Category],
			Description: sample.Description,
			ExpenseDate: sample.Date,
		}
		if err := expenses.Create(&expense); err != nil {
			return res, fmt.Errorf("creating sample expense %q: %w", sample.Description, err)
		}
		res.Expenses++
	}
	logger.Get().Infow("sample expenses seeded", "created", res.Expenses)
	return res, nil
}
