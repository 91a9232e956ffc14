package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensetracker/internal/logger"
	"expensetracker/internal/query"
	"expensetracker/internal/repository"
	"expensetracker/internal/testutil"
)

func init() {
	logger.Init("test")
}

func TestRun(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	categories := repository.NewCategoryRepository(db)
	expenses, err := repository.NewExpenseRepository(db)
	require.NoError(t, err)

	t.Run("categories only", func(t *testing.T) {
		res, err := Run(categories, expenses, false)
		require.NoError(t, err)
		assert.Equal(t, Result{Categories: len(DefaultCategories)}, res)

		list, err := categories.List()
		require.NoError(t, err)
		assert.Len(t, list, len(DefaultCategories))
	})

	t.Run("existing names are skipped", func(t *testing.T) {
		res, err := Run(categories, expenses, false)
		require.NoError(t, err)
		assert.Zero(t, res.Categories)
	})

	t.Run("samples attach to seeded categories", func(t *testing.T) {
		res, err := Run(categories, expenses, true)
		require.NoError(t, err)
		assert.Equal(t, len(SampleExpenses), res.Expenses)

		rows, err := expenses.List(query.ExpenseFilter{}, query.Sort{})
		require.NoError(t, err)
		require.Len(t, rows, len(SampleExpenses))

		byDesc := map[string]string{}
		for _, r := range rows {
			byDesc[r.Description] = r.CategoryName
		}
		assert.Equal(t, "Food & Dining", byDesc["Lunch at restaurant"])
		assert.Equal(t, "Education", byDesc["Online course"])
	})
}
