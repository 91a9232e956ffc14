package services

import (
	"errors"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/query"
	"expensetracker/internal/repository"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	expenses   repository.ExpenseRepository
	categories repository.CategoryRepository
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(expenses repository.ExpenseRepository, categories repository.CategoryRepository) ExpenseServicer {
	return &expenseService{expenses: expenses, categories: categories}
}

// ListExpenses returns the filtered, sorted expenses with their category fields.
func (s *expenseService) ListExpenses(filter query.ExpenseFilter, sort query.Sort) ([]models.ExpenseDetail, error) {
	expenses, err := s.expenses.List(filter, sort)
	if err != nil {
		return nil, apperrors.Store("Error fetching expenses", err)
	}
	return expenses, nil
}

// GetExpense retrieves an expense by ID.
func (s *expenseService) GetExpense(id uint) (*models.ExpenseDetail, error) {
	expense, err := s.expenses.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Store("Error fetching expense", err)
	}
	return expense, nil
}

// CreateExpense records a new expense and returns it joined with its category.
func (s *expenseService) CreateExpense(input ExpenseInput) (*models.ExpenseDetail, error) {
	if err := s.validate(input, "Error creating expense"); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Amount:       *input.Amount,
		CategoryID:   *input.CategoryID,
		Description:  input.Description,
		ExpenseDate:  *input.ExpenseDate,
		ReceiptImage: input.ReceiptImage,
	}
	if err := s.expenses.Create(expense); err != nil {
		return nil, s.writeError(err, "Error creating expense")
	}

	logger.Get().Infow("expense created",
		"expense_id", expense.ID,
		"category_id", expense.CategoryID,
		"amount", expense.Amount.StringFixed(models.MoneyPlaces),
	)
	return s.reload(expense.ID, "Error creating expense")
}

// UpdateExpense replaces every mutable field of an existing expense.
func (s *expenseService) UpdateExpense(id uint, input ExpenseInput) (*models.ExpenseDetail, error) {
	if !input.complete() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount, category, and date are required")
	}

	current, err := s.expenses.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Store("Error updating expense", err)
	}

	if err := s.validate(input, "Error updating expense"); err != nil {
		return nil, err
	}

	expense := current.Expense
	expense.Amount = *input.Amount
	expense.CategoryID = *input.CategoryID
	expense.Description = input.Description
	expense.ExpenseDate = *input.ExpenseDate
	expense.ReceiptImage = input.ReceiptImage

	if err := s.expenses.Update(&expense); err != nil {
		return nil, s.writeError(err, "Error updating expense")
	}
	return s.reload(id, "Error updating expense")
}

// DeleteExpense deletes an expense. Categories are unaffected.
func (s *expenseService) DeleteExpense(id uint) error {
	if err := s.expenses.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrExpenseNotFound
		}
		return apperrors.Store("Error deleting expense", err)
	}
	logger.Get().Infow("expense deleted", "expense_id", id)
	return nil
}

func (in ExpenseInput) complete() bool {
	return in.Amount != nil && in.CategoryID != nil && in.ExpenseDate != nil && !in.ExpenseDate.IsZero()
}

// validate checks the input shape, then that the category exists, so a
// dangling reference is reported before any write is attempted.
func (s *expenseService) validate(input ExpenseInput, failure string) error {
	if !input.complete() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount, category, and date are required")
	}
	if !input.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}
	if !models.IsMoney(*input.Amount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must have at most two decimal places")
	}
	if input.Amount.GreaterThanOrEqual(models.MaxAmount) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount is too large")
	}

	if _, err := s.categories.FindByID(*input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Store(failure, err)
	}
	return nil
}

func (s *expenseService) writeError(err error, failure string) error {
	switch {
	case errors.Is(err, repository.ErrDangling):
		return apperrors.Wrap(apperrors.ErrCategoryNotFound, err)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrExpenseNotFound
	default:
		return apperrors.Store(failure, err)
	}
}

func (s *expenseService) reload(id uint, failure string) (*models.ExpenseDetail, error) {
	expense, err := s.expenses.FindByID(id)
	if err != nil {
		return nil, s.writeError(err, failure)
	}
	return expense, nil
}
