package services

import (
	"errors"
	"strings"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
	"expensetracker/internal/models"
	"expensetracker/internal/repository"
)

// categoryService handles category-related business logic.
type categoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(categories repository.CategoryRepository) CategoryServicer {
	return &categoryService{categories: categories}
}

// ListCategories returns every category ordered by name.
func (s *categoryService) ListCategories() ([]models.Category, error) {
	categories, err := s.categories.List()
	if err != nil {
		return nil, apperrors.Store("Error fetching categories", err)
	}
	return categories, nil
}

// GetCategory retrieves a category by ID.
func (s *categoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Store("Error fetching category", err)
	}
	return category, nil
}

// CreateCategory creates a new category, applying the default color and
// icon when they are omitted or blank.
func (s *categoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category name is required")
	}

	if err := s.ensureUniqueName(name, 0, "Error creating category"); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:  name,
		Color: valueOr(input.Color, models.DefaultCategoryColor),
		Icon:  valueOr(input.Icon, models.DefaultCategoryIcon),
	}
	if err := s.categories.Create(category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, apperrors.Store("Error creating category", err)
	}

	logger.Get().Infow("category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// UpdateCategory replaces the category's name. Color and icon are only
// replaced when supplied.
func (s *categoryService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category name is required")
	}

	category, err := s.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Store("Error updating category", err)
	}

	if err := s.ensureUniqueName(name, id, "Error updating category"); err != nil {
		return nil, err
	}

	category.Name = name
	category.Color = valueOr(input.Color, category.Color)
	category.Icon = valueOr(input.Icon, category.Icon)

	if err := s.categories.Update(category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, apperrors.Store("Error updating category", err)
	}
	return category, nil
}

// DeleteCategory deletes a category. The store refuses while expenses
// still reference it.
func (s *categoryService) DeleteCategory(id uint) error {
	err := s.categories.Delete(id)
	switch {
	case err == nil:
		logger.Get().Infow("category deleted", "category_id", id)
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrCategoryNotFound
	case errors.Is(err, repository.ErrReferenced):
		return apperrors.Wrap(apperrors.ErrCategoryInUse, err)
	default:
		return apperrors.Store("Error deleting category", err)
	}
}

// ensureUniqueName fails when another category (not exceptID) already uses name.
func (s *categoryService) ensureUniqueName(name string, exceptID uint, failure string) error {
	existing, err := s.categories.FindByName(name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperrors.Store(failure, err)
	}
	if existing.ID != exceptID {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}

func valueOr(v *string, fallback string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return fallback
	}
	return strings.TrimSpace(*v)
}
