package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"expensetracker/internal/models"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a GORM-backed CategoryRepository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List() ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("name = ?", name).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *categoryRepository) Create(category *models.Category) error {
	return translate(r.db.Create(category).Error)
}

// Update writes name/color/icon only; created_at is immutable.
func (r *categoryRepository) Update(category *models.Category) error {
	result := r.db.Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":  category.Name,
			"color": category.Color,
			"icon":  category.Icon,
		})
	return translate(result.Error)
}

// Delete removes the category. The store's restrict-on-delete foreign key
// rejects the delete while expenses still reference it.
func (r *categoryRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return errors.Join(ErrReferenced, result.Error)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// isForeignKeyViolation reports a restrict-on-delete rejection. Drivers that
// predate GORM error translation are matched on their message, which names
// the foreign key in postgres, mysql and sqlite alike.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}
