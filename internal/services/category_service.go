// internal/services/category_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) CreateCategory(req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	category := &models.Category{Name: req.Name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to create category")
	}
	return category, nil
}

func (s *CategoryService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	return &category, nil
}

// ListCategories returns all categories; the catalog taxonomy is small
// enough that it is not paginated.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to list categories")
	}
	return categories, nil
}

func (s *CategoryService) UpdateCategory(id uuid.UUID, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(category).Update("name", req.Name).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to update category")
	}
	return category, nil
}

// DeleteCategory removes the category; products keep existing with a null
// category.
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Internal(err, "failed to detach products")
		}

		result := tx.Delete(&models.Category{}, "id = ?", id)
		if result.Error != nil {
			return apperrors.Internal(result.Error, "failed to delete category")
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("category not found")
		}
		return nil
	})
}
