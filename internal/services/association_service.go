// internal/services/association_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type AssociationService struct {
	db *gorm.DB
}

type CreateAssociationRequest struct {
	Name        string    `json:"name" validate:"required,max=255"`
	Description string    `json:"description"`
	LogoURL     *string   `json:"logo_url,omitempty" validate:"omitempty,url"`
	Email       string    `json:"email" validate:"required,email"`
	Phone       string    `json:"phone" validate:"required,max=20"`
	AdminID     uuid.UUID `json:"admin_id" validate:"required"`
}

type UpdateAssociationRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

func NewAssociationService(db *gorm.DB) *AssociationService {
	return &AssociationService{db: db}
}

func (s *AssociationService) CreateAssociation(req *CreateAssociationRequest) (*models.Association, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	var admin models.User
	if err := s.db.First(&admin, "id = ?", req.AdminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("admin user not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	if admin.Role != models.RoleAssociationAdmin {
		return nil, apperrors.InvalidInput("admin user must have the association_admin role")
	}

	association := &models.Association{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Email:       req.Email,
		Phone:       req.Phone,
		AdminID:     req.AdminID,
	}

	if err := s.db.Create(association).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("user already administers an association")
		}
		return nil, apperrors.Internal(err, "failed to create association")
	}

	return association, nil
}

func (s *AssociationService) GetAssociation(id uuid.UUID) (*models.Association, error) {
	var association models.Association
	err := s.db.Preload("Admin").Preload("Artisans.User").
		First(&association, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("association not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	return &association, nil
}

func (s *AssociationService) ListAssociations(params utils.PaginationParams, search string) ([]models.Association, utils.PageInfo, error) {
	query := s.db.Model(&models.Association{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	query = query.Order("name ASC, id ASC")

	var associations []models.Association
	info, err := utils.Paginate(query, params, &associations)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}
	return associations, info, nil
}

func (s *AssociationService) UpdateAssociation(id uuid.UUID, req *UpdateAssociationRequest) (*models.Association, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	var association models.Association
	if err := s.db.First(&association, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("association not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		if err := s.db.Model(&association).Updates(updates).Error; err != nil {
			return nil, apperrors.Internal(err, "failed to update association")
		}
	}

	return s.GetAssociation(id)
}

// DeleteAssociation removes the association. Member artisans survive with
// their association link cleared; their products keep pointing at the
// deleted association and simply resolve to no owner from then on.
func (s *AssociationService) DeleteAssociation(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Artisan{}).Where("association_id = ?", id).
			Update("association_id", nil).Error; err != nil {
			return apperrors.Internal(err, "failed to detach artisans")
		}

		result := tx.Delete(&models.Association{}, "id = ?", id)
		if result.Error != nil {
			return apperrors.Internal(result.Error, "failed to delete association")
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("association not found")
		}
		return nil
	})
}

// IsAssociationAdmin reports whether userID administers the association.
func (s *AssociationService) IsAssociationAdmin(associationID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Association{}).
		Where("id = ? AND admin_id = ?", associationID, userID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal(err, "database error")
	}
	return count > 0, nil
}
