// internal/services/artisan_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type ArtisanService struct {
	db *gorm.DB
}

type CreateArtisanRequest struct {
	UserID        uuid.UUID  `json:"user_id" validate:"required"`
	AssociationID *uuid.UUID `json:"association_id,omitempty"`
	Bio           string     `json:"bio"`
}

type UpdateArtisanRequest struct {
	AssociationID *uuid.UUID `json:"association_id,omitempty"`
	Bio           *string    `json:"bio,omitempty"`
}

type ListArtisansParams struct {
	Pagination    utils.PaginationParams
	AssociationID *uuid.UUID
}

func NewArtisanService(db *gorm.DB) *ArtisanService {
	return &ArtisanService{db: db}
}

// CreateArtisan promotes a user account to an artisan profile. The profile
// shares the user's primary key, so a user has at most one.
func (s *ArtisanService) CreateArtisan(req *CreateArtisanRequest) (*models.Artisan, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	if user.Role != models.RoleArtisan {
		return nil, apperrors.InvalidInput("user must have the artisan role")
	}

	if req.AssociationID != nil {
		var count int64
		if err := s.db.Model(&models.Association{}).Where("id = ?", *req.AssociationID).Count(&count).Error; err != nil {
			return nil, apperrors.Internal(err, "database error")
		}
		if count == 0 {
			return nil, apperrors.NotFound("association not found")
		}
	}

	artisan := &models.Artisan{
		UserID:        req.UserID,
		AssociationID: req.AssociationID,
		Bio:           req.Bio,
	}

	if err := s.db.Create(artisan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("artisan profile already exists for this user")
		}
		return nil, apperrors.Internal(err, "failed to create artisan")
	}

	return s.GetArtisan(req.UserID)
}

func (s *ArtisanService) GetArtisan(userID uuid.UUID) (*models.Artisan, error) {
	var artisan models.Artisan
	err := s.db.Preload("User").Preload("Association").
		First(&artisan, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("artisan not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	return &artisan, nil
}

func (s *ArtisanService) ListArtisans(params ListArtisansParams) ([]models.Artisan, utils.PageInfo, error) {
	query := s.db.Model(&models.Artisan{}).Preload("User").Preload("Association")
	if params.AssociationID != nil {
		query = query.Where("association_id = ?", *params.AssociationID)
	}
	query = query.Order("created_at DESC, user_id ASC")

	var artisans []models.Artisan
	info, err := utils.Paginate(query, params.Pagination, &artisans)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}
	return artisans, info, nil
}

func (s *ArtisanService) UpdateArtisan(userID uuid.UUID, req *UpdateArtisanRequest) (*models.Artisan, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	var artisan models.Artisan
	if err := s.db.First(&artisan, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("artisan not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}

	updates := map[string]interface{}{}
	if req.AssociationID != nil {
		var count int64
		if err := s.db.Model(&models.Association{}).Where("id = ?", *req.AssociationID).Count(&count).Error; err != nil {
			return nil, apperrors.Internal(err, "database error")
		}
		if count == 0 {
			return nil, apperrors.NotFound("association not found")
		}
		updates["association_id"] = *req.AssociationID
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if len(updates) > 0 {
		if err := s.db.Model(&artisan).Updates(updates).Error; err != nil {
			return nil, apperrors.Internal(err, "failed to update artisan")
		}
	}

	return s.GetArtisan(userID)
}

// LeaveAssociation clears the artisan's association link.
func (s *ArtisanService) LeaveAssociation(userID uuid.UUID) error {
	result := s.db.Model(&models.Artisan{}).Where("user_id = ?", userID).
		Update("association_id", nil)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to update artisan")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("artisan not found")
	}
	return nil
}

func (s *ArtisanService) DeleteArtisan(userID uuid.UUID) error {
	result := s.db.Delete(&models.Artisan{}, "user_id = ?", userID)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete artisan")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("artisan not found")
	}
	return nil
}
