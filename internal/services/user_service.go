// internal/services/user_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateUserRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	ProfilePicture *string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strong_password"`
}

type ListUsersParams struct {
	Pagination utils.PaginationParams
	Role       string
	Search     string
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	return &user, nil
}

func (s *UserService) ListUsers(params ListUsersParams) ([]models.User, utils.PageInfo, error) {
	query := s.db.Model(&models.User{})

	if params.Role != "" {
		role := models.UserRole(params.Role)
		if !role.Valid() {
			return nil, utils.PageInfo{}, apperrors.InvalidInput("invalid role: %s", params.Role)
		}
		query = query.Where("role = ?", role)
	}
	if params.Search != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	query = query.Order("created_at DESC, id ASC")

	var users []models.User
	info, err := utils.Paginate(query, params.Pagination, &users)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}

	return users, info, nil
}

func (s *UserService) UpdateUser(id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.ProfilePicture != nil {
		updates["profile_picture"] = *req.ProfilePicture
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Internal(err, "failed to update user")
		}
	}

	return s.GetUser(id)
}

func (s *UserService) ChangePassword(id uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.InvalidInput("validation failed: %v", err)
	}

	user, err := s.GetUser(id)
	if err != nil {
		return err
	}

	if err := user.CheckPassword(req.CurrentPassword); err != nil {
		return apperrors.Authentication("current password is incorrect")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return apperrors.Internal(err, "failed to hash password")
	}

	if err := s.db.Model(user).Update("password_hash", user.PasswordHash).Error; err != nil {
		return apperrors.Internal(err, "failed to update password")
	}

	return nil
}

// DeactivateUser soft-disables the account. Existing tokens keep their
// claims but login and refresh are refused.
func (s *UserService) DeactivateUser(id uuid.UUID) error {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to deactivate user")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

func (s *UserService) ActivateUser(id uuid.UUID) error {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Update("active", true)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to activate user")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}
