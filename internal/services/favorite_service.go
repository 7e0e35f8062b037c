// internal/services/favorite_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// AddFavorite marks a product as a favorite. Favoriting the same product
// twice is a no-op that returns the existing row.
func (s *FavoriteService) AddFavorite(buyerID, productID uuid.UUID) (*models.Favorite, error) {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return nil, apperrors.Internal(err, "database error")
	}
	if count == 0 {
		return nil, apperrors.NotFound("product not found")
	}

	favorite := &models.Favorite{BuyerID: buyerID, ProductID: productID}
	if err := s.db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Favorite
			if err := s.db.Where("buyer_id = ? AND product_id = ?", buyerID, productID).
				First(&existing).Error; err != nil {
				return nil, apperrors.Internal(err, "database error")
			}
			return &existing, nil
		}
		return nil, apperrors.Internal(err, "failed to add favorite")
	}

	return favorite, nil
}

func (s *FavoriteService) RemoveFavorite(buyerID, productID uuid.UUID) error {
	result := s.db.Delete(&models.Favorite{}, "buyer_id = ? AND product_id = ?", buyerID, productID)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to remove favorite")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("favorite not found")
	}
	return nil
}

// ListFavorites returns the buyer's favorited products, newest first, with
// owner names resolved.
func (s *FavoriteService) ListFavorites(buyerID uuid.UUID, params utils.PaginationParams) ([]models.Product, utils.PageInfo, error) {
	query := s.db.Model(&models.Product{}).
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.buyer_id = ?", buyerID).
		Order("favorites.created_at DESC, products.id ASC")

	var products []models.Product
	info, err := utils.Paginate(query, params, &products)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}

	if err := NewOwnerResolver(s.db).Annotate(products); err != nil {
		return nil, utils.PageInfo{}, err
	}
	return products, info, nil
}

func (s *FavoriteService) IsFavorite(buyerID, productID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).
		Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal(err, "database error")
	}
	return count > 0, nil
}
