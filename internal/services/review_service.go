// internal/services/review_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string   `json:"comment,omitempty"`
}

type ReviewSummary struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// CreateReview records one review per buyer per product.
func (s *ReviewService) CreateReview(buyerID uuid.UUID, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	var count int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", req.ProductID).Count(&count).Error; err != nil {
		return nil, apperrors.Internal(err, "database error")
	}
	if count == 0 {
		return nil, apperrors.NotFound("product not found")
	}

	review := &models.Review{
		BuyerID:   buyerID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("you have already reviewed this product")
		}
		return nil, apperrors.Internal(err, "failed to create review")
	}

	return review, nil
}

func (s *ReviewService) DeleteReview(reviewID, buyerID uuid.UUID) error {
	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("review not found")
		}
		return apperrors.Internal(err, "database error")
	}
	if review.BuyerID != buyerID {
		return apperrors.PermissionDenied("review belongs to another buyer")
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return apperrors.Internal(err, "failed to delete review")
	}
	return nil
}

func (s *ReviewService) ListProductReviews(productID uuid.UUID, params utils.PaginationParams) ([]models.Review, utils.PageInfo, error) {
	query := s.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Order("created_at DESC, id ASC")

	var reviews []models.Review
	info, err := utils.Paginate(query, params, &reviews)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}
	return reviews, info, nil
}

func (s *ReviewService) ProductSummary(productID uuid.UUID) (*ReviewSummary, error) {
	var summary ReviewSummary
	err := s.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS review_count").
		Where("product_id = ?", productID).
		Scan(&summary).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to compute review summary")
	}
	return &summary, nil
}
