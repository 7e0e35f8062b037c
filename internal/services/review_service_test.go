// internal/services/review_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

func TestCreateReview(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	product := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	comment := "Lovely glaze"
	review, err := svc.CreateReview(buyer.ID, &CreateReviewRequest{
		ProductID: product.ID,
		Rating:    5,
		Comment:   &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	t.Run("second review conflicts", func(t *testing.T) {
		_, err := svc.CreateReview(buyer.ID, &CreateReviewRequest{
			ProductID: product.ID,
			Rating:    1,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("rating out of bounds", func(t *testing.T) {
		_, err := svc.CreateReview(buyer.ID, &CreateReviewRequest{
			ProductID: product.ID,
			Rating:    6,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
	})
}

func TestReviewSummary(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	artisan := createTestArtisan(t, db, "maker@example.com")
	product := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	b1 := createTestUser(t, db, models.RoleBuyer, "b1@example.com")
	b2 := createTestUser(t, db, models.RoleBuyer, "b2@example.com")

	_, err := svc.CreateReview(b1.ID, &CreateReviewRequest{ProductID: product.ID, Rating: 4})
	require.NoError(t, err)
	_, err = svc.CreateReview(b2.ID, &CreateReviewRequest{ProductID: product.ID, Rating: 2})
	require.NoError(t, err)

	summary, err := svc.ProductSummary(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.ReviewCount)
	assert.Equal(t, 3.0, summary.AverageRating)
}

func TestDeleteReviewOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	other := createTestUser(t, db, models.RoleBuyer, "other@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	product := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	review, err := svc.CreateReview(buyer.ID, &CreateReviewRequest{ProductID: product.ID, Rating: 3})
	require.NoError(t, err)

	err = svc.DeleteReview(review.ID, other.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))

	require.NoError(t, svc.DeleteReview(review.ID, buyer.ID))

	reviews, info, err := svc.ListProductReviews(product.ID, utils.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.Equal(t, int64(0), info.TotalCount)
	assert.Equal(t, 1, info.CurrentPage)
}

func TestFavorites(t *testing.T) {
	db := newTestDB(t)
	svc := NewFavoriteService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	product := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	fav, err := svc.AddFavorite(buyer.ID, product.ID)
	require.NoError(t, err)

	// Favoriting twice returns the same row rather than erroring.
	again, err := svc.AddFavorite(buyer.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, fav.ID, again.ID)

	products, info, err := svc.ListFavorites(buyer.ID, utils.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), info.TotalCount)
	require.NotNil(t, products[0].Owner)

	require.NoError(t, svc.RemoveFavorite(buyer.ID, product.ID))

	err = svc.RemoveFavorite(buyer.ID, product.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
