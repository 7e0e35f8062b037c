// internal/services/association_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

func TestCreateAssociation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssociationService(db)

	admin := createTestUser(t, db, models.RoleAssociationAdmin, "admin@example.com")
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")

	t.Run("success", func(t *testing.T) {
		association, err := svc.CreateAssociation(&CreateAssociationRequest{
			Name:    "Guild of Potters",
			Email:   "guild@example.com",
			Phone:   "0123456789",
			AdminID: admin.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "Guild of Potters", association.Name)
	})

	t.Run("admin role enforced", func(t *testing.T) {
		_, err := svc.CreateAssociation(&CreateAssociationRequest{
			Name:    "Another Guild",
			Email:   "another@example.com",
			Phone:   "0123456789",
			AdminID: buyer.ID,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
	})

	t.Run("one association per admin", func(t *testing.T) {
		_, err := svc.CreateAssociation(&CreateAssociationRequest{
			Name:    "Second Guild",
			Email:   "second@example.com",
			Phone:   "0123456789",
			AdminID: admin.ID,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})
}

func TestDeleteAssociationDetachesArtisans(t *testing.T) {
	db := newTestDB(t)
	svc := NewAssociationService(db)

	admin := createTestUser(t, db, models.RoleAssociationAdmin, "admin@example.com")
	association, err := svc.CreateAssociation(&CreateAssociationRequest{
		Name:    "Guild of Potters",
		Email:   "guild@example.com",
		Phone:   "0123456789",
		AdminID: admin.ID,
	})
	require.NoError(t, err)

	artisan := createTestArtisan(t, db, "maker@example.com")
	require.NoError(t, db.Model(artisan).Update("association_id", association.ID).Error)

	require.NoError(t, svc.DeleteAssociation(association.ID))

	var got models.Artisan
	require.NoError(t, db.First(&got, "user_id = ?", artisan.UserID).Error)
	assert.Nil(t, got.AssociationID)
}

func TestCreateArtisanProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewArtisanService(db)

	user := createTestUser(t, db, models.RoleArtisan, "maker@example.com")
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")

	artisan, err := svc.CreateArtisan(&CreateArtisanRequest{UserID: user.ID, Bio: "ceramics"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, artisan.UserID)
	assert.Equal(t, user.Name, artisan.User.Name)

	t.Run("one profile per user", func(t *testing.T) {
		_, err := svc.CreateArtisan(&CreateArtisanRequest{UserID: user.ID})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("artisan role enforced", func(t *testing.T) {
		_, err := svc.CreateArtisan(&CreateArtisanRequest{UserID: buyer.ID})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
	})
}

func TestListArtisansByAssociation(t *testing.T) {
	db := newTestDB(t)
	artisanSvc := NewArtisanService(db)
	associationSvc := NewAssociationService(db)

	admin := createTestUser(t, db, models.RoleAssociationAdmin, "admin@example.com")
	association, err := associationSvc.CreateAssociation(&CreateAssociationRequest{
		Name:    "Guild",
		Email:   "guild@example.com",
		Phone:   "0123456789",
		AdminID: admin.ID,
	})
	require.NoError(t, err)

	member := createTestArtisan(t, db, "member@example.com")
	require.NoError(t, db.Model(member).Update("association_id", association.ID).Error)
	createTestArtisan(t, db, "independent@example.com")

	artisans, info, err := artisanSvc.ListArtisans(ListArtisansParams{
		Pagination:    utils.PaginationParams{Page: 1, PageSize: 10},
		AssociationID: &association.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.TotalCount)
	require.Len(t, artisans, 1)
	assert.Equal(t, member.UserID, artisans[0].UserID)
}
