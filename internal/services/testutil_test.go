// internal/services/testutil_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/atelierhub/marketplace-backend/internal/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Association{},
		&models.Artisan{},
		&models.Category{},
		&models.Product{},
		&models.ProductTranslation{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Favorite{},
		&models.Review{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:   "Test " + string(role),
		Email:  email,
		Role:   role,
		Active: true,
	}
	require.NoError(t, user.SetPassword("Password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestArtisan(t *testing.T, db *gorm.DB, email string) *models.Artisan {
	t.Helper()

	user := createTestUser(t, db, models.RoleArtisan, email)
	artisan := &models.Artisan{UserID: user.ID, Bio: "makes things"}
	require.NoError(t, db.Create(artisan).Error)
	artisan.User = *user
	return artisan
}

func createTestProduct(t *testing.T, db *gorm.DB, ownerType models.OwnerType, ownerID uuid.UUID, title string, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:         title,
		Price:         price,
		StockQuantity: 10,
		OwnerType:     ownerType,
		OwnerID:       ownerID,
		Status:        models.ProductStatusApproved,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
