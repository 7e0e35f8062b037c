// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

func TestGetCartCreatesLazily(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")

	cart, err := svc.GetCart(buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, cart.UserID)
	assert.Empty(t, cart.Items)

	again, err := svc.GetCart(buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestAddItemSnapshotsPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	product := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	cart, err := svc.AddItem(buyer.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 10.0, cart.Items[0].PriceAtAdd)

	// Price changes after the add; the snapshot must not move.
	require.NoError(t, db.Model(product).Update("price", 25.0).Error)

	cart, err = svc.AddItem(buyer.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 10.0, cart.Items[0].PriceAtAdd)
}

func TestAddItemRejectsUnapprovedProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	product := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Draft", 10)
	require.NoError(t, db.Model(product).Update("status", models.ProductStatusPending).Error)

	_, err := svc.AddItem(buyer.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestUpdateAndRemoveItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	other := createTestUser(t, db, models.RoleBuyer, "other@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	product := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	cart, err := svc.AddItem(buyer.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(buyer.ID, itemID, &UpdateCartItemRequest{Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	// Another buyer cannot touch the item.
	_, err = svc.UpdateItem(other.ID, itemID, &UpdateCartItemRequest{Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	cart, err = svc.RemoveItem(buyer.ID, itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestListItemsPaginated(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")

	for i := 0; i < 3; i++ {
		product := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Item", float64(i+1))
		_, err := svc.AddItem(buyer.ID, &AddCartItemRequest{ProductID: product.ID, Quantity: 1})
		require.NoError(t, err)
	}

	items, info, err := svc.ListItems(buyer.ID, utils.PaginationParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), info.TotalCount)
	assert.Equal(t, 2, info.TotalPages)
	assert.True(t, info.HasNextPage)
	assert.NotEmpty(t, items[0].Product.Title)
}

func TestClearCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	p1 := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)
	p2 := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Bowl", 15)

	_, err := svc.AddItem(buyer.ID, &AddCartItemRequest{ProductID: p1.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(buyer.ID, &AddCartItemRequest{ProductID: p2.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(buyer.ID))

	cart, err := svc.GetCart(buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
