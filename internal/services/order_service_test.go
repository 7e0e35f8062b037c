// internal/services/order_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
)

func TestCreateOrderComputesTotal(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)
	bowl := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Bowl", 5)

	order, err := svc.CreateOrder(buyer.ID, &CreateOrderRequest{
		ShippingAddress: "1 Rue des Potiers",
		Items: []OrderItemInput{
			{ProductID: mug.ID, Quantity: 2, UnitPrice: 10.0},
			{ProductID: bowl.ID, Quantity: 1, UnitPrice: 5.0},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)

	prices := map[uuid.UUID]float64{}
	for _, item := range order.Items {
		prices[item.ProductID] = item.UnitPrice
	}
	assert.Equal(t, 10.0, prices[mug.ID])
	assert.Equal(t, 5.0, prices[bowl.ID])

	// Stock was reserved.
	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", mug.ID).Error)
	assert.Equal(t, 8, got.StockQuantity)
}

func TestCreateOrderRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	_, err := svc.CreateOrder(buyer.ID, &CreateOrderRequest{
		ShippingAddress: "1 Rue des Potiers",
		Items: []OrderItemInput{
			{ProductID: mug.ID, Quantity: 1, UnitPrice: 10.0},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: 1.0},
		},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	// Nothing from the failed order survives.
	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)

	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", mug.ID).Error)
	assert.Equal(t, 10, got.StockQuantity)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	_, err := svc.CreateOrder(buyer.ID, &CreateOrderRequest{
		ShippingAddress: "1 Rue des Potiers",
		Items:           []OrderItemInput{{ProductID: mug.ID, Quantity: 11, UnitPrice: 10.0}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestCheckoutCartEmptiesCart(t *testing.T) {
	db := newTestDB(t)
	orderSvc := NewOrderService(db)
	cartSvc := NewCartService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	_, err := cartSvc.AddItem(buyer.ID, &AddCartItemRequest{ProductID: mug.ID, Quantity: 3})
	require.NoError(t, err)

	// The live price moves after the add; checkout charges the snapshot.
	require.NoError(t, db.Model(mug).Update("price", 99.0).Error)

	order, err := orderSvc.CheckoutCart(buyer.ID, "1 Rue des Potiers")
	require.NoError(t, err)
	assert.Equal(t, 30.0, order.TotalAmount)

	cart, err := cartSvc.GetCart(buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	db := newTestDB(t)
	orderSvc := NewOrderService(db)
	cartSvc := NewCartService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	_, err := cartSvc.AddItem(buyer.ID, &AddCartItemRequest{ProductID: mug.ID, Quantity: 3})
	require.NoError(t, err)

	// Stock runs out between the add and the checkout; the whole checkout
	// rolls back, leaving the cart as it was.
	require.NoError(t, db.Model(mug).Update("stock_quantity", 1).Error)

	_, err = orderSvc.CheckoutCart(buyer.ID, "1 Rue des Potiers")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))

	cart, err := cartSvc.GetCart(buyer.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Where("buyer_id = ?", buyer.ID).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")

	_, err := svc.CheckoutCart(buyer.ID, "1 Rue des Potiers")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}

func TestCancelOrderRestoresStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	other := createTestUser(t, db, models.RoleBuyer, "other@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	order, err := svc.CreateOrder(buyer.ID, &CreateOrderRequest{
		ShippingAddress: "1 Rue des Potiers",
		Items:           []OrderItemInput{{ProductID: mug.ID, Quantity: 4, UnitPrice: 10.0}},
	})
	require.NoError(t, err)

	_, err = svc.CancelOrder(order.ID, other.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))

	cancelled, err := svc.CancelOrder(order.ID, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	var got models.Product
	require.NoError(t, db.First(&got, "id = ?", mug.ID).Error)
	assert.Equal(t, 10, got.StockQuantity)

	// A cancelled order cannot be cancelled twice.
	_, err = svc.CancelOrder(order.ID, buyer.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
}
