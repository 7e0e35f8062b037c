// internal/services/payment_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
)

func TestRecordPayment(t *testing.T) {
	db := newTestDB(t)
	orderSvc := NewOrderService(db)
	paymentSvc := NewPaymentService(db, testConfig())

	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	other := createTestUser(t, db, models.RoleBuyer, "other@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	order, err := orderSvc.CreateOrder(buyer.ID, &CreateOrderRequest{
		ShippingAddress: "1 Rue des Potiers",
		Items:           []OrderItemInput{{ProductID: mug.ID, Quantity: 1, UnitPrice: 10.0}},
	})
	require.NoError(t, err)

	t.Run("another buyer cannot pay", func(t *testing.T) {
		_, err := paymentSvc.RecordPayment(order.ID, other.ID, &RecordPaymentRequest{
			PaymentMethod:        "card",
			TransactionReference: "txn_1",
			Succeeded:            true,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))
	})

	t.Run("failed payment keeps the order pending", func(t *testing.T) {
		payment, err := paymentSvc.RecordPayment(order.ID, buyer.ID, &RecordPaymentRequest{
			PaymentMethod:        "card",
			TransactionReference: "txn_2",
			Succeeded:            false,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusFailed, payment.Status)

		got, err := orderSvc.GetOrder(order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, got.Status)
	})

	t.Run("successful payment marks the order paid", func(t *testing.T) {
		payment, err := paymentSvc.RecordPayment(order.ID, buyer.ID, &RecordPaymentRequest{
			PaymentMethod:        "card",
			TransactionReference: "txn_3",
			Succeeded:            true,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusCompleted, payment.Status)

		got, err := orderSvc.GetOrder(order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPaid, got.Status)
	})

	t.Run("paid order refuses further payments", func(t *testing.T) {
		_, err := paymentSvc.RecordPayment(order.ID, buyer.ID, &RecordPaymentRequest{
			PaymentMethod:        "card",
			TransactionReference: "txn_4",
			Succeeded:            true,
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
	})

	payments, err := paymentSvc.ListOrderPayments(order.ID, buyer.ID, false)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestRecordPaymentValidatesInput(t *testing.T) {
	db := newTestDB(t)
	orderSvc := NewOrderService(db)
	paymentSvc := NewPaymentService(db, testConfig())

	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	order, err := orderSvc.CreateOrder(buyer.ID, &CreateOrderRequest{
		ShippingAddress: "1 Rue des Potiers",
		Items:           []OrderItemInput{{ProductID: mug.ID, Quantity: 1, UnitPrice: 10.0}},
	})
	require.NoError(t, err)

	_, err = paymentSvc.RecordPayment(order.ID, buyer.ID, &RecordPaymentRequest{Succeeded: true})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))

	// Nothing was persisted and the order is still payable.
	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Zero(t, count)

	got, err := orderSvc.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestListOrderPaymentsOwnership(t *testing.T) {
	db := newTestDB(t)
	orderSvc := NewOrderService(db)
	paymentSvc := NewPaymentService(db, testConfig())

	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	other := createTestUser(t, db, models.RoleBuyer, "other@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 10)

	order, err := orderSvc.CreateOrder(buyer.ID, &CreateOrderRequest{
		ShippingAddress: "1 Rue des Potiers",
		Items:           []OrderItemInput{{ProductID: mug.ID, Quantity: 1, UnitPrice: 10.0}},
	})
	require.NoError(t, err)

	_, err = paymentSvc.RecordPayment(order.ID, buyer.ID, &RecordPaymentRequest{
		PaymentMethod:        "card",
		TransactionReference: "txn_1",
		Succeeded:            false,
	})
	require.NoError(t, err)

	t.Run("another buyer cannot read the history", func(t *testing.T) {
		_, err := paymentSvc.ListOrderPayments(order.ID, other.ID, false)
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))
	})

	t.Run("the buyer can", func(t *testing.T) {
		payments, err := paymentSvc.ListOrderPayments(order.ID, buyer.ID, false)
		require.NoError(t, err)
		assert.Len(t, payments, 1)
	})

	t.Run("an admin can", func(t *testing.T) {
		payments, err := paymentSvc.ListOrderPayments(order.ID, other.ID, true)
		require.NoError(t, err)
		assert.Len(t, payments, 1)
	})
}

func TestIntentParams(t *testing.T) {
	db := newTestDB(t)
	orderSvc := NewOrderService(db)

	buyer := createTestUser(t, db, models.RoleBuyer, "buyer@example.com")
	artisan := createTestArtisan(t, db, "maker@example.com")
	mug := createTestProduct(t, db, models.OwnerTypeArtisan, artisan.UserID, "Mug", 12.5)

	order, err := orderSvc.CreateOrder(buyer.ID, &CreateOrderRequest{
		ShippingAddress: "1 Rue des Potiers",
		Items:           []OrderItemInput{{ProductID: mug.ID, Quantity: 2, UnitPrice: 12.5}},
	})
	require.NoError(t, err)

	params := intentParams(order, "eur")
	assert.Equal(t, int64(2500), *params.Amount)
	assert.Equal(t, "eur", *params.Currency)
	assert.Equal(t, order.ID.String(), params.Metadata["order_id"])
	assert.Equal(t, buyer.ID.String(), params.Metadata["buyer_id"])
}
