// internal/services/payment_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/config"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type PaymentService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RecordPaymentRequest struct {
	PaymentMethod        string `json:"payment_method" validate:"required,max=50"`
	TransactionReference string `json:"transaction_reference" validate:"required,max=255"`
	Succeeded            bool   `json:"succeeded"`
}

type PaymentIntentResponse struct {
	ClientSecret   string  `json:"client_secret"`
	PaymentIntent  string  `json:"payment_intent_id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	PublishableKey string  `json:"publishable_key"`
}

func NewPaymentService(db *gorm.DB, cfg *config.Config) *PaymentService {
	stripe.Key = cfg.Payment.StripeSecretKey
	return &PaymentService{db: db, cfg: cfg}
}

// CreatePaymentIntent opens a Stripe payment intent for a pending order.
func (s *PaymentService) CreatePaymentIntent(orderID, buyerID uuid.UUID) (*PaymentIntentResponse, error) {
	order, err := s.pendingOrder(orderID, buyerID)
	if err != nil {
		return nil, err
	}

	intent, err := paymentintent.New(intentParams(order, s.cfg.Payment.Currency))
	if err != nil {
		return nil, apperrors.Internal(err, "failed to create payment intent")
	}

	return &PaymentIntentResponse{
		ClientSecret:   intent.ClientSecret,
		PaymentIntent:  intent.ID,
		Amount:         order.TotalAmount,
		Currency:       s.cfg.Payment.Currency,
		PublishableKey: s.cfg.Payment.StripePublishableKey,
	}, nil
}

// intentParams builds the Stripe request for an order. Amounts go to Stripe
// in minor units, and the order is tagged in the intent metadata so webhook
// events can be traced back.
func intentParams(order *models.Order, currency string) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(order.TotalAmount * 100)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("buyer_id", order.BuyerID.String())
	return params
}

// RecordPayment stores a payment attempt against an order. A successful
// payment flips the order to paid in the same transaction.
func (s *PaymentService) RecordPayment(orderID, buyerID uuid.UUID, req *RecordPaymentRequest) (*models.Payment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	order, err := s.pendingOrder(orderID, buyerID)
	if err != nil {
		return nil, err
	}

	status := models.PaymentStatusFailed
	if req.Succeeded {
		status = models.PaymentStatusCompleted
	}

	payment := &models.Payment{
		OrderID:              order.ID,
		PaymentMethod:        req.PaymentMethod,
		Status:               status,
		PaymentDate:          time.Now().UTC(),
		TransactionReference: req.TransactionReference,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Internal(err, "failed to record payment")
		}
		if status == models.PaymentStatusCompleted {
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
				Update("status", models.OrderStatusPaid).Error; err != nil {
				return apperrors.Internal(err, "failed to mark order paid")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *PaymentService) GetPayment(id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Preload("Order").First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	return &payment, nil
}

// ListOrderPayments returns an order's payment history to its buyer or a
// platform admin. Transaction references are not for other eyes.
func (s *PaymentService) ListOrderPayments(orderID, callerID uuid.UUID, admin bool) ([]models.Payment, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	if !admin && order.BuyerID != callerID {
		return nil, apperrors.PermissionDenied("order belongs to another buyer")
	}

	var payments []models.Payment
	err := s.db.Where("order_id = ?", orderID).
		Order("payment_date DESC, id ASC").Find(&payments).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list payments")
	}
	return payments, nil
}

func (s *PaymentService) pendingOrder(orderID, buyerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	if order.BuyerID != buyerID {
		return nil, apperrors.PermissionDenied("order belongs to another buyer")
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperrors.InvalidInput("order is %s, not pending", order.Status)
	}
	return &order, nil
}
