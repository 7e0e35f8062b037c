// internal/services/order_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type OrderService struct {
	db *gorm.DB
}

// OrderItemInput carries the price the buyer was shown. The unit price is a
// snapshot like the cart's price_at_add and is deliberately not re-derived
// from the live product.
type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unit_price" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	ShippingAddress string           `json:"shipping_address" validate:"required"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status         string  `json:"status" validate:"required"`
	TrackingNumber *string `json:"tracking_number,omitempty" validate:"omitempty,max=100"`
}

type ListOrdersParams struct {
	Pagination utils.PaginationParams
	BuyerID    *uuid.UUID
	Status     string
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder records an order with a server-computed total in a single
// transaction.
func (s *OrderService) CreateOrder(buyerID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	var orderID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		id, err := createOrder(tx, buyerID, req)
		if err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

// createOrder places an order inside the caller's transaction: it reserves
// stock per line and sets the server-computed total. Any failing line aborts
// the transaction, so no partial order is ever visible.
func createOrder(tx *gorm.DB, buyerID uuid.UUID, req *CreateOrderRequest) (uuid.UUID, error) {
	order := &models.Order{
		BuyerID:         buyerID,
		Status:          models.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
	}
	if err := tx.Create(order).Error; err != nil {
		return uuid.Nil, apperrors.Internal(err, "failed to create order")
	}

	var total float64
	for _, line := range req.Items {
		var product models.Product
		if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return uuid.Nil, apperrors.NotFound("product %s not found", line.ProductID)
			}
			return uuid.Nil, apperrors.Internal(err, "database error")
		}
		if product.Status != models.ProductStatusApproved {
			return uuid.Nil, apperrors.InvalidInput("product %s is not available for purchase", line.ProductID)
		}
		if product.StockQuantity < line.Quantity {
			return uuid.Nil, apperrors.InvalidInput("insufficient stock for product %s", line.ProductID)
		}

		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		if err := tx.Create(&item).Error; err != nil {
			return uuid.Nil, apperrors.Internal(err, "failed to create order item")
		}

		if err := tx.Model(&product).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity)).Error; err != nil {
			return uuid.Nil, apperrors.Internal(err, "failed to adjust stock")
		}

		total += float64(line.Quantity) * line.UnitPrice
	}

	if err := tx.Model(order).Update("total_amount", total).Error; err != nil {
		return uuid.Nil, apperrors.Internal(err, "failed to set order total")
	}

	return order.ID, nil
}

// CheckoutCart turns the buyer's cart into an order and empties the cart,
// all in one transaction.
func (s *OrderService) CheckoutCart(buyerID uuid.UUID, shippingAddress string) (*models.Order, error) {
	if shippingAddress == "" {
		return nil, apperrors.InvalidInput("shipping_address is required")
	}

	var cart models.Cart
	err := s.db.Preload("Items").Where("user_id = ?", buyerID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.InvalidInput("cart is empty")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	// Checkout charges the add-time snapshot, not the live price.
	req := &CreateOrderRequest{ShippingAddress: shippingAddress}
	for _, item := range cart.Items {
		req.Items = append(req.Items, OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.PriceAtAdd,
		})
	}

	// Order placement and cart clearing commit together or not at all.
	var orderID uuid.UUID
	err = s.db.Transaction(func(tx *gorm.DB) error {
		id, err := createOrder(tx, buyerID, req)
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return apperrors.Internal(err, "failed to clear cart")
		}
		orderID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(orderID)
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Buyer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	return &order, nil
}

func (s *OrderService) ListOrders(params ListOrdersParams) ([]models.Order, utils.PageInfo, error) {
	query := s.db.Model(&models.Order{}).Preload("Items")

	if params.BuyerID != nil {
		query = query.Where("buyer_id = ?", *params.BuyerID)
	}
	if params.Status != "" {
		status := models.OrderStatus(params.Status)
		if !status.Valid() {
			return nil, utils.PageInfo{}, apperrors.InvalidInput("invalid status: %s", params.Status)
		}
		query = query.Where("status = ?", status)
	}
	query = query.Order("created_at DESC, id ASC")

	var orders []models.Order
	info, err := utils.Paginate(query, params.Pagination, &orders)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}
	return orders, info, nil
}

func (s *OrderService) UpdateStatus(id uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return nil, apperrors.InvalidInput("invalid status: %s", req.Status)
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}

	updates := map[string]interface{}{"status": status}
	if req.TrackingNumber != nil {
		updates["tracking_number"] = *req.TrackingNumber
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to update order")
	}

	return s.GetOrder(id)
}

// CancelOrder cancels a pending order and restores the stock it reserved.
func (s *OrderService) CancelOrder(id, buyerID uuid.UUID) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("order not found")
			}
			return apperrors.Internal(err, "database error")
		}
		if order.BuyerID != buyerID {
			return apperrors.PermissionDenied("order belongs to another buyer")
		}
		if order.Status != models.OrderStatusPending {
			return apperrors.InvalidInput("only pending orders can be cancelled")
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return apperrors.Internal(err, "failed to restore stock")
			}
		}

		if err := tx.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			return apperrors.Internal(err, "failed to cancel order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(id)
}
