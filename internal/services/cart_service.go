// internal/services/cart_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the buyer's cart, creating an empty one on first access.
func (s *CartService) GetCart(userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.getOrCreateCart(s.db, userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC, id ASC")
	}).Preload("Items.Product").First(cart, "id = ?", cart.ID).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load cart")
	}

	return cart, nil
}

// AddItem puts a product in the cart. The first add snapshots the product's
// current price; adding the same product again only bumps the quantity and
// leaves the snapshot untouched.
func (s *CartService) AddItem(userID uuid.UUID, req *AddCartItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("product not found")
			}
			return apperrors.Internal(err, "database error")
		}
		if product.Status != models.ProductStatusApproved {
			return apperrors.InvalidInput("product is not available for purchase")
		}

		cart, err := s.getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, req.ProductID).
			First(&item).Error
		switch {
		case err == nil:
			if err := tx.Model(&item).
				Update("quantity", gorm.Expr("quantity + ?", req.Quantity)).Error; err != nil {
				return apperrors.Internal(err, "failed to update cart item")
			}
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:     cart.ID,
				ProductID:  req.ProductID,
				Quantity:   req.Quantity,
				PriceAtAdd: product.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return apperrors.Internal(err, "failed to add cart item")
			}
			return nil
		default:
			return apperrors.Internal(err, "database error")
		}
	})
	if err != nil {
		return nil, err
	}

	return s.GetCart(userID)
}

func (s *CartService) UpdateItem(userID, itemID uuid.UUID, req *UpdateCartItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to update cart item")
	}

	return s.GetCart(userID)
}

func (s *CartService) RemoveItem(userID, itemID uuid.UUID) (*models.Cart, error) {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to remove cart item")
	}

	return s.GetCart(userID)
}

// ListItems serves the cart contents through the standard page envelope.
func (s *CartService) ListItems(userID uuid.UUID, params utils.PaginationParams) ([]models.CartItem, utils.PageInfo, error) {
	cart, err := s.getOrCreateCart(s.db, userID)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}

	query := s.db.Model(&models.CartItem{}).
		Preload("Product").
		Where("cart_id = ?", cart.ID).
		Order("created_at ASC, id ASC")

	var items []models.CartItem
	info, err := utils.Paginate(query, params, &items)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}
	return items, info, nil
}

func (s *CartService) ClearCart(userID uuid.UUID) error {
	cart, err := s.getOrCreateCart(s.db, userID)
	if err != nil {
		return err
	}
	if err := s.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return apperrors.Internal(err, "failed to clear cart")
	}
	return nil
}

func (s *CartService) getOrCreateCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(err, "database error")
	}

	cart = models.Cart{UserID: userID}
	if err := tx.Create(&cart).Error; err != nil {
		// Lost the create race; the winner's cart is the cart.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
				return nil, apperrors.Internal(err, "database error")
			}
			return &cart, nil
		}
		return nil, apperrors.Internal(err, "failed to create cart")
	}
	return &cart, nil
}

func (s *CartService) ownedItem(userID, itemID uuid.UUID) (*models.CartItem, error) {
	cart, err := s.getOrCreateCart(s.db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = s.db.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("cart item not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}
	return &item, nil
}
