// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

// Cart is created lazily on first access. The unique index on UserID is what
// makes the concurrent get-or-create safe: losers of the race hit a
// duplicate-key error and fall back to fetching the winner's row.
type Cart struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex"`

	User  User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Items []CartItem `json:"items,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

type CartItem struct {
	BaseModel
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	// PriceAtAdd snapshots the product price when the item was first added.
	// Later product price changes never touch it.
	PriceAtAdd float64 `json:"price_at_add" gorm:"not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
