// internal/models/review.go
package models

import (
	"github.com/google/uuid"
)

// Favorite is a toggleable bookmark, unique per (buyer, product).
type Favorite struct {
	BaseModel
	BuyerID   uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_buyer_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_buyer_product"`

	Buyer   User    `json:"buyer,omitempty" gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type Review struct {
	BaseModel
	BuyerID   uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_buyer_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_reviews_buyer_product"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   *string   `json:"comment" gorm:"type:text"`

	Buyer   User    `json:"buyer,omitempty" gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
