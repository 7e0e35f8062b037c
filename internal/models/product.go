// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"size:255;not null"`
}

// Product ownership is polymorphic: OwnerID references an Artisan or an
// Association depending on OwnerType, with no foreign key backing it. The
// pair is validated at creation time only and may dangle afterwards.
type Product struct {
	BaseModel
	Title         string        `json:"title" gorm:"size:255;not null"`
	Description   string        `json:"description" gorm:"type:text"`
	Price         float64       `json:"price" gorm:"not null"`
	StockQuantity int           `json:"stock_quantity" gorm:"not null;default:0"`
	OwnerType     OwnerType     `json:"owner_type" gorm:"type:varchar(20);not null;index:idx_products_owner"`
	OwnerID       uuid.UUID     `json:"owner_id" gorm:"type:uuid;not null;index:idx_products_owner"`
	CategoryID    *uuid.UUID    `json:"category_id" gorm:"type:uuid;index"`
	Status        ProductStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	// Owner carries the resolved owner name for API responses; it is not a
	// column.
	Owner *string `json:"owner,omitempty" gorm:"-"`

	Category     *Category            `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Translations []ProductTranslation `json:"translations,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images       []ProductImage       `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductTranslation struct {
	BaseModel
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_translations_product_lang"`
	LanguageCode string    `json:"language_code" gorm:"size:10;not null;uniqueIndex:idx_translations_product_lang"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Description  string    `json:"description" gorm:"type:text"`
}

type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:512;not null"`
}
