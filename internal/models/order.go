// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	BuyerID         uuid.UUID   `json:"buyer_id" gorm:"type:uuid;not null;index"`
	TotalAmount     float64     `json:"total_amount" gorm:"not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ShippingAddress string      `json:"shipping_address" gorm:"type:text;not null"`
	TrackingNumber  *string     `json:"tracking_number" gorm:"size:100"`

	Buyer User        `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem copies quantity and unit price at order time; the price is a
// snapshot, not a live reference to the product.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice float64   `json:"unit_price" gorm:"not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Payment struct {
	BaseModel
	OrderID              uuid.UUID     `json:"order_id" gorm:"type:uuid;not null;index"`
	PaymentMethod        string        `json:"payment_method" gorm:"size:50;not null"`
	Status               PaymentStatus `json:"status" gorm:"type:varchar(20);not null"`
	PaymentDate          time.Time     `json:"payment_date"`
	TransactionReference string        `json:"transaction_reference" gorm:"size:255"`

	Order Order `json:"order,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
