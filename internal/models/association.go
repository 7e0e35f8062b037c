// internal/models/association.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Association struct {
	BaseModel
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	LogoURL     *string   `json:"logo_url" gorm:"size:512"`
	Email       string    `json:"email" gorm:"size:255;not null"`
	Phone       string    `json:"phone" gorm:"size:20;not null"`
	AdminID     uuid.UUID `json:"admin_id" gorm:"type:uuid;not null;uniqueIndex"`

	Admin    User      `json:"admin,omitempty" gorm:"foreignKey:AdminID"`
	Artisans []Artisan `json:"artisans,omitempty" gorm:"foreignKey:AssociationID"`
}

// Artisan is keyed by the user it extends. AssociationID is nullable so
// independent artisans stay valid when their association is deleted.
type Artisan struct {
	UserID        uuid.UUID  `json:"user_id" gorm:"type:uuid;primary_key"`
	AssociationID *uuid.UUID `json:"association_id" gorm:"type:uuid;index"`
	Bio           string     `json:"bio" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	User        User         `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Association *Association `json:"association,omitempty" gorm:"foreignKey:AssociationID;constraint:OnDelete:SET NULL"`
}
