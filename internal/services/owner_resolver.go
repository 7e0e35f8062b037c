// internal/services/owner_resolver.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
)

// OwnerResolver resolves a product's polymorphic (owner_type, owner_id) pair
// to a display name. Resolution is read-side only: an unknown type or a
// dangling reference yields an absent name, not an error, while any other
// storage failure propagates. Results are memoized for the resolver's
// lifetime, so one resolver should serve at most one request.
type OwnerResolver struct {
	db   *gorm.DB
	memo map[string]*string
}

func NewOwnerResolver(db *gorm.DB) *OwnerResolver {
	return &OwnerResolver{
		db:   db,
		memo: make(map[string]*string),
	}
}

// Resolve returns the owner's display name, or nil when the owner cannot be
// resolved. For artisans the name comes from the linked user account; for
// associations it is the association name.
func (r *OwnerResolver) Resolve(ownerType models.OwnerType, ownerID uuid.UUID) (*string, error) {
	key := fmt.Sprintf("%s:%s", ownerType, ownerID)
	if name, ok := r.memo[key]; ok {
		return name, nil
	}

	name, err := r.lookup(ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	r.memo[key] = name
	return name, nil
}

// Annotate fills the Owner field on each product in place.
func (r *OwnerResolver) Annotate(products []models.Product) error {
	for i := range products {
		name, err := r.Resolve(products[i].OwnerType, products[i].OwnerID)
		if err != nil {
			return err
		}
		products[i].Owner = name
	}
	return nil
}

func (r *OwnerResolver) lookup(ownerType models.OwnerType, ownerID uuid.UUID) (*string, error) {
	switch ownerType {
	case models.OwnerTypeArtisan:
		var artisan models.Artisan
		err := r.db.Preload("User").First(&artisan, "user_id = ?", ownerID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, apperrors.Internal(err, "owner lookup failed")
		}
		return &artisan.User.Name, nil

	case models.OwnerTypeAssociation:
		var association models.Association
		err := r.db.First(&association, "id = ?", ownerID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, apperrors.Internal(err, "owner lookup failed")
		}
		return &association.Name, nil

	default:
		return nil, nil
	}
}
