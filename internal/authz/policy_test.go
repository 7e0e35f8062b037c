// internal/authz/policy_test.go
package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name     string
		caller   models.UserRole
		required models.UserRole
		want     bool
	}{
		{"exact match", models.RoleBuyer, models.RoleBuyer, true},
		{"mismatch", models.RoleBuyer, models.RoleArtisan, false},
		{"platform admin passes buyer gate", models.RolePlatformAdmin, models.RoleBuyer, true},
		{"platform admin passes artisan gate", models.RolePlatformAdmin, models.RoleArtisan, true},
		{"platform admin passes admin gate", models.RolePlatformAdmin, models.RolePlatformAdmin, true},
		{"association admin is not platform admin", models.RoleAssociationAdmin, models.RolePlatformAdmin, false},
		{"empty role denied", models.UserRole(""), models.RoleBuyer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.caller, tt.required))
		})
	}
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(models.RoleArtisan, models.RoleArtisan))

	err := Require(models.RoleBuyer, models.RoleArtisan)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPermissionDenied))
}
