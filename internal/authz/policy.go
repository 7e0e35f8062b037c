// internal/authz/policy.go

// Package authz is the single place role gating happens. Middleware and
// services both call Require instead of comparing role strings inline.
package authz

import (
	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
)

// Allow reports whether callerRole satisfies required. Platform admins pass
// every gate.
func Allow(callerRole, required models.UserRole) bool {
	if callerRole == models.RolePlatformAdmin {
		return true
	}
	return callerRole == required
}

func Require(callerRole, required models.UserRole) error {
	if !Allow(callerRole, required) {
		return apperrors.PermissionDenied("operation requires role %s", required)
	}
	return nil
}
