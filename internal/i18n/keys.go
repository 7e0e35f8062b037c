// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess           = "success"
	KeyError             = "error"
	KeyValidationInvalid = "validation.invalid"
	KeyAccessDenied      = "access.denied"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthEmailExists        = "auth.email_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserNotFound = "user.not_found"
	KeyUserUpdated  = "user.updated"
	KeyUserDeleted  = "user.deleted"

	// Associations / artisans
	KeyAssociationCreated  = "association.created"
	KeyAssociationUpdated  = "association.updated"
	KeyAssociationDeleted  = "association.deleted"
	KeyAssociationNotFound = "association.not_found"
	KeyArtisanCreated      = "artisan.created"
	KeyArtisanUpdated      = "artisan.updated"
	KeyArtisanDeleted      = "artisan.deleted"
	KeyArtisanNotFound     = "artisan.not_found"

	// Catalog
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"
	KeyProductCreated   = "product.created"
	KeyProductUpdated   = "product.updated"
	KeyProductDeleted   = "product.deleted"
	KeyProductNotFound  = "product.not_found"
	KeyProductApproved  = "product.approved"
	KeyProductRejected  = "product.rejected"

	// Cart
	KeyCartItemAdded   = "cart.item_added"
	KeyCartItemUpdated = "cart.item_updated"
	KeyCartItemRemoved = "cart.item_removed"

	// Orders / payments
	KeyOrderCreated       = "order.created"
	KeyOrderStatusUpdated = "order.status_updated"
	KeyOrderNotFound      = "order.not_found"
	KeyPaymentRecorded    = "payment.recorded"

	// Favorites / reviews
	KeyFavoriteAdded   = "favorite.added"
	KeyFavoriteRemoved = "favorite.removed"
	KeyReviewAdded     = "review.added"
	KeyReviewDeleted   = "review.deleted"

	// Uploads
	KeyFileUploadFailed = "file.upload_failed"
)
