// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/config"
	"github.com/atelierhub/marketplace-backend/internal/handlers"
	"github.com/atelierhub/marketplace-backend/internal/middleware"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/services"
)

// Initialize wires services and handlers onto the HTTP surface.
func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	associationService := services.NewAssociationService(db)
	artisanService := services.NewArtisanService(db)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db, cfg)
	favoriteService := services.NewFavoriteService(db)
	reviewService := services.NewReviewService(db)
	adminService := services.NewAdminService(db)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Warn("S3 storage unavailable, image uploads disabled")
	}

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	associationHandler := handlers.NewAssociationHandler(associationService)
	artisanHandler := handlers.NewArtisanHandler(artisanService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	adminHandler := handlers.NewAdminHandler(adminService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}

	users := v1.Group("/users")
	users.Use(middleware.AuthRequired())
	{
		users.GET("", middleware.AdminRequired(), userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
		users.PATCH("/:id", userHandler.UpdateUser)
		users.POST("/password", userHandler.ChangePassword)
		users.POST("/:id/deactivate", middleware.AdminRequired(), userHandler.DeactivateUser)
		users.POST("/:id/activate", middleware.AdminRequired(), userHandler.ActivateUser)
	}

	associations := v1.Group("/associations")
	{
		associations.GET("", associationHandler.ListAssociations)
		associations.GET("/:id", associationHandler.GetAssociation)
		associations.POST("", middleware.AuthRequired(), middleware.AdminRequired(), associationHandler.CreateAssociation)
		associations.PATCH("/:id", middleware.AuthRequired(), associationHandler.UpdateAssociation)
		associations.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), associationHandler.DeleteAssociation)
	}

	artisans := v1.Group("/artisans")
	{
		artisans.GET("", artisanHandler.ListArtisans)
		artisans.GET("/:id", artisanHandler.GetArtisan)
		artisans.POST("", middleware.AuthRequired(), artisanHandler.CreateArtisan)
		artisans.PATCH("/:id", middleware.AuthRequired(), artisanHandler.UpdateArtisan)
		artisans.POST("/leave-association", middleware.AuthRequired(), middleware.RoleRequired(models.RoleArtisan), artisanHandler.LeaveAssociation)
		artisans.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), artisanHandler.DeleteArtisan)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.GET("/:id", categoryHandler.GetCategory)
		categories.POST("", middleware.AuthRequired(), middleware.AdminRequired(), categoryHandler.CreateCategory)
		categories.PATCH("/:id", middleware.AuthRequired(), middleware.AdminRequired(), categoryHandler.UpdateCategory)
		categories.DELETE("/:id", middleware.AuthRequired(), middleware.AdminRequired(), categoryHandler.DeleteCategory)
	}

	products := v1.Group("/products")
	{
		products.GET("", middleware.OptionalAuth(), productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.ListProductReviews)
		products.GET("/:id/reviews/summary", reviewHandler.ProductSummary)

		authed := products.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.POST("", productHandler.CreateProduct)
			authed.PATCH("/:id", productHandler.UpdateProduct)
			authed.DELETE("/:id", productHandler.DeleteProduct)
			authed.POST("/:id/approve", middleware.AdminRequired(), productHandler.ApproveProduct)
			authed.POST("/:id/reject", middleware.AdminRequired(), productHandler.RejectProduct)
			authed.POST("/:id/translations", productHandler.AddTranslation)
			authed.DELETE("/:id/translations/:translationId", productHandler.DeleteTranslation)
			authed.POST("/:id/images", middleware.UploadRateLimit(), productHandler.UploadImage)
			authed.DELETE("/:id/images/:imageId", productHandler.DeleteImage)
		}
	}

	cart := v1.Group("/cart")
	cart.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleBuyer))
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/items", cartHandler.ListItems)
		cart.POST("/items", cartHandler.AddItem)
		cart.PATCH("/items/:itemId", cartHandler.UpdateItem)
		cart.DELETE("/items/:itemId", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
	}

	orders := v1.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("", middleware.RoleRequired(models.RoleBuyer), orderHandler.CreateOrder)
		orders.POST("/checkout", middleware.RoleRequired(models.RoleBuyer), orderHandler.Checkout)
		orders.PATCH("/:id/status", middleware.AdminRequired(), orderHandler.UpdateStatus)
		orders.POST("/:id/cancel", middleware.RoleRequired(models.RoleBuyer), orderHandler.CancelOrder)
		orders.POST("/:id/payments/intent", middleware.RoleRequired(models.RoleBuyer), paymentHandler.CreateIntent)
		orders.POST("/:id/payments", middleware.RoleRequired(models.RoleBuyer), paymentHandler.RecordPayment)
		orders.GET("/:id/payments", paymentHandler.ListOrderPayments)
	}

	payments := v1.Group("/payments")
	payments.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		payments.GET("/:id", paymentHandler.GetPayment)
	}

	favorites := v1.Group("/favorites")
	favorites.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleBuyer))
	{
		favorites.GET("", favoriteHandler.ListFavorites)
		favorites.PUT("/:productId", favoriteHandler.AddFavorite)
		favorites.DELETE("/:productId", favoriteHandler.RemoveFavorite)
	}

	reviews := v1.Group("/reviews")
	reviews.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleBuyer))
	{
		reviews.POST("", reviewHandler.CreateReview)
		reviews.DELETE("/:id", reviewHandler.DeleteReview)
	}

	admin := v1.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/products/pending", adminHandler.PendingProducts)
		admin.GET("/audit-logs", adminHandler.AuditLogs)
	}

	return r
}
