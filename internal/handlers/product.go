// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/atelierhub/marketplace-backend/internal/i18n"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/services"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, product)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, product)
}

// ListProducts serves the public catalog. Unauthenticated callers only see
// approved products; a status filter is honored for admins.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	categoryID, ok := parseUUIDQuery(c, "category_id")
	if !ok {
		return
	}
	ownerID, ok := parseUUIDQuery(c, "owner_id")
	if !ok {
		return
	}

	params := services.ListProductsParams{
		Pagination: utils.GetPaginationParams(c),
		CategoryID: categoryID,
		OwnerType:  c.Query("owner_type"),
		OwnerID:    ownerID,
		SortBy:     c.Query("sort_by"),
		Search:     c.Query("search"),
		Status:     string(models.ProductStatusApproved),
	}

	roleStr, _ := utils.GetUserRoleFromContext(c)
	if roleStr == string(models.RolePlatformAdmin) {
		params.Status = c.Query("status")
	}

	products, info, err := h.productService.ListProducts(params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, products, info)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyProductDeleted)})
}

func (h *ProductHandler) ApproveProduct(c *gin.Context) {
	h.setStatus(c, models.ProductStatusApproved, i18n.KeyProductApproved)
}

func (h *ProductHandler) RejectProduct(c *gin.Context) {
	h.setStatus(c, models.ProductStatusRejected, i18n.KeyProductRejected)
}

func (h *ProductHandler) setStatus(c *gin.Context, status models.ProductStatus, msgKey string) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.SetStatus(id, status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, msgKey),
		"product": product,
	})
}

func (h *ProductHandler) AddTranslation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.AddTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	translation, err := h.productService.AddTranslation(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, translation)
}

func (h *ProductHandler) DeleteTranslation(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	translationID, ok := parseUUIDParam(c, "translationId")
	if !ok {
		return
	}

	if err := h.productService.DeleteTranslation(productID, translationID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "translation deleted"})
}

// UploadImage accepts a multipart image, stores it, and attaches it to the
// product.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if h.storageService == nil {
		lang := utils.GetLangFromContext(c)
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "image file is required", nil)
		return
	}

	imageURL, err := h.storageService.UploadImage(file, "products")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	image, err := h.productService.AddImage(id, imageURL)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, image)
}

func (h *ProductHandler) DeleteImage(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseUUIDParam(c, "imageId")
	if !ok {
		return
	}

	if err := h.productService.DeleteImage(productID, imageID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "image deleted"})
}
