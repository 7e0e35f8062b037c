// internal/services/product_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Title         string     `json:"title" validate:"required,max=255"`
	Description   string     `json:"description"`
	Price         float64    `json:"price" validate:"required,gt=0"`
	StockQuantity int        `json:"stock_quantity" validate:"gte=0"`
	OwnerType     string     `json:"owner_type" validate:"required,owner_type"`
	OwnerID       uuid.UUID  `json:"owner_id" validate:"required"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
}

// UpdateProductRequest uses pointers so absent fields stay untouched while
// present fields overwrite, zero values included.
type UpdateProductRequest struct {
	Title         *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Description   *string    `json:"description,omitempty"`
	Price         *float64   `json:"price,omitempty" validate:"omitempty,gt=0"`
	StockQuantity *int       `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
}

type ListProductsParams struct {
	Pagination utils.PaginationParams
	CategoryID *uuid.UUID
	OwnerType  string
	OwnerID    *uuid.UUID
	Status     string
	SortBy     string `validate:"sort_by"`
	Search     string
}

type AddTranslationRequest struct {
	LanguageCode string `json:"language_code" validate:"required,max=10"`
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description"`
}

type AddImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url,max=512"`
}

var productSortColumns = map[string]string{
	"price_asc":  "price ASC, id ASC",
	"price_desc": "price DESC, id ASC",
	"newest":     "created_at DESC, id ASC",
	"oldest":     "created_at ASC, id ASC",
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	ownerType := models.OwnerType(req.OwnerType)
	if err := s.checkOwnerExists(ownerType, req.OwnerID); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
			return nil, apperrors.Internal(err, "database error")
		}
		if count == 0 {
			return nil, apperrors.NotFound("category not found")
		}
	}

	product := &models.Product{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		OwnerType:     ownerType,
		OwnerID:       req.OwnerID,
		CategoryID:    req.CategoryID,
		Status:        models.ProductStatusPending,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to create product")
	}

	owner, err := NewOwnerResolver(s.db).Resolve(product.OwnerType, product.OwnerID)
	if err != nil {
		return nil, err
	}
	product.Owner = owner
	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Translations").Preload("Images").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}

	owner, err := NewOwnerResolver(s.db).Resolve(product.OwnerType, product.OwnerID)
	if err != nil {
		return nil, err
	}
	product.Owner = owner
	return &product, nil
}

func (s *ProductService) ListProducts(params ListProductsParams) ([]models.Product, utils.PageInfo, error) {
	if err := utils.ValidateStruct(&params); err != nil {
		return nil, utils.PageInfo{}, apperrors.InvalidInput("validation failed: %v", err)
	}

	query := s.db.Model(&models.Product{}).Preload("Category").Preload("Images")

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.OwnerType != "" {
		ownerType := models.OwnerType(params.OwnerType)
		if !ownerType.Valid() {
			return nil, utils.PageInfo{}, apperrors.InvalidInput("invalid owner_type: %s", params.OwnerType)
		}
		query = query.Where("owner_type = ?", ownerType)
		if params.OwnerID != nil {
			query = query.Where("owner_id = ?", *params.OwnerID)
		}
	}
	if params.Status != "" {
		status := models.ProductStatus(params.Status)
		if !status.Valid() {
			return nil, utils.PageInfo{}, apperrors.InvalidInput("invalid status: %s", params.Status)
		}
		query = query.Where("status = ?", status)
	}
	if params.Search != "" {
		query = query.Where("title LIKE ?", "%"+params.Search+"%")
	}

	order, ok := productSortColumns[params.SortBy]
	if !ok {
		order = productSortColumns["newest"]
	}
	query = query.Order(order)

	var products []models.Product
	info, err := utils.Paginate(query, params.Pagination, &products)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}

	if err := NewOwnerResolver(s.db).Annotate(products); err != nil {
		return nil, utils.PageInfo{}, err
	}
	return products, info, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.CategoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil {
			return nil, apperrors.Internal(err, "database error")
		}
		if count == 0 {
			return nil, apperrors.NotFound("category not found")
		}
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, apperrors.Internal(err, "failed to update product")
		}
	}

	return s.GetProduct(id)
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	result := s.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("product not found")
	}
	return nil
}

// SetStatus moves a product to approved or rejected. Pending is the initial
// state only and cannot be set through the API.
func (s *ProductService) SetStatus(id uuid.UUID, status models.ProductStatus) (*models.Product, error) {
	if status != models.ProductStatusApproved && status != models.ProductStatusRejected {
		return nil, apperrors.InvalidInput("invalid status: %s", status)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Internal(err, "database error")
	}

	if err := s.db.Model(&product).Update("status", status).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to update product status")
	}

	return s.GetProduct(id)
}

func (s *ProductService) AddTranslation(productID uuid.UUID, req *AddTranslationRequest) (*models.ProductTranslation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.InvalidInput("validation failed: %v", err)
	}

	if err := s.checkProductExists(productID); err != nil {
		return nil, err
	}

	translation := &models.ProductTranslation{
		ProductID:    productID,
		LanguageCode: req.LanguageCode,
		Title:        req.Title,
		Description:  req.Description,
	}

	if err := s.db.Create(translation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("translation for language %s already exists", req.LanguageCode)
		}
		return nil, apperrors.Internal(err, "failed to create translation")
	}

	return translation, nil
}

func (s *ProductService) DeleteTranslation(productID, translationID uuid.UUID) error {
	result := s.db.Delete(&models.ProductTranslation{}, "id = ? AND product_id = ?", translationID, productID)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete translation")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("translation not found")
	}
	return nil
}

func (s *ProductService) AddImage(productID uuid.UUID, imageURL string) (*models.ProductImage, error) {
	if err := s.checkProductExists(productID); err != nil {
		return nil, err
	}

	image := &models.ProductImage{
		ProductID: productID,
		ImageURL:  imageURL,
	}

	if err := s.db.Create(image).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to create product image")
	}

	return image, nil
}

func (s *ProductService) DeleteImage(productID, imageID uuid.UUID) error {
	result := s.db.Delete(&models.ProductImage{}, "id = ? AND product_id = ?", imageID, productID)
	if result.Error != nil {
		return apperrors.Internal(result.Error, "failed to delete image")
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("image not found")
	}
	return nil
}

func (s *ProductService) checkProductExists(id uuid.UUID) error {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Internal(err, "database error")
	}
	if count == 0 {
		return apperrors.NotFound("product not found")
	}
	return nil
}

// checkOwnerExists enforces the write-side half of the ownership contract:
// creating a product against a missing owner fails, even though reads later
// tolerate a dangling pair.
func (s *ProductService) checkOwnerExists(ownerType models.OwnerType, ownerID uuid.UUID) error {
	var count int64
	var err error

	switch ownerType {
	case models.OwnerTypeArtisan:
		err = s.db.Model(&models.Artisan{}).Where("user_id = ?", ownerID).Count(&count).Error
	case models.OwnerTypeAssociation:
		err = s.db.Model(&models.Association{}).Where("id = ?", ownerID).Count(&count).Error
	default:
		return apperrors.InvalidInput("invalid owner_type: %s", ownerType)
	}

	if err != nil {
		return apperrors.Internal(err, "database error")
	}
	if count == 0 {
		return apperrors.NotFound("%s %s not found", ownerType, ownerID)
	}
	return nil
}
