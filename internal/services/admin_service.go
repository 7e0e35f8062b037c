// internal/services/admin_service.go
package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalUsers        int64   `json:"total_users"`
	TotalArtisans     int64   `json:"total_artisans"`
	TotalAssociations int64   `json:"total_associations"`
	TotalProducts     int64   `json:"total_products"`
	PendingProducts   int64   `json:"pending_products"`
	TotalOrders       int64   `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type ListAuditLogsParams struct {
	Pagination   utils.PaginationParams
	UserID       *uuid.UUID
	ResourceType string
	Action       string
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		model interface{}
		dest  *int64
		where []interface{}
	}{
		{&models.User{}, &stats.TotalUsers, nil},
		{&models.Artisan{}, &stats.TotalArtisans, nil},
		{&models.Association{}, &stats.TotalAssociations, nil},
		{&models.Product{}, &stats.TotalProducts, nil},
		{&models.Product{}, &stats.PendingProducts, []interface{}{"status = ?", models.ProductStatusPending}},
		{&models.Order{}, &stats.TotalOrders, nil},
	}
	for _, c := range counts {
		query := s.db.Model(c.model)
		if c.where != nil {
			query = query.Where(c.where[0], c.where[1:]...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, apperrors.Internal(err, "failed to compute dashboard stats")
		}
	}

	err := s.db.Model(&models.Order{}).
		Where("status IN ?", []models.OrderStatus{
			models.OrderStatusPaid,
			models.OrderStatusShipped,
			models.OrderStatusDelivered,
		}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to compute revenue")
	}

	return stats, nil
}

// ListPendingProducts is the moderation queue, oldest submissions first.
func (s *AdminService) ListPendingProducts(params utils.PaginationParams) ([]models.Product, utils.PageInfo, error) {
	query := s.db.Model(&models.Product{}).
		Where("status = ?", models.ProductStatusPending).
		Order("created_at ASC, id ASC")

	var products []models.Product
	info, err := utils.Paginate(query, params, &products)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}

	if err := NewOwnerResolver(s.db).Annotate(products); err != nil {
		return nil, utils.PageInfo{}, err
	}
	return products, info, nil
}

func (s *AdminService) ListAuditLogs(params ListAuditLogsParams) ([]models.AuditLog, utils.PageInfo, error) {
	query := s.db.Model(&models.AuditLog{})

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.ResourceType != "" {
		query = query.Where("resource_type = ?", params.ResourceType)
	}
	if params.Action != "" {
		query = query.Where("action = ?", params.Action)
	}
	query = query.Order("created_at DESC, id ASC")

	var logs []models.AuditLog
	info, err := utils.Paginate(query, params.Pagination, &logs)
	if err != nil {
		return nil, utils.PageInfo{}, err
	}
	return logs, info, nil
}
