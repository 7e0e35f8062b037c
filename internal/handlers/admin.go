// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/atelierhub/marketplace-backend/internal/services"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

func (h *AdminHandler) PendingProducts(c *gin.Context) {
	products, info, err := h.adminService.ListPendingProducts(utils.GetPaginationParams(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, products, info)
}

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	userID, ok := parseUUIDQuery(c, "user_id")
	if !ok {
		return
	}

	params := services.ListAuditLogsParams{
		Pagination:   utils.GetPaginationParams(c),
		UserID:       userID,
		ResourceType: c.Query("resource_type"),
		Action:       c.Query("action"),
	}

	logs, info, err := h.adminService.ListAuditLogs(params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, logs, info)
}
