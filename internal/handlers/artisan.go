// internal/handlers/artisan.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/atelierhub/marketplace-backend/internal/authz"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/services"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type ArtisanHandler struct {
	artisanService *services.ArtisanService
}

func NewArtisanHandler(artisanService *services.ArtisanService) *ArtisanHandler {
	return &ArtisanHandler{artisanService: artisanService}
}

func (h *ArtisanHandler) CreateArtisan(c *gin.Context) {
	var req services.CreateArtisanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	artisan, err := h.artisanService.CreateArtisan(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, artisan)
}

func (h *ArtisanHandler) GetArtisan(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	artisan, err := h.artisanService.GetArtisan(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, artisan)
}

func (h *ArtisanHandler) ListArtisans(c *gin.Context) {
	associationID, ok := parseUUIDQuery(c, "association_id")
	if !ok {
		return
	}

	params := services.ListArtisansParams{
		Pagination:    utils.GetPaginationParams(c),
		AssociationID: associationID,
	}

	artisans, info, err := h.artisanService.ListArtisans(params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, artisans, info)
}

// UpdateArtisan lets artisans edit their own profile; platform admins may
// edit anyone's.
func (h *ArtisanHandler) UpdateArtisan(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	roleStr, _ := utils.GetUserRoleFromContext(c)
	if callerID != id && !authz.Allow(models.UserRole(roleStr), models.RolePlatformAdmin) {
		utils.ForbiddenResponse(c, "")
		return
	}

	var req services.UpdateArtisanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	artisan, err := h.artisanService.UpdateArtisan(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, artisan)
}

func (h *ArtisanHandler) LeaveAssociation(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	if err := h.artisanService.LeaveAssociation(callerID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "left association"})
}

func (h *ArtisanHandler) DeleteArtisan(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.artisanService.DeleteArtisan(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "artisan profile deleted"})
}
