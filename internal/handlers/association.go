// internal/handlers/association.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atelierhub/marketplace-backend/internal/authz"
	"github.com/atelierhub/marketplace-backend/internal/i18n"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/services"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type AssociationHandler struct {
	associationService *services.AssociationService
}

func NewAssociationHandler(associationService *services.AssociationService) *AssociationHandler {
	return &AssociationHandler{associationService: associationService}
}

func (h *AssociationHandler) CreateAssociation(c *gin.Context) {
	var req services.CreateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	association, err := h.associationService.CreateAssociation(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, association)
}

func (h *AssociationHandler) GetAssociation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	association, err := h.associationService.GetAssociation(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, association)
}

func (h *AssociationHandler) ListAssociations(c *gin.Context) {
	associations, info, err := h.associationService.ListAssociations(
		utils.GetPaginationParams(c), c.Query("search"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, associations, info)
}

// UpdateAssociation is allowed for the association's own admin or a platform
// admin.
func (h *AssociationHandler) UpdateAssociation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if !h.canManage(c, id) {
		return
	}

	var req services.UpdateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	association, err := h.associationService.UpdateAssociation(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyAssociationUpdated),
		"association": association,
	})
}

func (h *AssociationHandler) DeleteAssociation(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.associationService.DeleteAssociation(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyAssociationDeleted)})
}

func (h *AssociationHandler) canManage(c *gin.Context, associationID uuid.UUID) bool {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return false
	}

	roleStr, _ := utils.GetUserRoleFromContext(c)
	if authz.Allow(models.UserRole(roleStr), models.RolePlatformAdmin) {
		return true
	}

	isAdmin, err := h.associationService.IsAssociationAdmin(associationID, callerID)
	if err != nil {
		utils.RespondError(c, err)
		return false
	}
	if !isAdmin {
		utils.ForbiddenResponse(c, "")
		return false
	}
	return true
}
