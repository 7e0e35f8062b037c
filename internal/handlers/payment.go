// internal/handlers/payment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/atelierhub/marketplace-backend/internal/i18n"
	"github.com/atelierhub/marketplace-backend/internal/models"
	"github.com/atelierhub/marketplace-backend/internal/services"
	"github.com/atelierhub/marketplace-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateIntent opens a Stripe payment intent for one of the buyer's pending
// orders.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	intent, err := h.paymentService.CreatePaymentIntent(orderID, buyerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, intent)
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req services.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body", nil)
		return
	}

	payment, err := h.paymentService.RecordPayment(orderID, buyerID, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentRecorded),
		"payment": payment,
	})
}

// ListOrderPayments returns the payment history for one of the caller's
// orders. Platform admins may inspect any order.
func (h *PaymentHandler) ListOrderPayments(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	roleStr, _ := utils.GetUserRoleFromContext(c)
	admin := roleStr == string(models.RolePlatformAdmin)

	payments, err := h.paymentService.ListOrderPayments(orderID, callerID, admin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, payments)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, payment)
}
