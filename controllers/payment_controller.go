package controllers

import (
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	payments PaymentAPI
}

func NewPaymentController(payments PaymentAPI) *PaymentController {
	return &PaymentController{payments: payments}
}

// ListPayments returns the client's latest payments
func (h *PaymentController) ListPayments(c *gin.Context) {
	utils.LogInfo("ListPayments called")
	client, ok := requireClient(c)
	if !ok {
		return
	}

	payments, err := h.payments.Recent(c.Request.Context(), client)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Payments retrieved successfully", payments)
}
