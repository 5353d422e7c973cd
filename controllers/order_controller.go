package controllers

import (
	"fmt"
	"net/http"

	"github.com/Govind-619/OrderSphere/services"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orders OrderAPI
}

func NewOrderController(orders OrderAPI) *OrderController {
	return &OrderController{orders: orders}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders returns the last year of orders of the client's accounts
func (h *OrderController) ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")
	client, ok := requireClient(c)
	if !ok {
		return
	}

	orders, err := h.orders.History(c.Request.Context(), client)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.LogDebug("Found %d orders for client %d", len(orders), client.ID)
	utils.Success(c, "Orders retrieved successfully", gin.H{"orders": orders, "total": len(orders)})
}

func (h *OrderController) GetOrder(c *gin.Context) {
	utils.LogInfo("GetOrder called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), client, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Order retrieved successfully", order)
}

func (h *OrderController) UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), client, id, req.Status)
	if err != nil {
		utils.LogError("Failed to update order %d: %v", id, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Order status updated successfully", order)
}

// DownloadInvoice renders the order as a PDF
func (h *OrderController) DownloadInvoice(c *gin.Context) {
	utils.LogInfo("DownloadInvoice called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.Find(c.Request.Context(), client, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	pdf, err := services.RenderInvoice(*order, client)
	if err != nil {
		utils.LogError("Failed to render invoice for order %d: %v", id, err)
		utils.InternalServerError(c, "Failed to generate invoice", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=order_%d.pdf", order.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
	utils.LogInfo("Invoice generated for order %d", order.ID)
}
