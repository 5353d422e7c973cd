package controllers

import (
	"net/http"
	"time"

	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboard DashboardAPI
}

func NewDashboardController(dashboard DashboardAPI) *DashboardController {
	return &DashboardController{dashboard: dashboard}
}

func (h *DashboardController) GetDashboard(c *gin.Context) {
	utils.LogInfo("GetDashboard called")
	client, ok := requireClient(c)
	if !ok {
		return
	}

	dash, err := h.dashboard.Summary(c.Request.Context(), client)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Dashboard retrieved successfully", dash)
}

func (h *DashboardController) GetFeaturedOffers(c *gin.Context) {
	utils.LogInfo("GetFeaturedOffers called")
	offers, err := h.dashboard.FeaturedOffers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Featured offers retrieved successfully", offers)
}

// Health reports that the process is serving requests
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.StandardResponse{
		Status:  "success",
		Message: utils.AppName + " is running",
		Data:    gin.H{"time": time.Now().UTC().Format(time.RFC3339), "version": utils.APIVersion},
	})
}
