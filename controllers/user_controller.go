package controllers

import (
	"github.com/Govind-619/OrderSphere/services"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	clients ClientAPI
}

func NewUserController(clients ClientAPI) *UserController {
	return &UserController{clients: clients}
}

func (h *UserController) GetProfile(c *gin.Context) {
	utils.LogInfo("GetProfile called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	utils.Success(c, "Profile retrieved successfully", h.clients.Profile(client))
}

// UpdateProfile changes the tax id and markup percentages
func (h *UserController) UpdateProfile(c *gin.Context) {
	utils.LogInfo("UpdateProfile called")
	client, ok := requireClient(c)
	if !ok {
		return
	}

	var in services.ProfileInput
	if err := utils.BindJSON(c, &in); err != nil {
		utils.LogError("Invalid profile update for client %d: %v", client.ID, err)
		utils.RespondError(c, err)
		return
	}
	summary, err := h.clients.UpdateProfile(c.Request.Context(), client, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Profile updated successfully", summary)
}

func (h *UserController) GetDebt(c *gin.Context) {
	utils.LogInfo("GetDebt called")
	client, ok := requireClient(c)
	if !ok {
		return
	}
	utils.Success(c, "Debt retrieved successfully", h.clients.Debt(client))
}
