package controllers

import (
	"github.com/Govind-619/OrderSphere/middleware"
	"github.com/Govind-619/OrderSphere/services"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth AuthAPI
}

func NewAuthController(auth AuthAPI) *AuthController {
	return &AuthController{auth: auth}
}

// Login authenticates a client by username and password
func (h *AuthController) Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req services.LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.RespondError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		utils.LogError("Login failed for %s: %v", req.Username, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Login successful", res)
}

// AdminLogin authenticates a back office operator
func (h *AuthController) AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req services.AdminLoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.LogError("Invalid admin login request: %v", err)
		utils.RespondError(c, err)
		return
	}

	res, err := h.auth.AdminLogin(c.Request.Context(), req)
	if err != nil {
		utils.LogError("Admin login failed for %s: %v", req.Email, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Login successful", res)
}

func (h *AuthController) ChangePassword(c *gin.Context) {
	utils.LogInfo("ChangePassword called")
	client, ok := requireClient(c)
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), client, req); err != nil {
		utils.LogError("Change password failed for client %d: %v", client.ID, err)
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Password updated successfully", nil)
}

// Logout revokes the bearer token used for the request
func (h *AuthController) Logout(c *gin.Context) {
	utils.LogInfo("Logout called")
	token, claims, ok := middleware.CurrentToken(c)
	if !ok {
		utils.Unauthorized(c, "Unauthorized")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), token, claims); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Logged out successfully", nil)
}
