package routes

import (
	"github.com/gin-gonic/gin"
)

// initProfileRoutes sets up the routes for client profile management
func initProfileRoutes(router *gin.RouterGroup, h Handlers) {
	profile := router.Group("/users")
	{
		profile.GET("/profile", h.Users.GetProfile)

		// Tax id and markup percentages only
		profile.PUT("/profile", h.Users.UpdateProfile)

		profile.GET("/debt", h.Users.GetDebt)
	}
}
