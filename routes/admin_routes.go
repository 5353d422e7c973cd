package routes

import (
	"github.com/Govind-619/OrderSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup, h Handlers) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", h.Auth.AdminLogin)

		// Protected admin routes
		protected := admin.Group("")
		protected.Use(middleware.AdminAuthMiddleware(h.Authenticator))
		{
			protected.POST("/logout", h.Auth.Logout)

			// Offer management
			protected.GET("/offers", h.AdminOffers.ListOffers)
			protected.POST("/offers", h.AdminOffers.CreateOffer)
			protected.GET("/offers/:id", h.AdminOffers.GetOffer)
			protected.PUT("/offers/:id", h.AdminOffers.UpdateOffer)
			protected.DELETE("/offers/:id", h.AdminOffers.DeactivateOffer)

			// Submitted draft orders
			protected.GET("/drafts/export", h.Drafts.ExportSubmittedDrafts)
		}
	}
}
