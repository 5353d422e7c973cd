package routes

import (
	"github.com/Govind-619/OrderSphere/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all client-facing routes
func initUserRoutes(router *gin.RouterGroup, h Handlers) {
	// Public routes (no authentication required)
	router.POST("/auth/login", h.Auth.Login)

	// Protected routes
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(h.Authenticator))
	{
		protected.PUT("/auth/change-password", h.Auth.ChangePassword)
		protected.POST("/auth/logout", h.Auth.Logout)

		initProfileRoutes(protected, h)

		products := protected.Group("/products")
		{
			products.GET("", h.Products.ListProducts)
			products.GET("/search", h.Products.SearchProducts)
			products.GET("/brands", h.Products.ListBrands)
			products.GET("/packagings", h.Products.ListPackagings)
			products.GET("/:id", h.Products.GetProduct)
		}

		offers := protected.Group("/offers")
		{
			offers.GET("", h.Offers.ListOffers)
			offers.GET("/current-month", h.Offers.CurrentMonthOffers)
			offers.GET("/featured", h.Offers.FeaturedOffers)
			offers.GET("/by-product/:product_id", h.Offers.OffersByProduct)
			offers.GET("/:id", h.Offers.GetOffer)
			offers.POST("/quote", h.Offers.QuoteOffer)
		}

		drafts := protected.Group("/drafts")
		{
			drafts.POST("", h.Drafts.CreateDraft)
			drafts.GET("", h.Drafts.ListDrafts)
			drafts.GET("/:id", h.Drafts.GetDraft)
			drafts.PUT("/:id", h.Drafts.UpdateDraft)
			drafts.PUT("/:id/submit", h.Drafts.SubmitDraft)
			drafts.DELETE("/:id", h.Drafts.DeleteDraft)
		}

		orders := protected.Group("/orders")
		{
			orders.GET("", h.Orders.ListOrders)
			orders.GET("/:id", h.Orders.GetOrder)
			orders.GET("/:id/invoice", h.Orders.DownloadInvoice)
			orders.PUT("/:id", h.Orders.UpdateOrderStatus)
		}

		protected.GET("/payments", h.Payments.ListPayments)

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("", h.Dashboard.GetDashboard)
			dashboard.GET("/featured-offers", h.Dashboard.GetFeaturedOffers)
		}
	}
}
