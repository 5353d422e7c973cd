package routes

import (
	"github.com/Govind-619/OrderSphere/controllers"
	"github.com/Govind-619/OrderSphere/middleware"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router serves.
type Handlers struct {
	Auth        *controllers.AuthController
	Users       *controllers.UserController
	Products    *controllers.ProductController
	Offers      *controllers.OfferController
	AdminOffers *controllers.AdminOfferController
	Drafts      *controllers.DraftController
	Orders      *controllers.OrderController
	Payments    *controllers.PaymentController
	Dashboard   *controllers.DashboardController

	Authenticator middleware.Authenticator
	Metrics       *utils.Metrics
	FrontendURL   string
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(h Handlers) *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.MetricsMiddleware(h.Metrics))
	router.Use(utils.CORSMiddleware(h.FrontendURL))
	router.Use(utils.SecurityHeadersMiddleware())

	if h.Metrics != nil {
		router.GET("/metrics", h.Metrics.Handler())
	}

	api := router.Group("/api")
	{
		api.GET("/health", controllers.Health)

		// Initialize client routes
		initUserRoutes(api, h)

		// Initialize admin routes
		initAdminRoutes(api, h)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "Route not found")
	})

	return router
}
