package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Govind-619/OrderSphere/config"
	"github.com/Govind-619/OrderSphere/controllers"
	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/repository"
	"github.com/Govind-619/OrderSphere/routes"
	"github.com/Govind-619/OrderSphere/services"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

const (
	shutdownTimeout    = 10 * time.Second
	tokenPurgeInterval = time.Hour
	serverReadTimeout  = 15 * time.Second
	serverWriteTimeout = 30 * time.Second
)

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(cfg.Log.Dir, cfg.Log.Level, !cfg.Server.IsProduction()); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer utils.SyncLogger()

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := cfg.Location()
	if err != nil {
		utils.LogError("Invalid timezone: %v", err)
		log.Fatal("Invalid timezone:", err)
	}
	clock := services.NewClock(loc)

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Failed to initialize database: %v", err)
		log.Fatal("Failed to initialize database:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	products := repository.NewProductRepository(db)
	offers := repository.NewOfferRepository(db)
	drafts := repository.NewDraftRepository(db)
	orders := repository.NewOrderRepository(db)
	payments := repository.NewPaymentRepository(db)
	accounts := repository.NewAccountRepository(db)

	// Create sample admin
	if err := seedAdmin(ctx, accounts, cfg); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	metrics := utils.NewMetrics()
	mailer := utils.NewMailer(utils.EmailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if !mailer.Enabled() || cfg.OrderDeskEmail == "" {
		utils.LogInfo("Submission notices disabled")
	}

	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
	authService := services.NewAuthService(accounts, tokens, clock)
	offerService := services.NewOfferService(offers, products, clock, metrics)
	draftService := services.NewDraftService(drafts, products, offers, clock, metrics,
		services.NewMailNotifier(mailer, cfg.OrderDeskEmail))

	// Set up router
	router := routes.SetupRouter(routes.Handlers{
		Auth:          controllers.NewAuthController(authService),
		Users:         controllers.NewUserController(services.NewClientService(accounts, clock)),
		Products:      controllers.NewProductController(services.NewCatalogService(products)),
		Offers:        controllers.NewOfferController(offerService),
		AdminOffers:   controllers.NewAdminOfferController(offerService),
		Drafts:        controllers.NewDraftController(draftService, clock),
		Orders:        controllers.NewOrderController(services.NewOrderService(orders, clock)),
		Payments:      controllers.NewPaymentController(services.NewPaymentService(payments)),
		Dashboard:     controllers.NewDashboardController(services.NewDashboardService(drafts, orders, offerService, clock)),
		Authenticator: authService,
		Metrics:       metrics,
		FrontendURL:   cfg.Server.FrontendURL,
	})

	go purgeRevokedTokens(ctx, authService)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	go func() {
		utils.LogInfo("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError("Error starting server: %v", err)
			log.Fatal("Error starting server:", err)
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError("Server shutdown failed: %v", err)
	}
}

func seedAdmin(ctx context.Context, accounts *repository.AccountRepository, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	created, err := accounts.EnsureAdmin(ctx, &models.Admin{
		Email:     strings.ToLower(cfg.AdminEmail),
		Password:  hash,
		FirstName: "Order",
		LastName:  "Desk",
		IsActive:  true,
	})
	if err != nil {
		return err
	}
	if created {
		utils.LogInfo("Sample admin %s created", cfg.AdminEmail)
	}
	return nil
}

func purgeRevokedTokens(ctx context.Context, auth *services.AuthService) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.PurgeRevoked(ctx)
			if err != nil {
				utils.LogError("Failed to purge revoked tokens: %v", err)
				continue
			}
			utils.LogDebug("Purged %d revoked tokens", n)
		}
	}
}
