// Package controllers holds the gin handlers. Each handler struct depends on
// the narrow service interface it calls, implemented by package services.
package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/Govind-619/OrderSphere/middleware"
	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/repository"
	"github.com/Govind-619/OrderSphere/services"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

type AuthAPI interface {
	Login(ctx context.Context, req services.LoginRequest) (*services.LoginResult, error)
	AdminLogin(ctx context.Context, req services.AdminLoginRequest) (*services.LoginResult, error)
	ChangePassword(ctx context.Context, client models.Client, req services.ChangePasswordRequest) error
	Logout(ctx context.Context, token string, claims utils.TokenClaims) error
}

type ClientAPI interface {
	Profile(client models.Client) services.ClientSummary
	UpdateProfile(ctx context.Context, client models.Client, in services.ProfileInput) (*services.ClientSummary, error)
	Debt(client models.Client) services.DebtView
}

type CatalogAPI interface {
	ListProducts(ctx context.Context, client models.Client) ([]services.ProductView, error)
	Search(ctx context.Context, client models.Client, f repository.ProductFilter) ([]services.ProductView, error)
	GetProduct(ctx context.Context, client models.Client, id uint) (*services.ProductView, error)
	Brands(ctx context.Context) ([]string, error)
	Packagings(ctx context.Context) ([]string, error)
}

type OfferAPI interface {
	List(ctx context.Context, offset, limit int) ([]services.OfferView, int64, error)
	Get(ctx context.Context, id uint) (*services.OfferView, error)
	CurrentMonth(ctx context.Context) ([]services.OfferView, error)
	Featured(ctx context.Context) ([]services.OfferView, error)
	ByProduct(ctx context.Context, productID uint) ([]services.OfferView, error)
	Quote(ctx context.Context, req services.QuoteRequest) (*services.QuoteResult, error)
}

type OfferAdminAPI interface {
	AdminList(ctx context.Context, offset, limit int) ([]services.OfferView, int64, error)
	AdminGet(ctx context.Context, id uint) (*services.OfferView, error)
	Create(ctx context.Context, in services.OfferInput) (*services.OfferView, error)
	Update(ctx context.Context, id uint, in services.OfferInput) (*services.OfferView, error)
	Deactivate(ctx context.Context, id uint) error
}

type DraftAPI interface {
	Create(ctx context.Context, client models.Client, in services.DraftInput) (*services.DraftView, error)
	Get(ctx context.Context, client models.Client, id uint) (*services.DraftView, error)
	List(ctx context.Context, client models.Client, status string, offset, limit int) ([]services.DraftView, int64, error)
	Update(ctx context.Context, client models.Client, id uint, in services.DraftInput) (*services.DraftView, error)
	Delete(ctx context.Context, client models.Client, id uint) error
	Submit(ctx context.Context, client models.Client, id uint) (*services.DraftView, error)
	SubmittedBetween(ctx context.Context, from, to time.Time) ([]models.DraftOrder, error)
}

type OrderAPI interface {
	History(ctx context.Context, client models.Client) ([]services.OrderView, error)
	Get(ctx context.Context, client models.Client, id uint) (*services.OrderView, error)
	Find(ctx context.Context, client models.Client, id uint) (*models.Order, error)
	UpdateStatus(ctx context.Context, client models.Client, id uint, status string) (*services.OrderView, error)
}

type PaymentAPI interface {
	Recent(ctx context.Context, client models.Client) ([]services.PaymentView, error)
}

type DashboardAPI interface {
	Summary(ctx context.Context, client models.Client) (*services.Dashboard, error)
	FeaturedOffers(ctx context.Context) ([]services.OfferView, error)
}

// requireClient returns the authenticated client or answers 401.
func requireClient(c *gin.Context) (models.Client, bool) {
	client, ok := middleware.CurrentClient(c)
	if !ok {
		utils.LogError("Client not found in context")
		utils.Unauthorized(c, "Unauthorized")
		return models.Client{}, false
	}
	return client, true
}

// paramID parses a positive numeric path parameter or answers 400.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.LogError("Invalid %s: %q", name, c.Param(name))
		utils.BadRequest(c, "Invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}
