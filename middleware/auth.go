package middleware

import (
	"context"
	"strings"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves bearer tokens to accounts. *services.AuthService implements it.
type Authenticator interface {
	AuthenticateClient(ctx context.Context, token string) (*models.Client, *utils.TokenClaims, error)
	AuthenticateAdmin(ctx context.Context, token string) (*models.Admin, *utils.TokenClaims, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogDebug("AuthMiddleware called")

		token, ok := bearerToken(c)
		if !ok {
			utils.LogError("Missing Authorization header")
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		client, claims, err := auth.AuthenticateClient(c.Request.Context(), token)
		if err != nil {
			utils.LogError("Client authentication failed: %v", err)
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(utils.ContextClientKey, *client)
		c.Set(utils.ContextTokenKey, token)
		c.Set(utils.ContextClaimsKey, *claims)
		utils.LogDebug("Client %d authenticated successfully", client.ID)
		c.Next()
	}
}

func AdminAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.LogDebug("AdminAuthMiddleware called")

		token, ok := bearerToken(c)
		if !ok {
			utils.LogError("Missing Authorization header")
			utils.Unauthorized(c, "Admin authentication required")
			c.Abort()
			return
		}

		admin, claims, err := auth.AuthenticateAdmin(c.Request.Context(), token)
		if err != nil {
			utils.LogError("Admin authentication failed: %v", err)
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(utils.ContextAdminKey, *admin)
		c.Set(utils.ContextTokenKey, token)
		c.Set(utils.ContextClaimsKey, *claims)
		utils.LogDebug("Admin %d authenticated successfully", admin.ID)
		c.Next()
	}
}

// CurrentClient returns the client set by AuthMiddleware.
func CurrentClient(c *gin.Context) (models.Client, bool) {
	v, exists := c.Get(utils.ContextClientKey)
	if !exists {
		return models.Client{}, false
	}
	client, ok := v.(models.Client)
	return client, ok
}

// CurrentAdmin returns the admin set by AdminAuthMiddleware.
func CurrentAdmin(c *gin.Context) (models.Admin, bool) {
	v, exists := c.Get(utils.ContextAdminKey)
	if !exists {
		return models.Admin{}, false
	}
	admin, ok := v.(models.Admin)
	return admin, ok
}

// CurrentToken returns the bearer token of the request and its claims.
func CurrentToken(c *gin.Context) (string, utils.TokenClaims, bool) {
	token := c.GetString(utils.ContextTokenKey)
	v, exists := c.Get(utils.ContextClaimsKey)
	if !exists || token == "" {
		return "", utils.TokenClaims{}, false
	}
	claims, ok := v.(utils.TokenClaims)
	return token, claims, ok
}
