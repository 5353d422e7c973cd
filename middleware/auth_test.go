package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuth struct {
	clients map[string]models.Client
	admins  map[string]models.Admin
}

func (f fakeAuth) AuthenticateClient(ctx context.Context, token string) (*models.Client, *utils.TokenClaims, error) {
	c, ok := f.clients[token]
	if !ok {
		return nil, nil, utils.UnauthorizedError("Please login for access", nil)
	}
	if c.IsBlocked {
		return nil, nil, utils.ForbiddenError("Account is blocked", nil)
	}
	return &c, &utils.TokenClaims{SubjectID: c.ID, Role: utils.RoleClient, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f fakeAuth) AuthenticateAdmin(ctx context.Context, token string) (*models.Admin, *utils.TokenClaims, error) {
	a, ok := f.admins[token]
	if !ok {
		return nil, nil, utils.UnauthorizedError("Please login for access", nil)
	}
	return &a, &utils.TokenClaims{SubjectID: a.ID, Role: utils.RoleAdmin}, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := fakeAuth{
		clients: map[string]models.Client{
			"good":    {Model: gorm.Model{ID: 4}, Username: "acme"},
			"blocked": {Model: gorm.Model{ID: 5}, IsBlocked: true},
		},
		admins: map[string]models.Admin{"root": {Model: gorm.Model{ID: 1}, Email: "desk@example.com"}},
	}

	r := gin.New()
	r.GET("/me", AuthMiddleware(auth), func(c *gin.Context) {
		client, ok := CurrentClient(c)
		token, claims, tokOK := CurrentToken(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok && tokOK, "id": client.ID, "token": token, "role": claims.Role})
	})
	r.GET("/admin", AdminAuthMiddleware(auth), func(c *gin.Context) {
		admin, ok := CurrentAdmin(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "email": admin.Email})
	})
	return r
}

func request(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic good", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"blocked client", "Bearer blocked", http.StatusForbidden},
		{"valid", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(r, "/me", tt.header)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	w := request(r, "/me", "Bearer good")
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(4), body["id"])
	assert.Equal(t, "good", body["token"])
	assert.Equal(t, utils.RoleClient, body["role"])
}

func TestAdminAuthMiddleware(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, request(r, "/admin", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "/admin", "Bearer good").Code)

	w := request(r, "/admin", "Bearer root")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "desk@example.com")
}
