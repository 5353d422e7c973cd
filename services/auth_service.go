package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/repository"
	"github.com/Govind-619/OrderSphere/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt string         `json:"expires_at"`
	Client    *ClientSummary `json:"client,omitempty"`
	Admin     *AdminSummary  `json:"admin,omitempty"`
}

type AdminSummary struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthService issues and checks bearer tokens for clients and admins.
type AuthService struct {
	accounts AccountStore
	tokens   *utils.TokenManager
	clock    Clock
}

func NewAuthService(accounts AccountStore, tokens *utils.TokenManager, clock Clock) *AuthService {
	return &AuthService{accounts: accounts, tokens: tokens, clock: clock}
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	client, err := s.accounts.FindClientByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.UnauthorizedError("Invalid username or password", nil)
		}
		return nil, dbError(err)
	}
	if !utils.CheckPassword(req.Password, client.Password) {
		utils.LogInfo("Failed login attempt for client %s", client.Username)
		return nil, utils.UnauthorizedError("Invalid username or password", nil)
	}
	if client.IsBlocked {
		return nil, utils.ForbiddenError("Account is blocked", nil)
	}

	token, expiresAt, err := s.tokens.GenerateToken(client.ID, utils.RoleClient)
	if err != nil {
		return nil, utils.WrapError(err, "Failed to generate token")
	}

	now := s.clock()
	if err := s.accounts.TouchClientLogin(ctx, client.ID, now); err != nil {
		utils.LogError("Failed to record login of client %d: %v", client.ID, err)
	}
	client.LastLoginAt = &now
	utils.LogInfo("Client %d logged in", client.ID)

	summary := newClientSummary(*client, now)
	return &LoginResult{Token: token, ExpiresAt: expiresAt.Format(time.RFC3339), Client: &summary}, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, req AdminLoginRequest) (*LoginResult, error) {
	admin, err := s.accounts.FindAdminByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.UnauthorizedError("Invalid email or password", nil)
		}
		return nil, dbError(err)
	}
	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogInfo("Failed admin login attempt for %s", admin.Email)
		return nil, utils.UnauthorizedError("Invalid email or password", nil)
	}
	if !admin.IsActive {
		return nil, utils.ForbiddenError("Admin account is disabled", nil)
	}

	token, expiresAt, err := s.tokens.GenerateToken(admin.ID, utils.RoleAdmin)
	if err != nil {
		return nil, utils.WrapError(err, "Failed to generate token")
	}
	if err := s.accounts.TouchAdminLogin(ctx, admin.ID, s.clock()); err != nil {
		utils.LogError("Failed to record login of admin %d: %v", admin.ID, err)
	}
	utils.LogInfo("Admin %d logged in", admin.ID)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		Admin:     &AdminSummary{ID: admin.ID, Email: admin.Email, FirstName: admin.FirstName, LastName: admin.LastName},
	}, nil
}

// ChangePassword replaces the client's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, client models.Client, req ChangePasswordRequest) error {
	if !utils.CheckPassword(req.CurrentPassword, client.Password) {
		return utils.BadRequestError("Current password is incorrect", nil)
	}
	if len(req.NewPassword) < utils.MinPasswordLength {
		return utils.BadRequestError("New password must be at least 6 characters", nil)
	}
	if req.NewPassword == req.CurrentPassword {
		return utils.BadRequestError("New password must be different from the current one", nil)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.WrapError(err, "Failed to hash password")
	}
	if err := s.accounts.UpdateClientPassword(ctx, client.ID, hash); err != nil {
		return dbError(err)
	}
	utils.LogInfo("Client %d changed password", client.ID)
	return nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, token string, claims utils.TokenClaims) error {
	if err := s.accounts.RevokeToken(ctx, token, claims.ExpiresAt); err != nil {
		return dbError(err)
	}
	utils.LogInfo("Token of %s %d revoked", claims.Role, claims.SubjectID)
	return nil
}

// AuthenticateClient resolves a bearer token to an active client.
func (s *AuthService) AuthenticateClient(ctx context.Context, token string) (*models.Client, *utils.TokenClaims, error) {
	claims, err := s.validate(ctx, token, utils.RoleClient)
	if err != nil {
		return nil, nil, err
	}
	client, err := s.accounts.FindClientByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, utils.UnauthorizedError("User not found", nil)
		}
		return nil, nil, dbError(err)
	}
	if client.IsBlocked {
		return nil, nil, utils.ForbiddenError("Account is blocked", nil)
	}
	return client, claims, nil
}

// AuthenticateAdmin resolves a bearer token to an active admin.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, token string) (*models.Admin, *utils.TokenClaims, error) {
	claims, err := s.validate(ctx, token, utils.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}
	admin, err := s.accounts.FindAdminByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, utils.UnauthorizedError("Admin not found", nil)
		}
		return nil, nil, dbError(err)
	}
	if !admin.IsActive {
		return nil, nil, utils.ForbiddenError("Admin account is disabled", nil)
	}
	return admin, claims, nil
}

// PurgeRevoked drops blacklist entries of tokens that have expired.
func (s *AuthService) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.accounts.PurgeExpiredTokens(ctx, s.clock())
}

func (s *AuthService) validate(ctx context.Context, token, role string) (*utils.TokenClaims, error) {
	claims, err := s.tokens.ValidateToken(token, role)
	if err != nil {
		return nil, utils.UnauthorizedError("Please login for access", err)
	}
	revoked, err := s.accounts.IsTokenRevoked(ctx, token)
	if err != nil {
		return nil, dbError(err)
	}
	if revoked {
		return nil, utils.UnauthorizedError("Session has ended, please login again", nil)
	}
	return claims, nil
}
