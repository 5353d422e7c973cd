package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Token roles
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

var ErrInvalidToken = errors.New("invalid token")

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a password against a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// TokenClaims is what a validated token carries.
type TokenClaims struct {
	SubjectID uint
	Role      string
	ExpiresAt time.Time
}

// TokenManager signs and validates HS256 tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken creates a JWT for the subject. Client tokens carry user_id,
// admin tokens carry admin_id.
func (m *TokenManager) GenerateToken(subjectID uint, role string) (string, time.Time, error) {
	expiresAt := m.now().Add(m.ttl)

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	switch role {
	case RoleClient:
		claims["user_id"] = subjectID
	case RoleAdmin:
		claims["admin_id"] = subjectID
	default:
		return "", time.Time{}, fmt.Errorf("unknown role %q", role)
	}
	claims["role"] = role
	claims["exp"] = expiresAt.Unix()

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken parses the token and checks that it was issued for role.
func (m *TokenManager) ValidateToken(tokenString, role string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if r, _ := claims["role"].(string); r != role {
		return nil, fmt.Errorf("%w: token issued for %q", ErrInvalidToken, r)
	}

	idClaim := "user_id"
	if role == RoleAdmin {
		idClaim = "admin_id"
	}
	id, ok := claims[idClaim].(float64)
	if !ok || id <= 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidToken, idClaim)
	}
	exp, _ := claims["exp"].(float64)

	return &TokenClaims{
		SubjectID: uint(id),
		Role:      role,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
