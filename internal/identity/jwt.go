package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

// TokenConfig holds JWT signing settings.
type TokenConfig struct {
	SecretKey           string
	AccessTokenDuration time.Duration
}

// TokenManager issues and validates signed access tokens. It satisfies
// httputil.TokenValidator.
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a token manager.
func NewTokenManager(cfg TokenConfig) *TokenManager {
	return &TokenManager{config: cfg}
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed access token for the user.
func (m *TokenManager) IssueToken(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.config.AccessTokenDuration)

	claims := accessClaims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies an access token, returning the subject
// and role it carries.
func (m *TokenManager) ValidateToken(_ context.Context, tokenString string) (string, domain.Role, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.config.SecretKey), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return "", "", ErrInvalidToken
	}
	return claims.Subject, role, nil
}
