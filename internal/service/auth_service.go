package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kashafa/tadreeb-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrSerialNotFound    = errors.New("serial not registered")
	ErrInvalidAdminCreds = errors.New("invalid admin secret")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// AuthService handles barcode authentication and JWT issuance.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// GenerateUserToken creates a JWT for a user identified by barcode login.
func (s *AuthService) GenerateUserToken(userID string) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// CheckAdminSecret verifies the shared admin secret. A bcrypt hash from the
// environment is preferred; the plaintext ADMIN_SECRET fallback exists for
// local development only.
func (s *AuthService) CheckAdminSecret(secret string) error {
	if s.cfg.AdminSecretHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminSecretHash), []byte(secret)); err != nil {
			return ErrInvalidAdminCreds
		}
		return nil
	}
	if s.cfg.AdminSecret == "" {
		return ErrInvalidAdminCreds
	}
	if subtle.ConstantTimeCompare([]byte(s.cfg.AdminSecret), []byte(secret)) != 1 {
		return ErrInvalidAdminCreds
	}
	return nil
}
