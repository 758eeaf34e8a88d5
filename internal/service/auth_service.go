package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pulsepoll/internal/config"
	"pulsepoll/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles survey-owner authentication
type AuthService struct {
	ownerUsername string
	ownerPassword string
	jwtSecret     []byte
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		ownerUsername: cfg.OwnerUsername,
		ownerPassword: cfg.OwnerPassword,
		jwtSecret:     []byte(cfg.JWTSecret),
	}
}

// Login validates credentials and returns an owner token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.ownerUsername || password != s.ownerPassword {
		return nil, ErrInvalidCredentials
	}

	ownerID := "owner_" + uuid.New().String()[:8]

	claims := &model.OwnerClaims{
		OwnerID: ownerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:   tokenString,
		OwnerID: ownerID,
	}, nil
}

// ValidateOwnerToken validates an owner JWT and returns its claims
func (s *AuthService) ValidateOwnerToken(tokenString string) (*model.OwnerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.OwnerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.OwnerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
