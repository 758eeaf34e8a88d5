package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest is the owner login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the owner login response
type LoginResponse struct {
	Token   string `json:"token"`
	OwnerID string `json:"ownerId"`
}

// OwnerClaims are the JWT claims for a survey owner
type OwnerClaims struct {
	OwnerID string `json:"ownerId"`
	jwt.RegisteredClaims
}
