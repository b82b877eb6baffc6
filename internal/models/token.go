package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims carries the identity and role of an authenticated caller. Type
// distinguishes access tokens from refresh tokens; refresh tokens are never
// accepted for API access.
type TokenClaims struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}
