package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin grants access to catalog administration endpoints.
const RoleAdmin = "admin"

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IsAdmin reports whether the token carries the admin role.
func (c *TokenClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
