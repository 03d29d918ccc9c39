package types

import "github.com/golang-jwt/jwt/v5"

// TokenClaims are the claims of an identity-provider session token. The
// provider user id travels in the standard "sub" claim.
type TokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// UserID returns the provider-issued user id.
func (c *TokenClaims) UserID() string {
	return c.Subject
}
