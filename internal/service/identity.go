package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// IdentityService validates session tokens minted by the identity provider,
// which signs them with a shared HMAC secret. The provider user id is the
// token subject.
type IdentityService struct {
	secret []byte
	issuer string
}

// NewIdentityService creates a new IdentityService instance. An empty issuer
// disables the issuer check.
func NewIdentityService(secret, issuer string) *IdentityService {
	return &IdentityService{secret: []byte(secret), issuer: issuer}
}

// ValidateToken parses and verifies token, returning its claims.
func (s *IdentityService) ValidateToken(token string) (*types.TokenClaims, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("%w: identity provider is not configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &types.TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID() == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}

// GenerateToken signs a token for userID. Used by local tooling and tests in
// place of the identity provider.
func (s *IdentityService) GenerateToken(userID, username string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("identity secret is not configured")
	}
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
