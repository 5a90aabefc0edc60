package auth

import (
	"context"

	"github.com/google/uuid"
)

// Claims carries the identity information embedded in an access token.
// The role flags ride in the token so policy middleware can gate writes
// without a database round trip.
type Claims struct {
	UserID      uuid.UUID
	IsStaff     bool
	IsSuperuser bool
}

// JWTService defines the interface for issuing and validating access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token carrying the given
	// identity claims.
	GenerateToken(ctx context.Context, claims Claims) (string, error)

	// ValidateToken verifies a token's signature and expiry and returns
	// its claims. Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
