package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenVerifier validates access tokens issued by the hosted authentication
// provider. The service never issues tokens itself.
type TokenVerifier interface {
	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims holds the verified identity carried by an access token.
type Claims struct {
	// UserID is parsed from the sub claim.
	UserID uuid.UUID

	Email string
	Role  string

	// IssuedAt and ExpiresAt are in UTC.
	IssuedAt  time.Time
	ExpiresAt time.Time
}
