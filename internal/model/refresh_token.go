package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

// RefreshTokenStore persists the server-side state of refresh tokens.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	RevokeByJTI(ctx context.Context, jti string) error
	// RevokeAllByUser revokes every live token of the user and reports how
	// many sessions were killed.
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// CountRotations reports how many tokens were minted downstream of jti
	// through rotation. Used when a revoked token resurfaces, to record how
	// far the chain had moved on without it.
	CountRotations(ctx context.Context, jti string) (int64, error)
	// DeleteExpired drops rows whose expiry is before the given time.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// RefreshToken is the stored record of an issued refresh token. Only a
// sha256 hash of the token string is kept; RotatedFromJTI links a rotation
// chain so reuse of a revoked token can be traced to its successor.
type RefreshToken struct {
	ID             uuid.UUID
	JTI            string
	UserID         uuid.UUID
	TokenHash      []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RotatedFromJTI *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
