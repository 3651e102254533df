package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	List(ctx context.Context) ([]User, error)
}

// User represents a stored user with authentication material.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	Major        *string
	Year         *string
	Residence    *string
	AvatarKey    *string
	IsVerified   bool
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Sanitized returns a copy safe to attach to a request context or return
// over the API: the password hash is stripped.
func (u User) Sanitized() User {
	u.PasswordHash = nil
	return u
}
