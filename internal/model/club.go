package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ClubStore defines persistence operations for clubs and memberships.
type ClubStore interface {
	Create(ctx context.Context, club Club) (Club, error)
	GetByID(ctx context.Context, id uuid.UUID) (Club, error)
	List(ctx context.Context) ([]Club, error)
	AddMember(ctx context.Context, clubID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error
	IsMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error)
}

// Club is a student organization.
type Club struct {
	ID          uuid.UUID
	Name        string
	Description string
	OwnerID     uuid.UUID
	MemberCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
