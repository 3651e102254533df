package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxPostLength bounds post content after sanitization.
const MaxPostLength = 1000

// PostStore defines persistence operations for posts.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	ListFeed(ctx context.Context, limit int) ([]Post, error)
	ListByClub(ctx context.Context, clubID uuid.UUID, limit int) ([]Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Post is a feed update, optionally attached to a club.
type Post struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	ClubID    *uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized author/club fields for feed rendering, populated by the
	// store's joined queries.
	AuthorName  string
	AuthorEmail string
	ClubName    *string
}
