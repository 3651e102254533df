package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RSVPStatus is a user's attendance answer for an event.
type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "going"
	RSVPNotGoing RSVPStatus = "notGoing"
)

// EventStore defines persistence operations for events and RSVPs.
type EventStore interface {
	Create(ctx context.Context, event Event) (Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (Event, error)
	ListUpcoming(ctx context.Context, after time.Time) ([]Event, error)
	SetRSVP(ctx context.Context, eventID, userID uuid.UUID, status RSVPStatus) error
}

// Event is a club event users can RSVP to.
type Event struct {
	ID          uuid.UUID
	ClubID      uuid.UUID
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	CreatedBy   uuid.UUID
	GoingCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
