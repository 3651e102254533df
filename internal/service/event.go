package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/sanitize"
)

// Event implements event listing, creation and RSVPs.
type Event struct {
	eventStore model.EventStore
	clubStore  model.ClubStore
	sanitizer  *sanitize.Sanitizer
	logger     *logger.Logger
}

func NewEvent(
	eventStore model.EventStore,
	clubStore model.ClubStore,
	sanitizer *sanitize.Sanitizer,
	logger *logger.Logger,
) *Event {
	return &Event{
		eventStore: eventStore,
		clubStore:  clubStore,
		sanitizer:  sanitizer,
		logger:     logger,
	}
}

// CreateEventParams carries an event creation request.
type CreateEventParams struct {
	ClubID      uuid.UUID
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
}

func (s *Event) ListUpcoming(ctx context.Context) ([]model.Event, error) {
	events, err := s.eventStore.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// Create schedules a club event. The route is clubAdmin-gated; on top of
// that the actor must own the club unless they are a superAdmin.
func (s *Event) Create(ctx context.Context, actor model.User, params CreateEventParams) (model.Event, error) {
	title := s.sanitizer.Plain(params.Title, 200)
	if title == "" {
		return model.Event{}, fmt.Errorf("%w: title is required", model.ErrInvalidInput)
	}
	if params.StartsAt.Before(time.Now()) {
		return model.Event{}, fmt.Errorf("%w: event must start in the future", model.ErrInvalidInput)
	}

	club, err := s.clubStore.GetByID(ctx, params.ClubID)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to get club: %w", err)
	}
	if club.OwnerID != actor.ID && !actor.Role.Satisfies(model.RoleSuperAdmin) {
		return model.Event{}, model.ErrForbidden
	}

	event, err := s.eventStore.Create(ctx, model.Event{
		ID:          uuid.New(),
		ClubID:      club.ID,
		Title:       title,
		Description: s.sanitizer.Content(params.Description, 2000),
		Location:    s.sanitizer.Plain(params.Location, 200),
		StartsAt:    params.StartsAt,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	s.logger.Info("Event service: event created",
		"event_id", event.ID.String(),
		"club_id", club.ID.String())

	return event, nil
}

// RSVP records or overwrites the acting user's attendance answer.
func (s *Event) RSVP(ctx context.Context, actor model.User, eventID uuid.UUID, status model.RSVPStatus) error {
	if status != model.RSVPGoing && status != model.RSVPNotGoing {
		return fmt.Errorf("%w: unknown rsvp status %q", model.ErrInvalidInput, status)
	}

	if _, err := s.eventStore.GetByID(ctx, eventID); err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}

	if err := s.eventStore.SetRSVP(ctx, eventID, actor.ID, status); err != nil {
		return fmt.Errorf("failed to set rsvp: %w", err)
	}

	return nil
}
