package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/sanitize"
)

// Club implements club and membership operations.
type Club struct {
	clubStore model.ClubStore
	sanitizer *sanitize.Sanitizer
	logger    *logger.Logger
}

func NewClub(clubStore model.ClubStore, sanitizer *sanitize.Sanitizer, logger *logger.Logger) *Club {
	return &Club{
		clubStore: clubStore,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

func (s *Club) List(ctx context.Context) ([]model.Club, error) {
	clubs, err := s.clubStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

func (s *Club) Get(ctx context.Context, id uuid.UUID) (model.Club, error) {
	club, err := s.clubStore.GetByID(ctx, id)
	if err != nil {
		return model.Club{}, fmt.Errorf("failed to get club: %w", err)
	}
	return club, nil
}

// Create registers a new club owned by the acting user. The route is gated
// at clubAdmin, so by the time this runs the actor already satisfies it.
func (s *Club) Create(ctx context.Context, actor model.User, name, description string) (model.Club, error) {
	name = s.sanitizer.Plain(name, 100)
	if name == "" {
		return model.Club{}, fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}

	club, err := s.clubStore.Create(ctx, model.Club{
		ID:          uuid.New(),
		Name:        name,
		Description: s.sanitizer.Content(description, 1000),
		OwnerID:     actor.ID,
	})
	if err != nil {
		return model.Club{}, fmt.Errorf("failed to create club: %w", err)
	}

	// The owner is a member from the start.
	if err := s.clubStore.AddMember(ctx, club.ID, actor.ID); err != nil {
		return model.Club{}, fmt.Errorf("failed to add owner membership: %w", err)
	}

	s.logger.Info("Club service: club created",
		"club_id", club.ID.String(),
		"owner_id", actor.ID.String())

	return club, nil
}

func (s *Club) Join(ctx context.Context, actor model.User, clubID uuid.UUID) error {
	if _, err := s.clubStore.GetByID(ctx, clubID); err != nil {
		return fmt.Errorf("failed to get club: %w", err)
	}
	if err := s.clubStore.AddMember(ctx, clubID, actor.ID); err != nil {
		return fmt.Errorf("failed to join club: %w", err)
	}
	return nil
}

func (s *Club) Leave(ctx context.Context, actor model.User, clubID uuid.UUID) error {
	if err := s.clubStore.RemoveMember(ctx, clubID, actor.ID); err != nil {
		return fmt.Errorf("failed to leave club: %w", err)
	}
	return nil
}
