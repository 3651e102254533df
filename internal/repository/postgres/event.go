package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

var _ model.EventStore = (*EventRepository)(nil)

type EventRepository struct {
	db *Connection
}

func NewEventRepository(db *Connection) *EventRepository {
	return &EventRepository{db: db}
}

const eventSelect = `
    SELECT e.id, e.club_id, e.title, e.description, e.location, e.starts_at,
           e.created_by, e.created_at, e.updated_at,
           (SELECT COUNT(*) FROM event_rsvps r WHERE r.event_id = e.id AND r.status = 'going')
    FROM events e
`

func scanEvent(row pgx.Row) (model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID, &event.ClubID, &event.Title, &event.Description, &event.Location,
		&event.StartsAt, &event.CreatedBy, &event.CreatedAt, &event.UpdatedAt,
		&event.GoingCount,
	)
	return event, err
}

func (r *EventRepository) Create(ctx context.Context, event model.Event) (model.Event, error) {
	const query = `
        INSERT INTO events (id, club_id, title, description, location, starts_at, created_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        RETURNING id
    `

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		event.ID, event.ClubID, event.Title, event.Description, event.Location,
		event.StartsAt, event.CreatedBy,
	).Scan(&id)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Event, error) {
	event, err := scanEvent(r.db.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Event{}, model.ErrNotFound
		}
		return model.Event{}, fmt.Errorf("failed to get event by id: %w", err)
	}
	return event, nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context, after time.Time) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+` WHERE e.starts_at > $1 ORDER BY e.starts_at`, after)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

func (r *EventRepository) SetRSVP(ctx context.Context, eventID, userID uuid.UUID, status model.RSVPStatus) error {
	const query = `
        INSERT INTO event_rsvps (event_id, user_id, status, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (event_id, user_id) DO UPDATE SET status = $3, updated_at = NOW()
    `
	if _, err := r.db.Exec(ctx, query, eventID, userID, status); err != nil {
		return fmt.Errorf("failed to set rsvp: %w", err)
	}
	return nil
}
