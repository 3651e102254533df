package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

var _ model.ClubStore = (*ClubRepository)(nil)

type ClubRepository struct {
	db *Connection
}

func NewClubRepository(db *Connection) *ClubRepository {
	return &ClubRepository{db: db}
}

const clubSelect = `
    SELECT c.id, c.name, c.description, c.owner_id, c.created_at, c.updated_at,
           (SELECT COUNT(*) FROM club_members m WHERE m.club_id = c.id)
    FROM clubs c
`

func scanClub(row pgx.Row) (model.Club, error) {
	var club model.Club
	err := row.Scan(
		&club.ID, &club.Name, &club.Description, &club.OwnerID,
		&club.CreatedAt, &club.UpdatedAt, &club.MemberCount,
	)
	return club, err
}

func (r *ClubRepository) Create(ctx context.Context, club model.Club) (model.Club, error) {
	const query = `
        INSERT INTO clubs (id, name, description, owner_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id
    `

	if club.ID == uuid.Nil {
		club.ID = uuid.New()
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, club.ID, club.Name, club.Description, club.OwnerID).Scan(&id)
	if err != nil {
		return model.Club{}, fmt.Errorf("failed to create club: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *ClubRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Club, error) {
	club, err := scanClub(r.db.QueryRow(ctx, clubSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Club{}, model.ErrNotFound
		}
		return model.Club{}, fmt.Errorf("failed to get club by id: %w", err)
	}
	return club, nil
}

func (r *ClubRepository) List(ctx context.Context) ([]model.Club, error) {
	rows, err := r.db.Query(ctx, clubSelect+` ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []model.Club
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clubs: %w", err)
	}

	return clubs, nil
}

func (r *ClubRepository) AddMember(ctx context.Context, clubID, userID uuid.UUID) error {
	const query = `
        INSERT INTO club_members (club_id, user_id) VALUES ($1, $2)
        ON CONFLICT (club_id, user_id) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, query, clubID, userID); err != nil {
		return fmt.Errorf("failed to add club member: %w", err)
	}
	return nil
}

func (r *ClubRepository) RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error {
	const query = `DELETE FROM club_members WHERE club_id = $1 AND user_id = $2`
	if _, err := r.db.Exec(ctx, query, clubID, userID); err != nil {
		return fmt.Errorf("failed to remove club member: %w", err)
	}
	return nil
}

func (r *ClubRepository) IsMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM club_members WHERE club_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, clubID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check club membership: %w", err)
	}
	return exists, nil
}
