package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{db: db}
}

// postSelect joins author and club so feed entries render without extra
// round trips, mirroring what the feed endpoint returns.
const postSelect = `
    SELECT p.id, p.author_id, p.club_id, p.content, p.created_at, p.updated_at,
           u.name, u.email, c.name
    FROM posts p
    JOIN users u ON u.id = p.author_id
    LEFT JOIN clubs c ON c.id = p.club_id
`

func scanPost(row pgx.Row) (model.Post, error) {
	var post model.Post
	err := row.Scan(
		&post.ID, &post.AuthorID, &post.ClubID, &post.Content, &post.CreatedAt,
		&post.UpdatedAt, &post.AuthorName, &post.AuthorEmail, &post.ClubName,
	)
	return post, err
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	const query = `
        INSERT INTO posts (id, author_id, club_id, content, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id
    `

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, post.ID, post.AuthorID, post.ClubID, post.Content).Scan(&id)
	if err != nil {
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	post, err := scanPost(r.db.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, model.ErrNotFound
		}
		return model.Post{}, fmt.Errorf("failed to get post by id: %w", err)
	}
	return post, nil
}

func (r *PostRepository) ListFeed(ctx context.Context, limit int) ([]model.Post, error) {
	return r.list(ctx, postSelect+` ORDER BY p.created_at DESC LIMIT $1`, limit)
}

func (r *PostRepository) ListByClub(ctx context.Context, clubID uuid.UUID, limit int) ([]model.Post, error) {
	return r.list(ctx, postSelect+` WHERE p.club_id = $2 ORDER BY p.created_at DESC LIMIT $1`, limit, clubID)
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
