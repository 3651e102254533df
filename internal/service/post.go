package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/sanitize"
)

const feedLimit = 100

// Post implements the feed operations.
type Post struct {
	postStore model.PostStore
	clubStore model.ClubStore
	sanitizer *sanitize.Sanitizer
	logger    *logger.Logger
}

func NewPost(
	postStore model.PostStore,
	clubStore model.ClubStore,
	sanitizer *sanitize.Sanitizer,
	logger *logger.Logger,
) *Post {
	return &Post{
		postStore: postStore,
		clubStore: clubStore,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// ListFeed returns the newest posts across the campus.
func (s *Post) ListFeed(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postStore.ListFeed(ctx, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list feed: %w", err)
	}
	return posts, nil
}

// ListByClub returns the newest posts of one club.
func (s *Post) ListByClub(ctx context.Context, clubID uuid.UUID) ([]model.Post, error) {
	posts, err := s.postStore.ListByClub(ctx, clubID, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list club posts: %w", err)
	}
	return posts, nil
}

// Create publishes a post by the acting user. Posting into a club requires
// membership in it.
func (s *Post) Create(ctx context.Context, actor model.User, content string, clubID *uuid.UUID) (model.Post, error) {
	content = s.sanitizer.Content(content, model.MaxPostLength)
	if content == "" {
		return model.Post{}, fmt.Errorf("%w: content is required", model.ErrInvalidInput)
	}

	if clubID != nil {
		isMember, err := s.clubStore.IsMember(ctx, *clubID, actor.ID)
		if err != nil {
			return model.Post{}, fmt.Errorf("failed to check club membership: %w", err)
		}
		if !isMember {
			return model.Post{}, model.ErrForbidden
		}
	}

	post, err := s.postStore.Create(ctx, model.Post{
		ID:       uuid.New(),
		AuthorID: actor.ID,
		ClubID:   clubID,
		Content:  content,
	})
	if err != nil {
		s.logger.Error("Post service: failed to create post",
			"author_id", actor.ID.String(),
			"error", err.Error())
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Post service: post created",
		"post_id", post.ID.String(),
		"author_id", actor.ID.String())

	return post, nil
}

// Delete removes a post. Only the author or a superAdmin may delete.
func (s *Post) Delete(ctx context.Context, actor model.User, postID uuid.UUID) error {
	post, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to get post by id: %w", err)
	}

	if post.AuthorID != actor.ID && !actor.Role.Satisfies(model.RoleSuperAdmin) {
		return model.ErrForbidden
	}

	if err := s.postStore.Delete(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("Post service: post deleted",
		"post_id", postID.String(),
		"actor_id", actor.ID.String())

	return nil
}
