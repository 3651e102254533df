package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campuscliq/campuscliq-server/internal/mocks"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/sanitize"
	"github.com/campuscliq/campuscliq-server/internal/testutil"
)

func newPostService(postStore model.PostStore, clubStore model.ClubStore) *Post {
	return NewPost(postStore, clubStore, sanitize.New(), testutil.MakeNoopLogger())
}

func TestPost_Create_SanitizesContent(t *testing.T) {
	ctx := t.Context()
	postStore := &mocks.PostStore{}
	actor := model.User{ID: uuid.New(), Role: model.RoleStudent}

	postStore.On("Create", mock.Anything, mock.MatchedBy(func(p model.Post) bool {
		return p.Content == "hello campus" && p.AuthorID == actor.ID && p.ClubID == nil
	})).Return(model.Post{ID: uuid.New(), Content: "hello campus"}, nil)

	s := newPostService(postStore, &mocks.ClubStore{})

	post, err := s.Create(ctx, actor, "<script>alert(1)</script>hello campus", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello campus", post.Content)

	postStore.AssertExpectations(t)
}

func TestPost_Create_EmptyAfterSanitizing(t *testing.T) {
	ctx := t.Context()
	s := newPostService(&mocks.PostStore{}, &mocks.ClubStore{})

	_, err := s.Create(ctx, model.User{ID: uuid.New()}, "<script>only markup</script>", nil)
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestPost_Create_ClubRequiresMembership(t *testing.T) {
	ctx := t.Context()
	clubStore := &mocks.ClubStore{}
	actor := model.User{ID: uuid.New(), Role: model.RoleStudent}
	clubID := uuid.New()

	clubStore.On("IsMember", mock.Anything, clubID, actor.ID).Return(false, nil)

	s := newPostService(&mocks.PostStore{}, clubStore)

	_, err := s.Create(ctx, actor, "club announcement", &clubID)
	require.ErrorIs(t, err, model.ErrForbidden)
}

func TestPost_Delete_AuthorAllowed(t *testing.T) {
	ctx := t.Context()
	postStore := &mocks.PostStore{}
	actor := model.User{ID: uuid.New(), Role: model.RoleStudent}
	postID := uuid.New()

	postStore.On("GetByID", mock.Anything, postID).Return(model.Post{ID: postID, AuthorID: actor.ID}, nil)
	postStore.On("Delete", mock.Anything, postID).Return(nil)

	s := newPostService(postStore, &mocks.ClubStore{})
	require.NoError(t, s.Delete(ctx, actor, postID))
}

func TestPost_Delete_StrangerForbidden(t *testing.T) {
	ctx := t.Context()
	postStore := &mocks.PostStore{}
	postID := uuid.New()

	postStore.On("GetByID", mock.Anything, postID).Return(model.Post{ID: postID, AuthorID: uuid.New()}, nil)

	s := newPostService(postStore, &mocks.ClubStore{})

	err := s.Delete(ctx, model.User{ID: uuid.New(), Role: model.RoleClubAdmin}, postID)
	require.ErrorIs(t, err, model.ErrForbidden)
}

func TestPost_Delete_SuperAdminAllowed(t *testing.T) {
	ctx := t.Context()
	postStore := &mocks.PostStore{}
	postID := uuid.New()

	postStore.On("GetByID", mock.Anything, postID).Return(model.Post{ID: postID, AuthorID: uuid.New()}, nil)
	postStore.On("Delete", mock.Anything, postID).Return(nil)

	s := newPostService(postStore, &mocks.ClubStore{})

	err := s.Delete(ctx, model.User{ID: uuid.New(), Role: model.RoleSuperAdmin}, postID)
	require.NoError(t, err)
}
