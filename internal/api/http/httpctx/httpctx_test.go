package httpctx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager()

	user := model.User{ID: uuid.New(), Email: "amy@uni.edu", Role: model.RoleStudent}
	ctx := m.SetUserToContext(t.Context(), user)

	got, ok := m.GetUserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestManager_MissingUser(t *testing.T) {
	m := NewManager()

	_, ok := m.GetUserFromContext(t.Context())
	assert.False(t, ok)
}
