package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscliq/campuscliq-server/internal/api/http/httpctx"
	"github.com/campuscliq/campuscliq-server/internal/identity"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/testutil"
)

func newTestRouter(provider identity.Provider) *Router {
	return New(
		nil, nil, nil, nil, nil, nil, nil,
		provider,
		httpctx.NewManager(),
		nil,
		Config{StoreTimeout: time.Second, RefreshTTL: time.Hour},
		testutil.MakeNoopLogger(),
	)
}

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	engine := newTestRouter(identity.NewFixture(model.User{Role: model.RoleStudent})).Register()
	require.NotNil(t, engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_GatesProtectedRoutes(t *testing.T) {
	t.Parallel()

	// Live provider with nil backends never gets past the empty-token check.
	engine := newTestRouter(identity.NewLive(nil, nil)).Register()

	for _, path := range []string{"/api/posts", "/api/clubs", "/api/events", "/api/auth/me", "/api/admin/users"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("pool exhausted") }

func TestRouter_Health_StoreDown(t *testing.T) {
	t.Parallel()

	r := New(
		nil, nil, nil, nil, nil, nil, nil,
		identity.NewFixture(model.User{Role: model.RoleStudent}),
		httpctx.NewManager(),
		failingPinger{},
		Config{RefreshTTL: time.Hour},
		testutil.MakeNoopLogger(),
	)
	engine := r.Register()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_RoleGates(t *testing.T) {
	t.Parallel()

	student := identity.NewFixture(model.User{Role: model.RoleStudent})
	engine := newTestRouter(student).Register()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/clubs", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
