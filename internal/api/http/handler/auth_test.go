package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campuscliq/campuscliq-server/internal/api/http/httpctx"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/service"
	"github.com/campuscliq/campuscliq-server/internal/testutil"
)

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, params service.RegisterParams) (service.Session, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(service.Session), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, email, password string) (service.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(service.Session), args.Error(1)
}

func (m *authServiceMock) Refresh(ctx context.Context, refreshToken string) (service.Session, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(service.Session), args.Error(1)
}

func (m *authServiceMock) Logout(ctx context.Context, refreshToken string) {
	m.Called(ctx, refreshToken)
}

func newAuthRouter(svc AuthService) (*gin.Engine, *httpctx.Manager) {
	gin.SetMode(gin.TestMode)
	cm := httpctx.NewManager()
	h := NewAuth(svc, cm, 720*time.Hour, false, testutil.MakeNoopLogger())

	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/refresh", h.Refresh)
	r.POST("/api/auth/logout", h.Logout)
	r.GET("/api/auth/me", h.Me)
	return r, cm
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == refreshCookieName {
			return c
		}
	}
	return nil
}

func TestAuth_Login(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "amy@uni.edu", Name: "Amy", Role: model.RoleStudent}
	session := service.Session{User: user, AccessToken: "access-jwt", RefreshToken: "refresh-jwt"}

	svc := &authServiceMock{}
	svc.On("Login", mock.Anything, "amy@uni.edu", "password123").Return(session, nil)

	r, _ := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"amy@uni.edu","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accessToken":"access-jwt"`)
	assert.NotContains(t, w.Body.String(), "refresh-jwt", "refresh token must not appear in the body")
	assert.NotContains(t, w.Body.String(), "passwordHash")

	cookie := refreshCookie(t, w)
	require.NotNil(t, cookie)
	assert.Equal(t, "refresh-jwt", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, refreshCookiePath, cookie.Path)
}

func TestAuth_Login_BadCredentials(t *testing.T) {
	svc := &authServiceMock{}
	svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(service.Session{}, model.ErrInvalidCredentials)

	r, _ := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"amy@uni.edu","password":"wrong-password"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, refreshCookie(t, w))
}

func TestAuth_Register(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "bo@uni.edu", Name: "Bo", Role: model.RoleStudent}
	session := service.Session{User: user, AccessToken: "access-jwt", RefreshToken: "refresh-jwt"}

	svc := &authServiceMock{}
	svc.On("Register", mock.Anything, mock.MatchedBy(func(p service.RegisterParams) bool {
		return p.Email == "bo@uni.edu" && p.Name == "Bo"
	})).Return(session, nil)

	r, _ := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"bo@uni.edu","password":"password123","name":"Bo"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"student"`)
	require.NotNil(t, refreshCookie(t, w))
}

func TestAuth_Register_MissingFields(t *testing.T) {
	r, _ := newAuthRouter(&authServiceMock{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"bo@uni.edu"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_Refresh(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "amy@uni.edu", Role: model.RoleStudent}
	session := service.Session{User: user, AccessToken: "new-access", RefreshToken: "rotated-refresh"}

	svc := &authServiceMock{}
	svc.On("Refresh", mock.Anything, "old-refresh").Return(session, nil)

	r, _ := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "old-refresh"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accessToken":"new-access"`)

	cookie := refreshCookie(t, w)
	require.NotNil(t, cookie)
	assert.Equal(t, "rotated-refresh", cookie.Value, "cookie must carry the rotated token")
}

func TestAuth_Refresh_NoCookie(t *testing.T) {
	r, _ := newAuthRouter(&authServiceMock{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Refresh_RevokedToken(t *testing.T) {
	svc := &authServiceMock{}
	svc.On("Refresh", mock.Anything, "stolen-refresh").
		Return(service.Session{}, model.ErrTokenRevoked)

	r, _ := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "stolen-refresh"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := refreshCookie(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value, "failed refresh must clear the cookie")
}

func TestAuth_Refresh_UnknownJTI(t *testing.T) {
	svc := &authServiceMock{}
	svc.On("Refresh", mock.Anything, "unknown-refresh").
		Return(service.Session{}, model.ErrNotFound)

	r, _ := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "unknown-refresh"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code, "unknown refresh state is a dead session, not 404")
}

func TestAuth_Logout(t *testing.T) {
	svc := &authServiceMock{}
	svc.On("Logout", mock.Anything, "live-refresh").Return()

	r, _ := newAuthRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "live-refresh"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)

	cookie := refreshCookie(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestAuth_Logout_WithoutCookie(t *testing.T) {
	r, _ := newAuthRouter(&authServiceMock{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuth_Me(t *testing.T) {
	user := model.User{ID: uuid.New(), Email: "amy@uni.edu", Name: "Amy", Role: model.RoleClubAdmin}

	gin.SetMode(gin.TestMode)
	cm := httpctx.NewManager()
	h := NewAuth(&authServiceMock{}, cm, time.Hour, false, testutil.MakeNoopLogger())

	r := gin.New()
	r.GET("/api/auth/me", func(c *gin.Context) {
		c.Request = c.Request.WithContext(cm.SetUserToContext(c.Request.Context(), user))
		h.Me(c)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"clubAdmin"`)
}
