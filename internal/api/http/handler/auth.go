package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/service"
)

// refreshCookieName is the httpOnly cookie carrying the refresh token. The
// cookie is scoped to the auth endpoints so it never rides along on
// ordinary API calls.
const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/auth"
)

// AuthService defines registration, login, refresh and logout operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) (service.Session, error)
	Login(ctx context.Context, email, password string) (service.Session, error)
	Refresh(ctx context.Context, refreshToken string) (service.Session, error)
	Logout(ctx context.Context, refreshToken string)
}

// Auth handles the authentication endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	refreshTTL     time.Duration
	cookieSecure   bool
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	contextManager model.ContextManager,
	refreshTTL time.Duration,
	cookieSecure bool,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		refreshTTL:     refreshTTL,
		cookieSecure:   cookieSecure,
		logger:         logger,
	}
}

type registerRequest struct {
	Email     string  `json:"email" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Major     *string `json:"major"`
	Year      *string `json:"year"`
	Residence *string `json:"residence"`
}

type sessionResponse struct {
	User        userResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// Register creates a student account and opens a session.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, password and name are required"})
		return
	}

	session, err := h.authService.Register(c.Request.Context(), service.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Major:     req.Major,
		Year:      req.Year,
		Residence: req.Residence,
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken)
	c.JSON(http.StatusCreated, sessionResponse{
		User:        toUserResponse(session.User),
		AccessToken: session.AccessToken,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and opens a session.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken)
	c.JSON(http.StatusOK, sessionResponse{
		User:        toUserResponse(session.User),
		AccessToken: session.AccessToken,
	})
}

// Refresh rotates the refresh token from the httpOnly cookie and returns a
// fresh access token. Any failure clears the cookie: the client's session
// is over and it should log in again.
func (h *Auth) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	session, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		// An unknown JTI is a dead session, not a missing resource.
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		handleError(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken)
	c.JSON(http.StatusOK, sessionResponse{
		User:        toUserResponse(session.User),
		AccessToken: session.AccessToken,
	})
}

// Logout revokes the refresh token and clears the cookie. Always answers
// 204: logging out of a dead session is not an error.
func (h *Auth) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err == nil && refreshToken != "" {
		h.authService.Logout(c.Request.Context(), refreshToken)
	}

	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *Auth) Me(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Auth) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, int(h.refreshTTL.Seconds()), refreshCookiePath, "", h.cookieSecure, true)
}

func (h *Auth) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", h.cookieSecure, true)
}
