// Package router assembles the HTTP API: route groups, their handlers and
// the middleware chain gating them.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscliq/campuscliq-server/internal/api/http/handler"
	"github.com/campuscliq/campuscliq-server/internal/api/http/middleware"
	"github.com/campuscliq/campuscliq-server/internal/identity"
	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config carries the HTTP-facing knobs the router needs.
type Config struct {
	StoreTimeout  time.Duration
	RefreshTTL    time.Duration
	CookieSecure  bool
	AllowedOrigin string
}

// Router wires services into the HTTP route tree.
type Router struct {
	authService    *service.Auth
	postService    *service.Post
	clubService    *service.Club
	eventService   *service.Event
	messageService *service.Message
	profileService *service.Profile
	adminService   *service.Admin
	provider       identity.Provider
	contextManager model.ContextManager
	pinger         Pinger
	config         Config
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	postService *service.Post,
	clubService *service.Club,
	eventService *service.Event,
	messageService *service.Message,
	profileService *service.Profile,
	adminService *service.Admin,
	provider identity.Provider,
	contextManager model.ContextManager,
	pinger Pinger,
	config Config,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		postService:    postService,
		clubService:    clubService,
		eventService:   eventService,
		messageService: messageService,
		profileService: profileService,
		adminService:   adminService,
		provider:       provider,
		contextManager: contextManager,
		pinger:         pinger,
		config:         config,
		logger:         logger,
	}
}

// Register builds the gin engine with all routes and middleware.
func (r *Router) Register() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.NewLogging(r.logger).Handler())
	if r.config.AllowedOrigin != "" {
		engine.Use(middleware.NewCORS(r.config.AllowedOrigin).Handler())
	}

	engine.GET("/health", r.health)

	authenticate := middleware.NewAuthenticate(r.provider, r.contextManager, r.config.StoreTimeout, r.logger)
	requireRole := middleware.NewRequireRole(r.contextManager)

	authHandler := handler.NewAuth(r.authService, r.contextManager, r.config.RefreshTTL, r.config.CookieSecure, r.logger)
	postHandler := handler.NewPost(r.postService, r.contextManager, r.logger)
	clubHandler := handler.NewClub(r.clubService, r.postService, r.contextManager, r.logger)
	eventHandler := handler.NewEvent(r.eventService, r.contextManager, r.logger)
	messageHandler := handler.NewMessage(r.messageService, r.contextManager, r.logger)
	profileHandler := handler.NewProfile(r.profileService, r.contextManager, r.logger)
	adminHandler := handler.NewAdmin(r.adminService, r.logger)

	api := engine.Group("/api")

	// Session endpoints reachable without a bearer token.
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)

	// Everything below requires an authenticated user.
	authed := api.Group("")
	authed.Use(authenticate.Handler())

	authed.GET("/auth/me", authHandler.Me)

	authed.GET("/posts", postHandler.ListFeed)
	authed.POST("/posts", postHandler.Create)
	authed.DELETE("/posts/:id", postHandler.Delete)

	authed.GET("/clubs", clubHandler.List)
	authed.GET("/clubs/:id", clubHandler.Get)
	authed.GET("/clubs/:id/posts", clubHandler.Posts)
	authed.POST("/clubs/:id/join", clubHandler.Join)
	authed.POST("/clubs/:id/leave", clubHandler.Leave)

	authed.GET("/events", eventHandler.ListUpcoming)
	authed.POST("/events/:id/rsvp", eventHandler.RSVP)

	authed.GET("/users/:id", profileHandler.Get)
	authed.GET("/users/:id/avatar", profileHandler.Avatar)
	authed.PUT("/profile", profileHandler.Update)
	authed.POST("/profile/avatar", profileHandler.UploadAvatar)

	authed.POST("/messages", messageHandler.Send)
	authed.GET("/messages/:userId", messageHandler.Conversation)

	// Club management requires at least the clubAdmin role.
	clubAdmin := authed.Group("")
	clubAdmin.Use(requireRole.Handler(model.RoleClubAdmin))
	clubAdmin.POST("/clubs", clubHandler.Create)
	clubAdmin.POST("/events", eventHandler.Create)

	// User administration is superAdmin-only.
	admin := authed.Group("/admin")
	admin.Use(requireRole.Handler(model.RoleSuperAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/verify", adminHandler.VerifyUser)
	admin.PUT("/users/:id/role", adminHandler.SetRole)

	return engine
}

// health reports liveness and, when a store is wired, its reachability.
func (r *Router) health(c *gin.Context) {
	if r.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := r.pinger.Ping(ctx); err != nil {
			r.logger.Error("Health check: store ping failed", "error", err.Error())
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
