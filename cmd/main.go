package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/campuscliq/campuscliq-server/internal/api/http/httpctx"
	"github.com/campuscliq/campuscliq-server/internal/api/http/router"
	"github.com/campuscliq/campuscliq-server/internal/config"
	"github.com/campuscliq/campuscliq-server/internal/identity"
	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/repository/postgres"
	"github.com/campuscliq/campuscliq-server/internal/sanitize"
	"github.com/campuscliq/campuscliq-server/internal/server"
	"github.com/campuscliq/campuscliq-server/internal/service"
	storage "github.com/campuscliq/campuscliq-server/internal/storage/minio"
	"github.com/campuscliq/campuscliq-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	postRepo := postgres.NewPostRepository(db)
	clubRepo := postgres.NewClubRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	sanitizer := sanitize.New()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, logger)
	authService := service.NewAuth(userRepo, tokenService, sanitizer, logger)
	postService := service.NewPost(postRepo, clubRepo, sanitizer, logger)
	clubService := service.NewClub(clubRepo, sanitizer, logger)
	eventService := service.NewEvent(eventRepo, clubRepo, sanitizer, logger)
	messageService := service.NewMessage(messageRepo, userRepo, sanitizer, logger)
	profileService := service.NewProfile(userRepo, storageClient, sanitizer, logger)
	adminService := service.NewAdmin(userRepo, tokenService, logger)

	ctxMgr := httpctx.NewManager()
	provider := buildIdentityProvider(cfg, tokenService, userRepo, logger)

	r := router.New(
		authService,
		postService,
		clubService,
		eventService,
		messageService,
		profileService,
		adminService,
		provider,
		ctxMgr,
		db,
		router.Config{
			StoreTimeout:  cfg.HTTP.StoreTimeout,
			RefreshTTL:    cfg.JWT.RefreshTTL,
			CookieSecure:  cfg.HTTP.EnableHTTPS,
			AllowedOrigin: cfg.HTTP.AllowedOrigin,
		},
		logger.Component("http"),
	)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runTokenJanitor(ctx, tokenService, logger.Component("janitor"))
	}()

	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// buildIdentityProvider wires the identity provider the configured auth
// mode asks for. Fixture mode skips token verification entirely and is
// loudly logged so it cannot sneak into production unnoticed.
func buildIdentityProvider(
	cfg *config.Config,
	tokenService *service.TokenService,
	userRepo model.UserStore,
	logger *logger.Logger,
) identity.Provider {
	if cfg.Auth.Mode == config.AuthModeFixture {
		logger.Info("AUTH FIXTURE MODE ENABLED: every request is authenticated as the fixture user",
			"email", cfg.Auth.FixtureEmail,
			"role", cfg.Auth.FixtureRole)
		return identity.NewFixture(model.User{
			ID:         uuid.New(),
			Email:      cfg.Auth.FixtureEmail,
			Name:       cfg.Auth.FixtureName,
			Role:       model.Role(cfg.Auth.FixtureRole),
			IsVerified: true,
		})
	}
	return identity.NewLive(tokenService, userRepo)
}

// runTokenJanitor purges expired refresh token rows once an hour until the
// context is cancelled.
func runTokenJanitor(ctx context.Context, tokens *service.TokenService, logger *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := tokens.PurgeExpired(ctx)
			if err != nil {
				logger.Error("failed to purge expired refresh tokens", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("purged expired refresh tokens", "deleted", deleted)
			}
		}
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
