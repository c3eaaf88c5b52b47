package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/momentree/momentree/internal/member/http"
	"github.com/momentree/momentree/internal/member/identity"
	"github.com/momentree/momentree/internal/member/media"
	"github.com/momentree/momentree/internal/member/push"
	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/internal/member/store"
	redisstore "github.com/momentree/momentree/internal/member/store/drivers/redis"
	"github.com/momentree/momentree/internal/member/store/drivers/sqlite"
	"github.com/momentree/momentree/pkg/jwtx"
	"github.com/momentree/momentree/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the member service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	sessions *redisstore.Sessions
	codec    *jwtx.Codec

	// Services
	authService         *service.AuthService
	memberService       *service.MemberService
	postService         *service.PostService
	feedService         *service.FeedService
	mediaService        *service.MediaService
	notifyService       *service.NotifyService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "momentree",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	codec, err := jwtx.NewCodec([]byte(cfg.TokenSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.sessions.Close()
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()
	if app.cfg.FeedURL != "" {
		app.feedService.Start()
	}

	app.logger.Info("member service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down member service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop background workers
	if app.cfg.FeedURL != "" {
		app.feedService.Stop()
	}
	app.housekeepingService.Stop()

	// Close the session store connection pool
	if err := app.sessions.Close(); err != nil {
		app.logger.Error("error closing session store", "error", err)
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("member service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSessions connects the revocable refresh-session store.
func (app *Application) initSessions() error {
	sessions, err := redisstore.NewSessions(app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	app.sessions = sessions

	app.logger.Info("session store connected", "addr", app.cfg.RedisAddr)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	strategies := identity.NewRegistry(
		identity.NewKakao(identity.KakaoConfig{}),
		identity.NewNaver(identity.NaverConfig{}),
		identity.NewGoogle(identity.GoogleConfig{}),
	)

	app.authService = &service.AuthService{
		Codec:      app.codec,
		Members:    app.db.Members(),
		Sessions:   app.sessions,
		Strategies: strategies,
		AccessTTL:  app.cfg.AccessTTL,
		RefreshTTL: app.cfg.RefreshTTL,
	}

	app.memberService = &service.MemberService{Members: app.db.Members()}
	app.postService = &service.PostService{Posts: app.db.Posts()}

	// The feed service always serves reads; the importer only starts when a
	// feed URL is configured (see Run).
	app.feedService = service.NewFeedService(
		app.db.FeedItems(),
		app.logger,
		app.cfg.FeedURL,
		app.cfg.FeedInterval,
		nil,
	)
	if app.cfg.FeedURL == "" {
		app.logger.Info("feed importer disabled (FEED_URL not set)")
	}

	var sender push.Sender = push.Nop{}
	if app.cfg.PushGatewayURL != "" {
		sender = push.NewWebhook(app.cfg.PushGatewayURL)
	} else {
		app.logger.Info("push delivery disabled (PUSH_GATEWAY_URL not set)")
	}
	app.notifyService = &service.NotifyService{
		Devices: app.db.Devices(),
		Sender:  sender,
		Logger:  app.logger,
	}

	if app.cfg.S3Bucket != "" {
		mediaStore, err := media.NewS3(media.S3Config{
			Region:          app.cfg.S3Region,
			Bucket:          app.cfg.S3Bucket,
			AccessKeyID:     app.cfg.S3AccessKeyID,
			SecretAccessKey: app.cfg.S3SecretAccessKey,
			Endpoint:        app.cfg.S3Endpoint,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize media store: %w", err)
		}
		app.mediaService = &service.MediaService{Store: mediaStore}
	} else {
		app.logger.Info("media uploads disabled (S3_BUCKET not set)")
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db.Devices(),
		app.db.FeedItems(),
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.FeedRetention,
	)

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.sessions,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.MemberService = app.memberService
	router.PostService = app.postService
	router.FeedService = app.feedService
	router.MediaService = app.mediaService
	router.NotifyService = app.notifyService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
