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

	httpapi "github.com/portside-dev/portside/internal/api/http"
	"github.com/portside-dev/portside/internal/api/mail"
	"github.com/portside-dev/portside/internal/api/service"
	"github.com/portside-dev/portside/internal/api/store"
	"github.com/portside-dev/portside/internal/api/store/drivers/postgres"
	"github.com/portside-dev/portside/internal/api/store/drivers/sqlite"
	"github.com/portside-dev/portside/pkg/cryptox"
	"github.com/portside-dev/portside/pkg/jwtx"
	"github.com/portside-dev/portside/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the API service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	mailer mail.Mailer

	// Services
	tokenService      *service.TokenService
	credentialService *service.CredentialService
	userService       *service.UserService
	itemService       *service.ItemService
	recoveryService   *service.RecoveryService
	bootstrapService  *service.BootstrapService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// The first superuser is seeded here so the instance is usable as soon as New
// returns.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "portside-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, verifier, err := InitTokenSecret(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initMailer()
	app.initServices(signer, verifier)
	app.initHTTP()

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.bootstrapService.EnsureFirstSuperuser(ctx); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed first superuser: %w", err)
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("api service starting", "port", app.cfg.Port, "version", BuildVersion)

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

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down api service...")

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

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api service stopped")
	return nil
}

// initDatabase initializes the configured database and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		if app.cfg.DatabaseURL == "" {
			return fmt.Errorf("API_DATABASE_URL is required for the postgres driver")
		}
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	case "sqlite":
		db, err = sqlite.NewStore("file:" + app.cfg.DatabaseFile)
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initMailer picks the SMTP mailer when a relay is configured and falls back
// to logging outgoing mail otherwise.
func (app *Application) initMailer() {
	if app.cfg.SMTPHost == "" {
		app.logger.Info("no SMTP relay configured, outgoing mail goes to the log")
		app.mailer = mail.NewLogMailer(app.logger)
		return
	}

	app.mailer = mail.NewSMTPMailer(
		app.cfg.SMTPHost,
		app.cfg.SMTPPort,
		app.cfg.SMTPUser,
		app.cfg.SMTPPassword,
		app.cfg.SMTPFrom,
	)
	app.logger.Info("SMTP mailer configured", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)
}

// initServices initializes all business logic services
func (app *Application) initServices(signer jwtx.Signer, verifier jwtx.Verifier) {
	app.tokenService = &service.TokenService{
		Signer:      signer,
		Verifier:    verifier,
		Store:       app.db,
		Issuer:      app.cfg.Issuer,
		AccessTTL:   app.cfg.AccessTTL,
		RecoveryTTL: app.cfg.RecoveryTTL,
	}

	app.credentialService = &service.CredentialService{Store: app.db}
	app.userService = &service.UserService{
		Store:            app.db,
		OpenRegistration: app.cfg.OpenRegistration,
	}
	app.itemService = &service.ItemService{Store: app.db}
	app.recoveryService = &service.RecoveryService{
		Tokens:      app.tokenService,
		Store:       app.db,
		Mailer:      app.mailer,
		ProjectName: app.cfg.ProjectName,
		FrontendURL: app.cfg.FrontendURL,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:    app.db,
		Email:    app.cfg.FirstSuperuserEmail,
		Password: app.cfg.FirstSuperuserPassword,
		FullName: app.cfg.FirstSuperuserName,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.TokenService = app.tokenService
	router.CredentialService = app.credentialService
	router.UserService = app.userService
	router.ItemService = app.itemService
	router.RecoveryService = app.recoveryService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
