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

	httpapi "github.com/goodluckurom/portfolio/internal/site/http"
	"github.com/goodluckurom/portfolio/internal/site/service"
	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/internal/site/store/drivers/sqlite"
	"github.com/goodluckurom/portfolio/pkg/routex"
	"github.com/goodluckurom/portfolio/pkg/sessionx"
	"github.com/goodluckurom/portfolio/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application wires the site's dependencies together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	codec *sessionx.Codec

	authService    *service.AuthService
	userService    *service.UserService
	blogService    *service.BlogService
	projectService *service.ProjectService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "portfolio-site",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// The signing secret is the one piece of config with no sane default.
	codec, err := sessionx.NewCodec(cfg.SessionSecret)
	if err != nil {
		return nil, fmt.Errorf("session secret: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("site starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down site...")

	// Give outstanding requests a deadline for completion.
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("site stopped")
	return nil
}

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

	// A fresh database with no admin email configured can never produce an
	// ADMIN account; call it out early rather than at first sign-up.
	if empty, err := db.Users().IsEmpty(context.Background()); err == nil && empty && app.cfg.AdminEmail == "" {
		app.logger.Warn("no users exist and ADMIN_EMAIL is unset; all registrations will be plain users")
	}

	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		Codec:      app.codec,
		AdminEmail: app.cfg.AdminEmail,
	}
	app.userService = &service.UserService{Store: app.db}
	app.blogService = &service.BlogService{Store: app.db}
	app.projectService = &service.ProjectService{Store: app.db}
}

func (app *Application) initHTTP() error {
	classifier, err := routex.NewClassifier(httpapi.DefaultRouteConfig())
	if err != nil {
		return fmt.Errorf("failed to compile route table: %w", err)
	}

	router := httpapi.NewRouter(
		&sessionx.Resolver{Codec: app.codec},
		classifier,
		sessionx.Jar{Secure: app.cfg.SecureCookies()},
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.BlogService = app.blogService
	router.ProjectService = app.projectService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
