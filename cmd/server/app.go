package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dkratzer/taskboard-api/internal/api"
	apiMiddleware "github.com/dkratzer/taskboard-api/internal/api/middleware"
	"github.com/dkratzer/taskboard-api/internal/config"
	"github.com/dkratzer/taskboard-api/internal/platform/mailer"
	"github.com/dkratzer/taskboard-api/internal/platform/postgres"
	"github.com/dkratzer/taskboard-api/internal/service"
	"github.com/dkratzer/taskboard-api/internal/service/auth"
)

// application bundles the long-lived dependencies so the router and server
// setup can reach them without globals.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService     auth.JWTService
	userService    service.UserService
	projectService service.ProjectService
	taskService    service.TaskService
}

// newApplication wires the stores, auth primitives, and services together.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	projectStore := postgres.NewPostgresProjectStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	hasher := auth.NewBcryptHasher()

	// The mailer is optional; without an SMTP host registration simply
	// skips the welcome mail.
	var welcomeMailer service.WelcomeMailer
	if cfg.Mail.Host != "" {
		welcomeMailer = mailer.New(cfg.Mail)
	}

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		jwtService:     jwtService,
		userService:    service.NewUserService(userStore, hasher, hasher, welcomeMailer, db, logger),
		projectService: service.NewProjectService(projectStore, taskStore, userStore, db, logger),
		taskService:    service.NewTaskService(taskStore, projectStore, userStore, db, logger),
	}, nil
}

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(apiMiddleware.CORS)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	projectHandler := api.NewProjectHandler(app.projectService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Project endpoints
			r.Post("/projects", projectHandler.Create)
			r.Get("/projects", projectHandler.List)
			r.Get("/projects/{id}", projectHandler.Get)
			r.Delete("/projects/{id}", projectHandler.Delete)
			r.Get("/projects/{id}/progress", projectHandler.Progress)

			// Task endpoints
			r.Post("/tasks/project/{projectId}", taskHandler.Create)
			r.Get("/tasks/project/{projectId}", taskHandler.List)
			r.Get("/tasks/{taskId}", taskHandler.Get)
			r.Put("/tasks/{taskId}", taskHandler.Update)
			r.Put("/tasks/{taskId}/complete", taskHandler.Complete)
			r.Delete("/tasks/{taskId}", taskHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

// startHTTPServer starts the HTTP server with graceful shutdown support.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: router,
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error("server failed", "error", err)
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		app.logger.Info("shutting down server...")
	case <-serverCtx.Done():
		app.logger.Info("server context canceled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}

	app.logger.Info("server shutdown completed")
	return nil
}
