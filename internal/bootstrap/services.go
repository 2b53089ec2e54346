package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/journalsoc/journal-api/config"
	"github.com/journalsoc/journal-api/internal/data"
	"github.com/journalsoc/journal-api/internal/service"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Moderation *service.ModerationService
	Roles      *service.RoleService
	Auth       *service.AuthService
	Events     *service.SessionEvents
	Notifier   *service.ReviewWebhookService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories and services for the application.
func NewServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps missing config")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("service deps missing database")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	postRepo := data.NewPostRepo(deps.DB)
	profileRepo := data.NewProfileRepo(deps.DB)

	roleSvc := service.NewRoleService(service.RoleServiceOptions{
		Profiles: profileRepo,
		Logger:   logger,
	})

	notifier, err := buildReviewNotifier(deps.Config.ReviewWebhook, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	moderationOpts := service.ModerationServiceOptions{
		Posts:    postRepo,
		Profiles: profileRepo,
		Logger:   logger,
	}
	if notifier != nil {
		moderationOpts.Notifier = notifier
	}
	moderationSvc := service.NewModerationService(moderationOpts)

	events := service.NewSessionEvents()

	authSvc := BuildAuthService(AuthConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Profiles:    roleSvc,
		Events:      events,
		Logger:      logger,
	})

	return ServiceContainer{
		Moderation: moderationSvc,
		Roles:      roleSvc,
		Auth:       authSvc,
		Events:     events,
		Notifier:   notifier,
	}, nil
}

// buildReviewNotifier builds the approval webhook when one is configured.
func buildReviewNotifier(cfg config.ReviewWebhookConfig, logger *slog.Logger) (*service.ReviewWebhookService, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	notifier, err := service.NewReviewWebhookService(service.ReviewWebhookOptions{
		URL:        cfg.URL,
		Expression: cfg.Expression,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("review webhook enabled", "url", cfg.URL)
	return notifier, nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and blocks until a shutdown
// signal arrives or the server fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := NewHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down services...")
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  server,
			Logger:  logger,
		})
	})

	return g.Wait()
}
