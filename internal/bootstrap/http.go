package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/journalsoc/journal-api/config"
	httpx "github.com/journalsoc/journal-api/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the HTTP server with its router and middleware.
// The caller owns the listen/shutdown lifecycle.
func NewHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Moderation:   cfg.Services.Moderation,
		Roles:        cfg.Services.Roles,
		Auth:         cfg.Services.Auth,
		Events:       cfg.Services.Events,
		CookieDomain: appCfg.HTTP.CookieDomain,
		Logger:       logger,
	}

	handler := buildHTTPHandler(logger, services)

	// Guard against empty addr to avoid listening on Go default
	addr := appCfg.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: the session event stream holds its response open
		// until the client disconnects.
		IdleTimeout: 120 * time.Second,
	}
}

// buildHTTPHandler wraps the router in middleware.
// Order: Recover -> Logging -> Router.
func buildHTTPHandler(logger *slog.Logger, services httpx.RouterServices) http.Handler {
	router := httpx.NewRouter(services)

	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger)(h)

	return h
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(cfg.Context, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
