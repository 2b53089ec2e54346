package bootstrap

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/journalsoc/journal-api/config"
)

func TestNewServicesRequiresConfigAndDatabase(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		deps ServiceDeps
	}{
		{
			name: "missing config",
			deps: ServiceDeps{Logger: logger},
		},
		{
			name: "missing database",
			deps: ServiceDeps{Config: &config.AppConfig{}, Logger: logger},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewServices(tt.deps); err == nil {
				t.Fatal("NewServices() error = nil, want error")
			}
		})
	}
}

func TestBuildReviewNotifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		cfg     config.ReviewWebhookConfig
		wantNil bool
		wantErr bool
	}{
		{
			name:    "disabled when URL empty",
			cfg:     config.ReviewWebhookConfig{},
			wantNil: true,
		},
		{
			name: "enabled with valid URL",
			cfg: config.ReviewWebhookConfig{
				URL:     "https://hooks.example.com/review",
				Timeout: 5 * time.Second,
			},
		},
		{
			name: "invalid URL scheme",
			cfg: config.ReviewWebhookConfig{
				URL:     "ftp://hooks.example.com/review",
				Timeout: 5 * time.Second,
			},
			wantErr: true,
		},
		{
			name: "invalid expression",
			cfg: config.ReviewWebhookConfig{
				URL:        "https://hooks.example.com/review",
				Expression: "[invalid",
				Timeout:    5 * time.Second,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier, err := buildReviewNotifier(tt.cfg, logger)
			if tt.wantErr {
				if err == nil {
					t.Fatal("buildReviewNotifier() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildReviewNotifier() error = %v", err)
			}
			if (notifier == nil) != tt.wantNil {
				t.Fatalf("buildReviewNotifier() = %v, want nil: %v", notifier, tt.wantNil)
			}
		})
	}
}

func TestNewHTTPServerDefaultsAddr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := NewHTTPServer(&HTTPServerConfig{
		Config:   &config.AppConfig{},
		Services: ServiceContainer{},
		Logger:   logger,
	})
	if server == nil {
		t.Fatal("NewHTTPServer() = nil")
	}
	if server.Addr != ":8080" {
		t.Fatalf("server.Addr = %q, want %q", server.Addr, ":8080")
	}
	if server.Handler == nil {
		t.Fatal("server.Handler = nil")
	}
}
