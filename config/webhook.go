package config

import "time"

// ReviewWebhookConfig controls the outbound notification sent when a post
// first transitions to reviewed. Disabled unless a URL is configured.
type ReviewWebhookConfig struct {
	// URL is the endpoint receiving the approval payload. Empty disables delivery.
	URL string `env:"URL" envDefault:""`

	// Expression is an optional JMESPath expression applied to the default
	// payload before delivery, for endpoints that expect a different shape.
	Expression string `env:"EXPRESSION" envDefault:""`

	// Timeout bounds each delivery attempt.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether webhook delivery is configured.
func (w ReviewWebhookConfig) Enabled() bool {
	return w.URL != ""
}

// Sanitize applies guardrails to webhook configuration values.
func (w *ReviewWebhookConfig) Sanitize() {
	if w.Timeout <= 0 {
		w.Timeout = 10 * time.Second
	}
	if w.Timeout > time.Minute {
		w.Timeout = time.Minute
	}
}
