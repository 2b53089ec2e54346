package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/journalsoc/journal-api/internal/domain/model"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ReviewWebhookOptions groups configuration for ReviewWebhookService.
type ReviewWebhookOptions struct {
	URL        string
	Expression string // optional JMESPath shaping the outgoing payload
	HTTPClient *http.Client
	Evaluator  JMESPathEvaluator
}

// ReviewWebhookService posts a JSON document to a configured endpoint when a
// post is approved. It implements ReviewNotifier; delivery failures propagate
// to the moderation service, which logs them without failing the approval.
type ReviewWebhookService struct {
	url    string
	expr   string
	client *http.Client
	jems   JMESPathEvaluator
}

// NewReviewWebhookService constructs the service, validating the JMESPath
// expression up front so a misconfiguration fails at startup, not on the
// first approval.
func NewReviewWebhookService(opts ReviewWebhookOptions) (*ReviewWebhookService, error) {
	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid webhook URL scheme: %s", u.Scheme)
	}
	if strings.TrimSpace(u.Host) == "" {
		return nil, errors.New("invalid webhook URL: missing host")
	}

	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	if err := jems.Validate(opts.Expression); err != nil {
		return nil, fmt.Errorf("invalid webhook JMESPath expression: %w", err)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &ReviewWebhookService{
		url:    opts.URL,
		expr:   opts.Expression,
		client: client,
		jems:   jems,
	}, nil
}

// NotifyApproved builds the payload for the approved post, shapes it through
// the configured expression when present, and POSTs it as JSON.
func (s *ReviewWebhookService) NotifyApproved(ctx context.Context, post *model.Post) error {
	payload, err := s.BuildPayload(post)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// BuildPayload returns the document that would be delivered for post.
// Exposed for configuration validation and tests.
func (s *ReviewWebhookService) BuildPayload(post *model.Post) (any, error) {
	doc := map[string]any{
		"event": "post_approved",
		"post": map[string]any{
			"id":          post.ID,
			"title":       post.Title,
			"author_id":   post.AuthorID,
			"approved_at": post.UpdatedAt.UTC().Format(time.RFC3339),
		},
	}
	if strings.TrimSpace(s.expr) == "" {
		return doc, nil
	}

	shaped, err := s.jems.Evaluate(s.expr, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluate webhook expression: %w", err)
	}
	return shaped, nil
}
