// Package profileapi is the HTTP client for the external Profile Service.
//
// It implements domain.SyncClient: a full-record fetch, a full-record
// update (no partial patch, no concurrency token — last writer wins), and
// resume download. Transport failures, auth failures, and validation
// failures are mapped onto the domain error taxonomy so callers never see
// raw HTTP details.
package profileapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/quickhire/profile-engine/internal/domain"
	"github.com/quickhire/profile-engine/internal/observability"
)

const (
	showPath   = "/api/profile/show"
	updatePath = "/api/profile/update"
)

// Client talks to the Profile Service. The bearer token comes from the
// injected TokenSource on every call; nothing is cached from ambient state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     domain.TokenSource
}

// New constructs a Client. Timeouts beyond the client-level one are the
// caller's business via context; the engine itself never retries.
func New(baseURL string, tokens domain.TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: tokens,
	}
}

// envelope is the success wire shape of show/update.
type envelope struct {
	Profile domain.Profile `json:"profile"`
}

// Fetch loads the canonical record. A missing profile maps to
// domain.ErrNotFound so the caller can route to profile creation instead
// of surfacing an error toast.
func (c *Client) Fetch(ctx domain.Context) (domain.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, showPath, nil)
	if err != nil {
		return domain.Profile{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("op=sync.fetch: %w: %v", domain.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return domain.Profile{}, fmt.Errorf("op=sync.fetch decode: %w", domain.ErrInternal)
		}
		return env.Profile, nil
	case resp.StatusCode == http.StatusNotFound:
		return domain.Profile{}, fmt.Errorf("op=sync.fetch: %w", domain.ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.Profile{}, fmt.Errorf("op=sync.fetch: %w", domain.ErrUnauthorized)
	default:
		return domain.Profile{}, fmt.Errorf("op=sync.fetch status=%d: %w", resp.StatusCode, domain.ErrInternal)
	}
}

// Update submits the full mutable field set and returns the server's
// canonical record. Validation failures come back as *domain.ValidationError
// with the first message per field.
func (c *Client) Update(ctx domain.Context, ur domain.UpdateRequest) (domain.Profile, error) {
	body, err := json.Marshal(ur)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("op=sync.update marshal: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, updatePath, bytes.NewReader(body))
	if err != nil {
		return domain.Profile{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("op=sync.update: %w: %v", domain.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return domain.Profile{}, fmt.Errorf("op=sync.update decode: %w", domain.ErrInternal)
		}
		observability.LoggerFromContext(ctx).Info("profile update accepted",
			slog.String("candidate_code", env.Profile.CandidateCode))
		return env.Profile, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.Profile{}, fmt.Errorf("op=sync.update: %w", domain.ErrUnauthorized)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return domain.Profile{}, c.validationError(resp.Body)
	default:
		return domain.Profile{}, fmt.Errorf("op=sync.update status=%d: %w", resp.StatusCode, domain.ErrInternal)
	}
}

// validationError reconciles a 4xx body into the field-error shape.
func (c *Client) validationError(body io.Reader) error {
	var eb domain.ErrorBody
	if err := json.NewDecoder(body).Decode(&eb); err != nil {
		return &domain.ValidationError{}
	}
	return eb.Reconcile()
}

func (c *Client) newRequest(ctx domain.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("op=sync.request: %w", err)
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("op=sync.token: %w", domain.ErrUnauthorized)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
