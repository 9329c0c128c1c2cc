// Package snipcart provides the outbound client used to corroborate webhook request tokens against the Snipcart API.
package snipcart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bitego/snipcart-webhook-app/internal/helpers"
	"github.com/bitego/snipcart-webhook-app/internal/metrics"
	"github.com/pkg/errors"
)

const (
	// DefaultAPIBase is the public Snipcart API root.
	DefaultAPIBase = "https://app.snipcart.com/api"
	// DefaultValidationPath is the request validation resource under the API root.
	DefaultValidationPath = "requestvalidation"
	// DefaultHandshakeTimeout bounds the synchronous token handshake. A timed-out
	// handshake rejects the request; the pipeline never fails open.
	DefaultHandshakeTimeout = 5 * time.Second
)

// Option is a function that applies an option to a Client.
type Option func(*Client)

// WithAPIBase overrides the Snipcart API root.
func WithAPIBase(base string) Option {
	return func(c *Client) {
		c.apiBase = base
	}
}

// WithValidationPath overrides the request validation resource path.
func WithValidationPath(path string) Option {
	return func(c *Client) {
		c.validationPath = path
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the handshake timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger instance for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client performs server-to-server calls against the Snipcart API.
type Client struct {
	apiBase        string
	validationPath string
	httpClient     *http.Client
	logger         *slog.Logger
}

// NewClient creates a Snipcart API client with sane defaults.
func NewClient(opts ...Option) *Client {
	_inst := &Client{
		apiBase:        DefaultAPIBase,
		validationPath: DefaultValidationPath,
		httpClient:     &http.Client{Timeout: DefaultHandshakeTimeout},
		logger:         helpers.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(_inst)
	}
	return _inst
}

type validationResponse struct {
	Token string `json:"token"`
}

// ValidateToken corroborates a presented request token by fetching it back
// from the Snipcart request validation endpoint. Any transport failure,
// non-200 status, non-JSON body or token mismatch is an error.
func (c *Client) ValidateToken(ctx context.Context, token string) error {
	url := fmt.Sprintf("%s/%s/%s", c.apiBase, c.validationPath, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build handshake request")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("performing token handshake...", slog.String("url", url))
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.HandshakeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return errors.Wrap(err, "handshake request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("handshake returned status %d", resp.StatusCode)
	}

	var vr validationResponse
	if err = json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return errors.Wrap(err, "handshake returned a non-JSON body")
	}
	if vr.Token == "" || vr.Token != token {
		return errors.New("handshake token mismatch")
	}
	return nil
}
