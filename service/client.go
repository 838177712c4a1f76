// Package service is the authenticated request pipeline for the device
// backend: every outbound request carries the current session token, every
// response is decoded from the shared envelope, and an unauthenticated signal
// from the backend is routed to the session controller's reset path.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/devicepulse/console/internal/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// TokenSource supplies the current session token, empty when logged out.
// *session.State satisfies it.
type TokenSource interface {
	Token() string
}

// Notifier receives the user-facing error message for failed requests.
type Notifier interface {
	Error(message string)
}

// Client sends envelope requests to the backend. Construct with NewClient.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	notifier       Notifier
	onUnauthorized func()
	limiter        *rate.Limiter
	logger         zerolog.Logger
}

// Option modifies a Client instance.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client; its timeout policy is the
// only timeout applied.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTokenSource injects the session token into every outbound request.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithNotifier surfaces request failures to the user.
func WithNotifier(notifier Notifier) Option {
	return func(c *Client) {
		c.notifier = notifier
	}
}

// WithOnUnauthorized sets the hook invoked when the backend reports the
// session as unauthenticated. Wire this to the session controller's reset.
func WithOnUnauthorized(hook func()) Option {
	return func(c *Client) {
		c.onUnauthorized = hook
	}
}

// WithRateLimit caps outbound requests client-side. Off by default.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the client's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// do sends one envelope request. The backend expects a JSON body on every
// method, GET included. A status-1 envelope has its data unmarshalled into
// out; any other outcome is surfaced to the notifier and returned as an
// error.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "[Client.do] rate limit wait")
		}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.do] encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "[Client.do] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", token)
		}
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.notifyError(DefaultRequestFailedMessage)
		return errors.Wrapf(err, "[Client.do] %s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthenticated
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.notifyError(DefaultRequestFailedMessage)
		return errors.Errorf("[Client.do] %s %s: backend status %d", method, path, resp.StatusCode)
	}

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.notifyError(DefaultRequestFailedMessage)
		return errors.Wrapf(err, "[Client.do] %s %s: decode envelope", method, path)
	}

	if envelope.Status != StatusOK {
		message := utils.Value(envelope.Message)
		if message == "" {
			message = DefaultRequestFailedMessage
		}
		c.notifyError(message)
		return &EnvelopeError{Status: envelope.Status, Message: message}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.Wrapf(err, "[Client.do] %s %s: decode data", method, path)
		}
	}
	return nil
}

func (c *Client) notifyError(message string) {
	if c.notifier != nil {
		c.notifier.Error(message)
	}
}
