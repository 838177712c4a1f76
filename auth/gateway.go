package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Credentials is the result of a successful login exchange. UserName is
// echoed from the caller since the login envelope does not return it.
type Credentials struct {
	Token       string
	UserID      string
	UserName    string
	Permissions []string
}

// Gateway performs the login exchange against the remote identity endpoint.
// Implementations never mutate session state; they only return data or fail.
type Gateway interface {
	Login(ctx context.Context, userName, password string) (*Credentials, error)
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type loginEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Authorization string   `json:"Authorization"`
		UserID        string   `json:"userId"`
		Permissions   []string `json:"permissions"`
	} `json:"data"`
}

var _ Gateway = (*HTTPGateway)(nil)

// HTTPGateway speaks the backend's envelope protocol over HTTP. A single
// round trip per Login, no retry; timeouts come from the injected client.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
}

// HTTPGatewayOption modifies an HTTPGateway instance.
type HTTPGatewayOption func(*HTTPGateway)

// WithHTTPClient sets the HTTP client used for the login exchange.
func WithHTTPClient(client *http.Client) HTTPGatewayOption {
	return func(g *HTTPGateway) {
		g.httpClient = client
	}
}

func NewHTTPGateway(baseURL string, options ...HTTPGatewayOption) *HTTPGateway {
	gateway := &HTTPGateway{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(gateway)
	}
	return gateway
}

// Login posts the credentials to the login endpoint and interprets the
// response envelope. Envelope status 1 yields Credentials; any other status
// yields a *RejectedError carrying the envelope's message.
func (g *HTTPGateway) Login(ctx context.Context, userName, password string) (*Credentials, error) {
	body, err := json.Marshal(loginRequest{UserName: userName, Password: password})
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPGateway.Login] encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPGateway.Login] build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPGateway.Login] login request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("[HTTPGateway.Login] login endpoint status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var envelope loginEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.Wrap(err, "[HTTPGateway.Login] decode envelope")
	}

	if envelope.Status != 1 {
		message := envelope.Message
		if message == "" {
			message = DefaultLoginFailedMessage
		}
		return nil, &RejectedError{Message: message}
	}

	return &Credentials{
		Token:       envelope.Data.Authorization,
		UserID:      envelope.Data.UserID,
		UserName:    userName,
		Permissions: envelope.Data.Permissions,
	}, nil
}
