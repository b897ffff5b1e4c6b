package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/jobboard/internal/logger"
	"github.com/dtroode/jobboard/internal/model"
)

const (
	RequestIDHeader     = "X-Request-ID"
	AuthorizationHeader = "Authorization"

	maxBodySize = 1 << 20
)

// ErrLoginRejected is returned when the backend refuses the credentials.
var ErrLoginRejected = errors.New("login rejected")

// HTTPClient resolves identities through the REST endpoints of the backend.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

var _ model.IdentityFetcher = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the backend at baseURL.
// If httpClient is nil, http.DefaultClient is used.
func NewHTTPClient(baseURL string, httpClient *http.Client, logger *logger.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchIdentity calls GET /auth/me. Any failure, including a non-200 status or a
// body without a user, is reported as model.ErrIdentityFetch.
func (c *HTTPClient) FetchIdentity(ctx context.Context, token string) (model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: new request: %v", model.ErrIdentityFetch, err)
	}
	req.Header.Set(AuthorizationHeader, "Bearer "+token)
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: get: %v", model.ErrIdentityFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("Identity client: me request rejected", "status", resp.StatusCode)
		return model.Identity{}, fmt.Errorf("%w: unexpected status %d", model.ErrIdentityFetch, resp.StatusCode)
	}

	var body MeResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return model.Identity{}, fmt.Errorf("%w: decode: %v", model.ErrIdentityFetch, err)
	}
	if body.User == nil || body.User.ID == "" {
		return model.Identity{}, fmt.Errorf("%w: response has no user", model.ErrIdentityFetch)
	}

	return body.User.Identity(), nil
}

// Login exchanges credentials for a bearer token via POST /auth/login.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrLoginRejected, resp.StatusCode)
	}

	var body LoginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if body.Token == "" {
		return "", fmt.Errorf("%w: empty token", ErrLoginRejected)
	}

	return body.Token, nil
}
