package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the production Graph endpoint.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

const (
	maxRetries     = 3
	defaultBackoff = time.Second
)

// Client wraps the Graph REST surface used by the console commands: drive
// listing and transfer, mailbox listing and send, and the /me profile.
// A Client is an explicit session object; callers construct one per signed-in
// account rather than sharing a package-level handle.
type Client struct {
	http    *resty.Client
	source  oauth2.TokenSource
	backoff time.Duration
}

// NewClient builds a client for the production endpoint.
func NewClient(source oauth2.TokenSource) *Client {
	return NewClientWithBaseURL(source, DefaultBaseURL)
}

// NewClientWithBaseURL is split out so tests can point the client at an
// httptest server.
func NewClientWithBaseURL(source oauth2.TokenSource, baseURL string) *Client {
	hc := resty.New()
	hc.SetDisableWarn(true)
	hc.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	hc.SetHeader("Accept", "application/json")

	c := &Client{
		http:    hc,
		source:  source,
		backoff: defaultBackoff,
	}

	hc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		// Graph correlates calls by client-request-id; one fresh ID per call.
		req.SetHeader("client-request-id", uuid.NewString())

		if c.source != nil {
			tok, err := c.source.Token()
			if err != nil {
				return fmt.Errorf("failed to obtain access token: %w", err)
			}

			req.SetAuthToken(tok.AccessToken)
		}

		return nil
	})

	return c
}

// Token returns the current access token, refreshing it if needed.
func (c *Client) Token() (*oauth2.Token, error) {
	if c.source == nil {
		return nil, fmt.Errorf("no token source configured")
	}

	tok, err := c.source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	return tok, nil
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/me", nil, &user); err != nil {
		return nil, fmt.Errorf("unable to get profile: %w", err)
	}

	return &user, nil
}

// Error is the failure payload Graph returns alongside a non-2xx status.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("graph: %s (%s, HTTP %d)", e.Message, e.Code, e.StatusCode)
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// apiError decodes the Graph error envelope, falling back to the HTTP status
// when the body is not the documented shape.
func apiError(status int, body []byte) error {
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Code != "" {
		return &Error{StatusCode: status, Code: payload.Error.Code, Message: payload.Error.Message}
	}

	return &Error{StatusCode: status, Code: "unknownError", Message: http.StatusText(status)}
}

// retryable reports whether a status is worth another attempt: throttling
// and transient server errors only.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}

// getJSON issues a GET with exponential backoff and decodes the response
// into out. url may be a path relative to the base URL or an absolute
// @odata.nextLink.
func (c *Client) getJSON(ctx context.Context, url string, query map[string]string, out any) error {
	return c.doJSON(ctx, http.MethodGet, url, query, nil, out)
}

// postJSON issues a POST with a JSON body; out may be nil for calls that
// return no payload.
func (c *Client) postJSON(ctx context.Context, url string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, url, nil, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, url string, query map[string]string, body, out any) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff * time.Duration(1<<uint(attempt-1))
			slog.Debug("retrying graph call", "method", method, "url", url, "delay", delay, "attempt", attempt+1)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		req := c.http.R().SetContext(ctx)
		if len(query) > 0 {
			req.SetQueryParams(query)
		}

		if body != nil {
			req.SetHeader("Content-Type", "application/json")
			req.SetBody(body)
		}

		resp, err := req.Execute(method, url)
		if err != nil {
			// Transport-level failure; worth another attempt.
			lastErr = err

			continue
		}

		if resp.IsSuccess() {
			if out == nil || len(resp.Body()) == 0 {
				return nil
			}

			if err := json.Unmarshal(resp.Body(), out); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}

			return nil
		}

		apiErr := apiError(resp.StatusCode(), resp.Body())
		if !retryable(resp.StatusCode()) {
			return apiErr
		}

		lastErr = apiErr
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", maxRetries, lastErr)
}
