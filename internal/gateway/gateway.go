// Package gateway is the single choke point for every backend call. It owns
// bearer-token attachment, endpoint failover, and session-expiry recovery.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	apperrors "spendtrack/internal/errors"
	"spendtrack/internal/notify"
	"spendtrack/internal/session"
)

const refreshPath = "/auth/refresh-token"

// publicPaths do not require a bearer credential.
var publicPaths = []string{"/auth/login", "/auth/register"}

// Request describes one logical backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is JSON-encoded when non-nil, unless RawBody is set.
	Body any

	// RawBody and ContentType override Body for non-JSON payloads such as
	// multipart uploads. RawBody is read in full before the first dispatch so
	// failover and the refresh resend can replay the request.
	RawBody     io.Reader
	ContentType string

	// Public marks a path that must be sent without a credential.
	Public bool
}

// Response is the verbatim outcome of a successful (2xx) call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Options configures a Client.
type Options struct {
	// Endpoints is the ordered candidate list of backend base URLs. At least
	// one is required.
	Endpoints []string

	// Timeout bounds each attempt. Zero means 15s.
	Timeout time.Duration

	Sessions session.Store
	Notifier notify.Notifier
	Logger   *zap.SugaredLogger

	// OnSessionExpired is invoked after a forced logout, with a human-readable
	// reason. The presentation layer uses it to return to the login entry
	// point. May be nil.
	OnSessionExpired func(reason string)

	// HTTPClient overrides the transport, for tests. When set, Timeout is
	// ignored.
	HTTPClient *http.Client
}

// Client dispatches requests against the active endpoint candidate, advancing
// to the next candidate on network-level failure and refreshing the session
// token at most once per originating request on 401.
type Client struct {
	endpoints []string
	http      *http.Client
	sessions  session.Store
	notifier  notify.Notifier
	log       *zap.SugaredLogger
	onExpired func(reason string)

	mu     sync.Mutex
	active int

	// refresh de-duplicates concurrent token refreshes so a storm of 401s
	// produces a single refresh call.
	refresh singleflight.Group
}

// New creates a Client. Panics if no endpoint candidates are given; that is a
// programming error, not a runtime condition.
func New(opts Options) *Client {
	if len(opts.Endpoints) == 0 {
		panic("gateway: at least one endpoint candidate is required")
	}
	endpoints := make([]string, len(opts.Endpoints))
	for i, e := range opts.Endpoints {
		endpoints[i] = strings.TrimRight(e, "/")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Client{
		endpoints: endpoints,
		http:      httpClient,
		sessions:  opts.Sessions,
		notifier:  opts.Notifier,
		log:       log,
		onExpired: opts.OnSessionExpired,
	}
}

// ActiveEndpoint returns the base URL currently in use.
func (c *Client) ActiveEndpoint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoints[c.active]
}

// advanceFrom moves the active index past from, unless another request
// already advanced it. Returns false when the candidate list is exhausted.
func (c *Client) advanceFrom(from int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active > from {
		return true
	}
	if c.active >= len(c.endpoints)-1 {
		return false
	}
	c.active++
	c.log.Warnw("switching to fallback backend", "endpoint", c.endpoints[c.active])
	return true
}

// Do sends a request through the failover and refresh pipeline.
//
// Guarantees: at most len(endpoints) dispatch attempts due to failover and at
// most one resend due to token refresh per call. Network errors surface as
// KindNetworkUnavailable once candidates are exhausted; an unrecoverable 401
// forces a logout and surfaces as KindAuthRejected; other HTTP errors are
// classified and returned without retry.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	// A raw body reader is one-shot; buffer it so every attempt sends the
	// full payload.
	var rawBody []byte
	if req.RawBody != nil {
		b, err := io.ReadAll(req.RawBody)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		rawBody = b
		req.RawBody = nil
	}

	refreshed := false

	for {
		c.mu.Lock()
		attemptIdx := c.active
		base := c.endpoints[attemptIdx]
		c.mu.Unlock()

		resp, err := c.dispatch(ctx, base, req, rawBody)
		if err != nil {
			// No response received: connection refused, timeout, DNS failure.
			if ctx.Err() != nil {
				return nil, apperrors.Wrap(apperrors.ErrBackendUnreachable, ctx.Err())
			}
			if c.advanceFrom(attemptIdx) {
				continue
			}
			c.log.Errorw("all backend endpoints unreachable", "error", err)
			c.notifier.Error("Backend services are currently unavailable. Please try again later.")
			return nil, apperrors.Wrap(apperrors.ErrBackendUnreachable, err)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		if resp.StatusCode == http.StatusUnauthorized && !req.Public && req.Path != refreshPath {
			if !refreshed {
				refreshed = true
				if err := c.refreshToken(ctx); err != nil {
					return nil, err
				}
				// Resend exactly once with the replaced credential.
				continue
			}
			// Second 401 after a successful refresh: escalate directly.
			c.ForceLogout("Your session has expired. Please login again.")
			return nil, apperrors.WithStatus(apperrors.ErrAuthRejected, "Authentication failed", resp.StatusCode)
		}

		return nil, c.statusError(req, resp)
	}
}

// dispatch builds and sends one HTTP request against the given base URL.
// rawBody is the pre-buffered raw payload, nil when the request carries none.
func (c *Client) dispatch(ctx context.Context, base string, req Request, rawBody []byte) (*Response, error) {
	var body io.Reader
	contentType := ""
	switch {
	case rawBody != nil:
		body = bytes.NewReader(rawBody)
		contentType = req.ContentType
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	u := base + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if !req.Public {
		c.attachBearer(httpReq, req.Path)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       respBody,
	}, nil
}

// attachBearer sets the Authorization header from the stored session. A
// missing token on a protected path is deliberately non-fatal: the request
// proceeds and the backend stays authoritative.
func (c *Client) attachBearer(httpReq *http.Request, path string) {
	sess, err := c.sessions.Current()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			c.log.Errorw("reading session", "error", err)
		}
		c.log.Warnw("no auth token available for protected endpoint", "path", path)
		return
	}
	if sess.Token == "" {
		c.log.Warnw("no auth token available for protected endpoint", "path", path)
		return
	}
	httpReq.Header.Set("Authorization", "Bearer "+sess.Token)
}

// refreshToken exchanges the current token for a fresh one, persisting it
// into the session. Concurrent callers share a single in-flight refresh. Any
// failure forces a logout and returns KindAuthRejected.
func (c *Client) refreshToken(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		sess, err := c.sessions.Current()
		if err != nil || sess.Token == "" {
			return nil, fmt.Errorf("no token available for refresh")
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ActiveEndpoint()+refreshPath, nil)
		if err != nil {
			return nil, fmt.Errorf("creating refresh request: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+sess.Token)
		httpReq.Header.Set("Accept", "application/json")

		httpResp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("refreshing token: %w", err)
		}
		defer func() { _ = httpResp.Body.Close() }()

		if httpResp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("refreshing token: unexpected status %d", httpResp.StatusCode)
		}

		var result struct {
			Token string `json:"token"`
			Data  struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decoding refresh response: %w", err)
		}
		token := result.Token
		if token == "" {
			token = result.Data.Token
		}
		if token == "" {
			return nil, fmt.Errorf("no token received in refresh response")
		}

		if err := c.sessions.SetToken(token); err != nil {
			return nil, fmt.Errorf("persisting refreshed token: %w", err)
		}
		c.log.Infow("token refreshed")
		return nil, nil
	})
	if err != nil {
		c.log.Warnw("token refresh failed", "error", err)
		c.ForceLogout("Your session has expired. Please login again.")
		return apperrors.Wrap(apperrors.ErrAuthRejected, err)
	}
	return nil
}

// ForceLogout unconditionally clears the session and signals the presentation
// layer to return to the login entry point. Safe to call when no session
// exists.
func (c *Client) ForceLogout(reason string) {
	if err := c.sessions.Clear(); err != nil {
		c.log.Errorw("clearing session", "error", err)
	}
	c.notifier.Error(reason)
	if c.onExpired != nil {
		c.onExpired(reason)
	}
}

// statusError classifies a non-2xx response that is not subject to retry.
func (c *Client) statusError(req Request, resp *Response) error {
	message := serverMessage(resp.Body)

	switch {
	case resp.StatusCode >= 500:
		if message == "" {
			message = fmt.Sprintf("The server encountered an error (status %d)", resp.StatusCode)
		}
		return apperrors.WithStatus(apperrors.ErrServerFault, message, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized && !req.Public:
		// 401 outside the refresh flow carries no recovery.
		if message == "" {
			message = "Authentication failed"
		}
		return apperrors.WithStatus(apperrors.ErrAuthRejected, message, resp.StatusCode)
	default:
		if message == "" {
			message = fmt.Sprintf("Request to %s failed with status %d", req.Path, resp.StatusCode)
		}
		return apperrors.WithStatus(apperrors.ErrValidation, message, resp.StatusCode)
	}
}

// serverMessage extracts the structured message from an error response body.
func serverMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}

// IsPublicPath reports whether path belongs to the public endpoint set.
func IsPublicPath(path string) bool {
	for _, p := range publicPaths {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}
