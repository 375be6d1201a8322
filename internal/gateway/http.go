package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/logging"
	"github.com/cristianoliveira/courtside/internal/version"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultRequestsPerSec = 10
	maxResponseBytes      = 4 << 20
)

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() string
}

// HTTPClient implements the feed and application gateways over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	tokens  TokenSource
	log     logging.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		if c != nil {
			h.http = c
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.http.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables limiting.
func WithRateLimit(perSecond int) Option {
	return func(h *HTTPClient) {
		if perSecond <= 0 {
			h.limiter = nil
			return
		}
		h.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
	}
}

// WithTokenSource attaches an Authorization bearer token to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(h *HTTPClient) {
		h.tokens = ts
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHTTPClient creates a client for the backend at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: invalid base url %q", baseURL)
	}
	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(defaultRequestsPerSec), defaultRequestsPerSec),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.With("component", "gateway")
	return h, nil
}

// FetchPage fetches page index of the community feed.
func (h *HTTPClient) FetchPage(ctx context.Context, index, size int) (domain.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(index))
	q.Set("size", strconv.Itoa(size))

	var payload PagePayload
	if err := h.do(ctx, http.MethodGet, "/api/posts?"+q.Encode(), nil, &payload); err != nil {
		return domain.Page{}, err
	}
	page := domain.Page{Index: index, HasNext: payload.HasNext, Items: make([]domain.Post, 0, len(payload.Items))}
	for _, p := range payload.Items {
		page.Items = append(page.Items, p.ToDomain())
	}
	return page, nil
}

// ToggleLike flips the caller's like on a post.
func (h *HTTPClient) ToggleLike(ctx context.Context, postID int64) error {
	return h.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/like", postID), nil, nil)
}

// ToggleNotification flips the notification flag on a post and returns the
// value the server settled on.
func (h *HTTPClient) ToggleNotification(ctx context.Context, postID int64) (bool, error) {
	var payload NotificationPayload
	if err := h.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/notification", postID), nil, &payload); err != nil {
		return false, err
	}
	return payload.Enabled, nil
}

// DeletePost deletes one of the caller's posts.
func (h *HTTPClient) DeletePost(ctx context.Context, postID int64) error {
	return h.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, nil)
}

// ListSlots lists the scheduled slots of a kind.
func (h *HTTPClient) ListSlots(ctx context.Context, kind domain.SlotKind) ([]domain.Slot, error) {
	var payload SlotsPayload
	if err := h.do(ctx, http.MethodGet, "/api/"+KindPath(kind)+"/slots", nil, &payload); err != nil {
		return nil, err
	}
	slots := make([]domain.Slot, 0, len(payload.Items))
	for _, s := range payload.Items {
		slots = append(slots, s.ToDomain(kind))
	}
	return slots, nil
}

// SubmitApplication applies the caller to a slot.
func (h *HTTPClient) SubmitApplication(ctx context.Context, kind domain.SlotKind, slotID int64) error {
	path := fmt.Sprintf("/api/%s/slots/%d/applications", KindPath(kind), slotID)
	return h.do(ctx, http.MethodPost, path, struct{}{}, nil)
}

func (h *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return &Error{Message: "request cancelled", Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.tokens != nil {
		if token := h.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := h.http.Do(req)
	if err != nil {
		h.log.Warn("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return &Error{Message: "network error: " + err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: "failed to read response", Err: err}
	}
	h.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		return newResponseError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "invalid response from server", Err: err}
	}
	return nil
}
