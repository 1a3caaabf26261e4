// Package agent calls the Rumination Breaker analysis service.
//
// A Client makes exactly one POST per Analyze call and never retries.
// Consecutive calls are spaced by a cooldown; calling early fails with a
// *CooldownError instead of queueing. Every response is schema-checked
// before it is returned.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jasonroy7dct/site/internal/logging"
)

// Payload bounds and the default cooldown.
const (
	DefaultCooldown = 3500 * time.Millisecond
	MaxTextRunes    = 4000
	MaxMemories     = 3
	maxResponseSize = 1 << 20
)

// Client talks to the analysis endpoint.
type Client struct {
	endpoint string
	client   *http.Client
	cooldown time.Duration
	limiter  *rate.Limiter
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithClock replaces time.Now for cooldown accounting.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithCooldown changes the minimum spacing between calls.
func WithCooldown(d time.Duration) Option {
	return func(c *Client) { c.cooldown = d }
}

// NewClient returns a client for endpoint, e.g.
// http://localhost:8888/.netlify/functions/rb_agent.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		cooldown: DefaultCooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.limiter = rate.NewLimiter(rate.Every(c.cooldown), 1)
	return c
}

// Remaining returns how long until the next call is allowed.
func (c *Client) Remaining() time.Duration {
	tokens := c.limiter.TokensAt(c.now())
	if tokens >= 1 {
		return 0
	}
	return time.Duration((1 - tokens) * float64(c.cooldown))
}

// Bound clamps a request to the payload limits.
func Bound(req Request) Request {
	if r := []rune(req.Text); len(r) > MaxTextRunes {
		req.Text = string(r[:MaxTextRunes])
	}
	if len(req.Memories) > MaxMemories {
		req.Memories = req.Memories[:MaxMemories]
	}
	if req.Memories == nil {
		req.Memories = []Memory{}
	}
	if req.Language == "" {
		req.Language = "auto"
	}
	return req
}

// Analyze sends one analysis request. The cooldown starts when the call is
// admitted, so failed calls also count.
func (c *Client) Analyze(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}
	if !c.limiter.AllowN(c.now(), 1) {
		return nil, &CooldownError{Remaining: c.Remaining()}
	}

	payload, err := json.Marshal(Bound(req))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logging.Debug("agent request", "endpoint", c.endpoint, "memories", len(req.Memories), "strict", req.Strict)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: err}
	}

	if msg, ok := errorMessage(body); ok {
		logging.Warn("agent service error", "status", resp.StatusCode, "error", msg)
		return nil, &ServiceError{Status: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Warn("agent HTTP error", "status", resp.StatusCode)
		return nil, &TransportError{Status: resp.StatusCode, Body: string(body)}
	}

	result, err := ClientSchema.Decode(body)
	if err != nil {
		logging.Warn("agent result rejected", "error", err)
		return nil, err
	}
	return result, nil
}

// errorMessage extracts the message of an {error: "..."} body.
func errorMessage(body []byte) (string, bool) {
	var e struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error == nil {
		return "", false
	}
	return *e.Error, true
}
