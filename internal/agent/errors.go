package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyText is returned before any call when there is nothing to analyze.
	ErrEmptyText = errors.New("agent: text is empty")
)

// CooldownError is returned when Analyze is called again too soon.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("agent: cooling down, retry in %s", e.Remaining.Round(100*time.Millisecond))
}

// ErrCooldown matches any *CooldownError with errors.Is.
var ErrCooldown = errors.New("agent: cooling down")

func (e *CooldownError) Is(target error) bool { return target == ErrCooldown }

// TransportError covers network failures and non-2xx responses without a
// usable error body.
type TransportError struct {
	Status int // 0 when no response arrived
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("agent: request failed: %v", e.Err)
	}
	return fmt.Sprintf("agent: HTTP %d: %s", e.Status, truncate(e.Body, 200))
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is an {error} body returned by the service.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("agent: service error (status %d): %s", e.Status, e.Message)
}

// ValidationError lists the schema problems in a response.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "agent: invalid result: " + strings.Join(e.Problems, "; ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
