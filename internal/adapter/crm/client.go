// Package crm talks to the remote interaction data source: four read-only
// HTTP resources serving JSON arrays of users, accounts, calls, and emails.
package crm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/pscheid92/salespulse/internal/domain"
	"github.com/pscheid92/salespulse/internal/metrics"
	"github.com/pscheid92/salespulse/internal/platform/retry"
)

const (
	maxErrorBodyBytes       = 4 << 10
	breakerOpenTimeout      = 30 * time.Second
	breakerFailureThreshold = 5
	defaultMaxAttempts      = 3
	defaultInitialBackoff   = 500 * time.Millisecond
)

// FetchError is a failed fetch of one named resource: network error, non-2xx
// response, or a body that fails JSON parsing. It is recoverable — the store
// keeps the prior collection and only the resource's status flips to failed.
type FetchError struct {
	Resource domain.Resource
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// statusError is a non-2xx upstream response with its textual error body.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("upstream returned %d", e.code)
	}
	return fmt.Sprintf("upstream returned %d: %s", e.code, e.body)
}

// Client fetches entity collections from the data source. Transient
// failures are retried with backoff; a circuit breaker fails fast while the
// upstream is down.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	retryPolicy retry.Policy
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "crm",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.Set(float64(to))
			slog.Warn("Upstream circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
		retryPolicy: retry.Policy{
			MaxAttempts:    defaultMaxAttempts,
			InitialBackoff: defaultInitialBackoff,
		},
	}
}

// FetchUsers retrieves the users collection.
func (c *Client) FetchUsers(ctx context.Context) ([]domain.User, error) {
	return fetchList[domain.User](ctx, c, domain.ResourceUsers)
}

// FetchAccounts retrieves the accounts collection.
func (c *Client) FetchAccounts(ctx context.Context) ([]domain.Account, error) {
	return fetchList[domain.Account](ctx, c, domain.ResourceAccounts)
}

// FetchCalls retrieves the calls collection.
func (c *Client) FetchCalls(ctx context.Context) ([]domain.Call, error) {
	return fetchList[domain.Call](ctx, c, domain.ResourceCalls)
}

// FetchEmails retrieves the emails collection.
func (c *Client) FetchEmails(ctx context.Context) ([]domain.Email, error) {
	return fetchList[domain.Email](ctx, c, domain.ResourceEmails)
}

func fetchList[T any](ctx context.Context, c *Client, resource domain.Resource) ([]T, error) {
	start := time.Now()

	policy := c.retryPolicy
	policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
		metrics.FetchRetries.WithLabelValues(string(resource)).Inc()
		slog.Warn("Retrying upstream fetch", "resource", resource, "attempt", attempt, "backoff", backoff, "error", err)
	}

	items, err := retry.Do(ctx, policy, retryable, func() ([]T, error) {
		result, err := c.breaker.Execute(func() (any, error) {
			return doFetch[T](ctx, c, resource)
		})
		if err != nil {
			return nil, err
		}
		return result.([]T), nil
	})

	metrics.FetchDuration.WithLabelValues(string(resource)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FetchesTotal.WithLabelValues(string(resource), "failure").Inc()
		return nil, &FetchError{Resource: resource, Err: err}
	}

	metrics.FetchesTotal.WithLabelValues(string(resource), "success").Inc()
	return items, nil
}

func doFetch[T any](ctx context.Context, c *Client, resource domain.Resource) ([]T, error) {
	url := c.baseURL + "/" + string(resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	var items []T
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	return items, nil
}

// errBadBody marks a 2xx response whose body failed JSON parsing. Treated as
// a fetch failure, but not retried — the payload itself is broken.
var errBadBody = errors.New("malformed response body")

// retryable treats network errors and 5xx responses as transient. Client
// errors, malformed bodies, and an open breaker abort immediately.
func retryable(err error) bool {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	if errors.Is(err, errBadBody) {
		return false
	}
	var status *statusError
	if errors.As(err, &status) {
		return status.code >= 500
	}
	return true
}
