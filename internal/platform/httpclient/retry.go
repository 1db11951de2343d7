package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jsamuelsen11/storefront-shops/internal/platform/logging"
)

// jitterFraction spreads each delay over ±25%.
const jitterFraction = 0.25

type retryPolicy struct {
	attempts   int
	initial    time.Duration
	max        time.Duration
	multiplier float64
}

// delay returns the wait before retry n (1 is the first retry).
func (p retryPolicy) delay(n int) time.Duration {
	d := float64(p.initial) * math.Pow(p.multiplier, float64(n-1))
	if d > float64(p.max) {
		d = float64(p.max)
	}
	d += d * jitterFraction * (2*rand.Float64() - 1)
	return time.Duration(max(d, 0))
}

// doWithRetry replays req on transport errors, 5xx and 429. Request bodies
// are rewound through req.GetBody. On the last failed attempt the response
// is returned open alongside the error.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.retry.attempts <= 0 {
		return nil, fmt.Errorf("httpclient: max attempts must be >= 1, got %d", c.retry.attempts)
	}

	var lastErr error
	for attempt := range c.retry.attempts {
		if attempt > 0 {
			if err := c.sleep(ctx, req, attempt, lastErr); err != nil {
				return nil, err
			}
			if err := rewind(req); err != nil {
				return nil, err
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if !isRetryable(err) {
				return nil, err
			}
			continue
		}

		if !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.peer)
		if attempt == c.retry.attempts-1 {
			return resp, lastErr
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}

	return nil, lastErr
}

func rewind(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}
	req.Body = body
	return nil
}

func (c *Client) sleep(ctx context.Context, req *http.Request, attempt int, lastErr error) error {
	d := c.retry.delay(attempt)

	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.peer),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", c.retry.attempts),
		slog.Duration("backoff", d),
		slog.Any("error", lastErr),
	)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// isRetryable reports whether a transport error may succeed on retry.
// Cancellation and deadlines are final.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
