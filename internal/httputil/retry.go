// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to MediaWiki servers.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// throttled responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 5 * time.Second

// maxRetryAfter caps a server-provided Retry-After value.
const maxRetryAfter = 2 * time.Minute

const defaultMaxRetries = 5

// Retryable reports whether status is one MediaWiki uses for throttling:
// 429 Too Many Requests or 503 Service Unavailable.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes an HTTP request and retries throttled responses with
// exponential backoff starting at RetryBaseDelay (5 s, 10 s, 20 s, ...).
// A Retry-After header given in seconds replaces the computed delay, capped
// at two minutes.
//
// When maxRetries is 0 the default (5) is used. On each retry the response
// body is drained and closed before sleeping. If the context is cancelled
// during a backoff wait the function returns ctx.Err(). After exhausting
// retries the last throttled response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, log *zap.Logger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if log == nil {
		log = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := retryAfter(resp.Header.Get("Retry-After"))
		if backoff == 0 {
			backoff = time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		}
		log.Debug("throttled, backing off",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Duration("delay", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max", maxRetries))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// retryAfter parses a Retry-After header in delta-seconds form. HTTP-date
// values and garbage yield 0.
func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	return d
}
