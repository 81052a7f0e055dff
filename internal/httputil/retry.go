// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

// DefaultBaseDelay is the backoff base used when the policy does not set one.
// Tests set a small policy delay instead of sleeping.
const DefaultBaseDelay = 10 * time.Second

// retryable reports whether a status code indicates publisher throttling or
// a transient upstream failure worth retrying.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes an HTTP request under the given retry policy. On
// HTTP 429 or 503 it drains the body and retries with exponential backoff:
// BaseDelay, then doubled each attempt. A context cancellation during a
// backoff wait returns ctx.Err(). After exhausting attempts the last
// throttled response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, policy types.RetryPolicy) (*http.Response, error) {
	baseDelay := policy.BaseDelay
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	maxAttempts := policy.Attempts()

	backoff := baseDelay
	for attempt := 1; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= maxAttempts {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}
