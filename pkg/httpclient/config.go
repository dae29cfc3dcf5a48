// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"net/http"
	"time"
)

// Config holds the configuration for the HTTP client
type Config struct {
	// Timeout bounds a single attempt, including reading the body
	Timeout time.Duration

	// MaxRetries is the number of extra attempts after the first one
	MaxRetries int

	// RetryDelay is the delay before the first retry
	RetryDelay time.Duration

	// RetryBackoff doubles the delay on every retry when set
	RetryBackoff bool

	// MaxDelay caps the backoff delay
	MaxDelay time.Duration

	// Transport is the base RoundTripper. Adapters pass an oauth2.Transport
	// here so bearer tokens are injected below the retry loop.
	Transport http.RoundTripper
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxRetries:   3,
		RetryDelay:   time.Second,
		RetryBackoff: true,
		MaxDelay:     30 * time.Second,
	}
}
