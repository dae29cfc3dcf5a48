// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package anylist

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/errors"
)

// Config holds the configuration for the AnyList client
type Config struct {
	// Email and Password are the AnyList account credentials
	Email    string `envconfig:"ANYLIST_EMAIL"`
	Password string `envconfig:"ANYLIST_PASSWORD"`

	// ListName is the list whose items are synced
	ListName string `envconfig:"ANYLIST_LIST_NAME" default:"Scanned"`

	// BaseURL is the AnyList API base URL
	BaseURL string `envconfig:"ANYLIST_BASE_URL" default:"https://www.anylist.com"`

	// WSURL is the realtime update endpoint
	WSURL string `envconfig:"ANYLIST_WS_URL" default:"wss://www.anylist.com/data/add-user-listener"`

	// ClientID identifies this installation. A random one is generated when empty.
	ClientID string `envconfig:"ANYLIST_CLIENT_ID"`

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration `envconfig:"ANYLIST_TIMEOUT" default:"30s"`

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int `envconfig:"ANYLIST_MAX_RETRIES" default:"3"`

	// RetryDelay is the delay before the first retry
	RetryDelay time.Duration `envconfig:"ANYLIST_RETRY_DELAY" default:"1s"`

	// ReconnectMaxAttempts bounds reconnection after the listener loses its
	// connection. Zero stops listening on the first loss.
	ReconnectMaxAttempts int `envconfig:"ANYLIST_RECONNECT_MAX_ATTEMPTS" default:"5"`

	// HeartbeatInterval is how often the listener pings the server
	HeartbeatInterval time.Duration `envconfig:"ANYLIST_HEARTBEAT_INTERVAL" default:"5s"`
}

// DefaultConfig returns a Config with sensible defaults and no credentials
func DefaultConfig() Config {
	return Config{
		ListName:             constants.DefaultListName,
		BaseURL:              "https://www.anylist.com",
		WSURL:                "wss://www.anylist.com/data/add-user-listener",
		Timeout:              30 * time.Second,
		MaxRetries:           3,
		RetryDelay:           time.Second,
		ReconnectMaxAttempts: 5,
		HeartbeatInterval:    constants.ListenerHeartbeatInterval,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.NewConfiguration("failed to read AnyList configuration", err)
	}
	return cfg, nil
}

// Validate checks that credentials are set
func (c Config) Validate() error {
	if c.Email == "" {
		return errors.NewConfiguration("ANYLIST_EMAIL is not defined")
	}
	if c.Password == "" {
		return errors.NewConfiguration("ANYLIST_PASSWORD is not defined")
	}
	if c.ListName == "" {
		return errors.NewConfiguration("ANYLIST_LIST_NAME must not be empty")
	}
	if c.ReconnectMaxAttempts < 0 {
		return errors.NewConfiguration("ANYLIST_RECONNECT_MAX_ATTEMPTS must not be negative")
	}
	if c.HeartbeatInterval <= 0 {
		return errors.NewConfiguration("ANYLIST_HEARTBEAT_INTERVAL must be positive")
	}
	return nil
}
