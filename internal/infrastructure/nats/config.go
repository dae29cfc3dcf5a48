// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/pantrysync/listsync/pkg/errors"
)

// Config holds the NATS connection settings
type Config struct {
	// URL is the NATS server URL
	URL string `envconfig:"NATS_URL" default:"nats://localhost:4222"`

	// Timeout bounds the initial connection attempt
	Timeout time.Duration `envconfig:"NATS_TIMEOUT" default:"10s"`

	// MaxReconnect is the number of reconnect attempts after a lost connection
	MaxReconnect int `envconfig:"NATS_MAX_RECONNECT" default:"3"`

	// ReconnectWait is the delay between reconnect attempts
	ReconnectWait time.Duration `envconfig:"NATS_RECONNECT_WAIT" default:"2s"`

	// Credentials is an optional path to a NATS .creds file
	Credentials string `envconfig:"NATS_CREDENTIALS"`
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.NewConfiguration("failed to read NATS configuration", err)
	}
	return cfg, nil
}
