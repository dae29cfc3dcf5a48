// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package github

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/pantrysync/listsync/pkg/errors"
)

// Config holds the configuration for the repository dispatch notifier
type Config struct {
	// Token is a personal access token with repo scope
	Token string `envconfig:"GITHUB_TOKEN"`

	// RepoOwner and RepoName identify the repository whose workflow is triggered
	RepoOwner string `envconfig:"GITHUB_REPO_OWNER"`
	RepoName  string `envconfig:"GITHUB_REPO_NAME"`

	// EventType is the repository_dispatch event type
	EventType string `envconfig:"GITHUB_EVENT_TYPE" default:"anylist-update"`

	// APIURL is the GitHub REST API base URL
	APIURL string `envconfig:"GITHUB_API_URL" default:"https://api.github.com"`

	// Timeout is the HTTP client timeout for the dispatch request
	Timeout time.Duration `envconfig:"GITHUB_TIMEOUT" default:"15s"`
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.NewConfiguration("failed to read GitHub configuration", err)
	}
	return cfg, nil
}

// Validate checks that the token and repository are set
func (c Config) Validate() error {
	if c.Token == "" {
		return errors.NewConfiguration("GITHUB_TOKEN is not defined")
	}
	if c.RepoOwner == "" || c.RepoName == "" {
		return errors.NewConfiguration("GITHUB_REPO_OWNER and GITHUB_REPO_NAME are required")
	}
	if c.EventType == "" {
		return errors.NewConfiguration("GITHUB_EVENT_TYPE must not be empty")
	}
	return nil
}
