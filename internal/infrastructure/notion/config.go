// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package notion

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/pkg/errors"
)

// Config holds the configuration for the Notion client
type Config struct {
	// Token is the Notion integration secret
	Token string `envconfig:"NOTION_TOKEN"`

	// DatabaseID is the destination database
	DatabaseID string `envconfig:"NOTION_DATABASE_ID"`

	// BaseURL is the Notion API base URL
	BaseURL string `envconfig:"NOTION_BASE_URL" default:"https://api.notion.com"`

	// Version is sent as the Notion-Version header
	Version string `envconfig:"NOTION_VERSION" default:"2022-06-28"`

	// NameProperty is the database property holding the item name
	NameProperty string `envconfig:"NOTION_NAME_PROPERTY" default:"Name"`

	// QuantityProperty is the number property holding the item quantity
	QuantityProperty string `envconfig:"NOTION_QUANTITY_PROPERTY" default:"Quantity"`

	// MatchType is the filter key used on NameProperty: title, rich_text, text or auto
	MatchType string `envconfig:"NOTION_MATCH_TYPE" default:"title"`

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration `envconfig:"NOTION_TIMEOUT" default:"30s"`

	// MaxRetries is the maximum number of retry attempts for idempotent requests
	MaxRetries int `envconfig:"NOTION_MAX_RETRIES" default:"3"`

	// RetryDelay is the delay before the first retry
	RetryDelay time.Duration `envconfig:"NOTION_RETRY_DELAY" default:"1s"`
}

// DefaultConfig returns a Config with sensible defaults and no credentials
func DefaultConfig() Config {
	return Config{
		BaseURL:          "https://api.notion.com",
		Version:          "2022-06-28",
		NameProperty:     model.DefaultNameProperty,
		QuantityProperty: model.DefaultQuantityProperty,
		MatchType:        string(model.MatchTypeTitle),
		Timeout:          30 * time.Second,
		MaxRetries:       3,
		RetryDelay:       time.Second,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.NewConfiguration("failed to read Notion configuration", err)
	}
	return cfg, nil
}

// Validate checks that credentials and the database are set
func (c Config) Validate() error {
	if c.Token == "" {
		return errors.NewConfiguration("NOTION_TOKEN is not defined")
	}
	if c.DatabaseID == "" {
		return errors.NewConfiguration("NOTION_DATABASE_ID is not defined")
	}
	if c.BaseURL == "" {
		return errors.NewConfiguration("NOTION_BASE_URL must not be empty")
	}
	return nil
}

// SyncOptions builds engine options from the destination settings and policy
func (c Config) SyncOptions(policy model.RecordErrorPolicy) model.SyncOptions {
	return model.SyncOptions{
		NameProperty:     c.NameProperty,
		QuantityProperty: c.QuantityProperty,
		MatchType:        model.MatchType(c.MatchType),
		OnRecordError:    policy,
	}
}

func (c Config) databaseURL() string {
	return fmt.Sprintf("%s/v1/databases/%s", c.BaseURL, c.DatabaseID)
}
