// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package github triggers CI workflows through the repository dispatch API.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/httpclient"
)

// NotifierName identifies this notifier in logs and errors
const NotifierName = "github"

// dispatchMessage is the fixed client payload message
const dispatchMessage = "AnyList list updated"

// DispatchRequest is the body of a repository dispatch
type DispatchRequest struct {
	EventType     string         `json:"event_type"`
	ClientPayload map[string]any `json:"client_payload"`
}

// Dispatcher sends a repository_dispatch event for every lists update
type Dispatcher struct {
	config     Config
	httpClient *httpclient.Client
}

var _ port.Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a new dispatcher with the given configuration
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "token"}),
		Base:   http.DefaultTransport,
	}

	httpConfig := httpclient.DefaultConfig()
	httpConfig.Timeout = cfg.Timeout
	httpConfig.Transport = transport

	return &Dispatcher{
		config:     cfg,
		httpClient: httpclient.NewClient(httpConfig),
	}, nil
}

// Name returns the notifier name
func (d *Dispatcher) Name() string {
	return NotifierName
}

// Notify posts the dispatch once. Failures are returned for the caller to log.
func (d *Dispatcher) Notify(ctx context.Context, event model.ListsUpdatedEvent) error {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/dispatches",
		d.config.APIURL, url.PathEscape(d.config.RepoOwner), url.PathEscape(d.config.RepoName))

	payload := DispatchRequest{
		EventType: d.config.EventType,
		ClientPayload: map[string]any{
			"message": dispatchMessage,
		},
	}

	slog.DebugContext(ctx, "triggering GitHub Actions workflow",
		"repository", d.config.RepoOwner+"/"+d.config.RepoName,
		"event_type", d.config.EventType,
		"event_id", event.EventID,
	)

	err := d.httpClient.DoJSON(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     endpoint,
		Headers: map[string]string{constants.AcceptHeader: constants.GitHubDispatchAccept},
		NoRetry: true,
	}, payload, nil)
	if err != nil {
		return fmt.Errorf("repository dispatch failed: %w", err)
	}

	slog.InfoContext(ctx, "GitHub Actions workflow triggered successfully",
		"repository", d.config.RepoOwner+"/"+d.config.RepoName,
	)
	return nil
}
