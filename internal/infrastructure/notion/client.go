// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/httpclient"
)

// versionRoundTripper pins the API version on every request
type versionRoundTripper struct {
	version string
}

// RoundTrip sets the Notion-Version header
func (rt *versionRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	req.Header.Set(constants.NotionVersionHeader, rt.version)
	return next(req)
}

// ClientInterface defines the contract for Notion API operations
type ClientInterface interface {
	QueryDatabase(ctx context.Context, request QueryRequest) (*QueryResponse, error)
	CreatePage(ctx context.Context, request CreatePageRequest) (*Page, error)
	UpdatePage(ctx context.Context, pageID string, request UpdatePageRequest) (*Page, error)
	GetDatabase(ctx context.Context) (*Database, json.RawMessage, error)
}

// Client handles Notion API operations for a single database
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

var _ ClientInterface = (*Client)(nil)

// NewClient creates a new Notion client with the given configuration
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// bearer token injected by oauth2 below the retry loop
	transport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}),
		Base:   http.DefaultTransport,
	}

	httpConfig := httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		RetryBackoff: true,
		MaxDelay:     30 * time.Second,
		Transport:    transport,
	}

	client := &Client{
		config:     cfg,
		httpClient: httpclient.NewClient(httpConfig),
	}
	client.httpClient.AddRoundTripper(&versionRoundTripper{version: cfg.Version})

	slog.DebugContext(context.Background(), "Notion client initialized",
		"base_url", cfg.BaseURL,
		"version", cfg.Version,
	)

	return client, nil
}

// QueryDatabase runs a filtered query against the configured database
func (c *Client) QueryDatabase(ctx context.Context, request QueryRequest) (*QueryResponse, error) {
	var response QueryResponse
	err := c.httpClient.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.config.databaseURL() + "/query",
	}, request, &response)
	if err != nil {
		return nil, MapHTTPError(ctx, err)
	}
	return &response, nil
}

// CreatePage creates a page. It is never retried: a timed out attempt may
// already have created the page and a retry would duplicate it.
func (c *Client) CreatePage(ctx context.Context, request CreatePageRequest) (*Page, error) {
	var page Page
	err := c.httpClient.DoJSON(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.config.BaseURL + "/v1/pages",
		NoRetry: true,
	}, request, &page)
	if err != nil {
		return nil, MapHTTPError(ctx, err)
	}
	return &page, nil
}

// UpdatePage patches the given properties of a page
func (c *Client) UpdatePage(ctx context.Context, pageID string, request UpdatePageRequest) (*Page, error) {
	var page Page
	err := c.httpClient.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPatch,
		URL:    fmt.Sprintf("%s/v1/pages/%s", c.config.BaseURL, pageID),
	}, request, &page)
	if err != nil {
		return nil, MapHTTPError(ctx, err)
	}
	return &page, nil
}

// GetDatabase retrieves the database object. The raw body is returned as
// well so it can be printed unmodified.
func (c *Client) GetDatabase(ctx context.Context) (*Database, json.RawMessage, error) {
	resp, err := c.httpClient.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    c.config.databaseURL(),
	})
	if err != nil {
		return nil, nil, MapHTTPError(ctx, err)
	}

	var db Database
	if err := json.Unmarshal(resp.Body, &db); err != nil {
		return nil, nil, fmt.Errorf("failed to parse database: %w", err)
	}
	return &db, json.RawMessage(resp.Body), nil
}
