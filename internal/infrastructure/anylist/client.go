// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package anylist reads shopping lists from AnyList and listens for changes.
package anylist

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/httpclient"
)

// apiVersion is sent with every request
const apiVersion = "3"

const userDataPath = "/data/user-data/get"

// anyleafHeaderRoundTripper adds the API version and client identifier headers
type anyleafHeaderRoundTripper struct {
	clientID string
}

// RoundTrip sets the AnyList headers on every request
func (rt *anyleafHeaderRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	req.Header.Set(constants.AnyListAPIVersionHeader, apiVersion)
	req.Header.Set(constants.AnyListClientIdentifierHeader, rt.clientID)
	return next(req)
}

// ClientInterface defines the contract for AnyList API operations
type ClientInterface interface {
	ShoppingLists(ctx context.Context) ([]ShoppingList, error)
	AccessToken(ctx context.Context) (string, error)
	ListenerHeaders(ctx context.Context) (http.Header, error)
}

// Client handles AnyList API operations
type Client struct {
	config     Config
	clientID   string
	tokens     oauth2.TokenSource
	httpClient *httpclient.Client
}

var _ ClientInterface = (*Client)(nil)

// NewClient creates a new AnyList client with the given configuration.
// No request is made until the first call.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}
	headers := &anyleafHeaderRoundTripper{clientID: clientID}

	httpConfig := httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryDelay:   cfg.RetryDelay,
		RetryBackoff: true,
		MaxDelay:     30 * time.Second,
	}

	authClient := httpclient.NewClient(httpConfig)
	authClient.AddRoundTripper(headers)

	tokens := oauth2.ReuseTokenSource(nil, &passwordTokenSource{
		config:     cfg,
		httpClient: authClient,
	})

	httpConfig.Transport = &oauth2.Transport{Source: tokens, Base: http.DefaultTransport}
	dataClient := httpclient.NewClient(httpConfig)
	dataClient.AddRoundTripper(headers)

	return &Client{
		config:     cfg,
		clientID:   clientID,
		tokens:     tokens,
		httpClient: dataClient,
	}, nil
}

// AccessToken returns a valid access token, logging in when needed
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// ListenerHeaders returns the headers that authenticate the realtime connection
func (c *Client) ListenerHeaders(ctx context.Context) (http.Header, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	h := http.Header{}
	h.Set(constants.AuthorizationHeader, "Bearer "+token)
	h.Set(constants.AnyListAPIVersionHeader, apiVersion)
	h.Set(constants.AnyListClientIdentifierHeader, c.clientID)
	return h, nil
}

// ShoppingLists fetches the user data and returns every shopping list
func (c *Client) ShoppingLists(ctx context.Context) ([]ShoppingList, error) {
	// log in first so credential problems surface as such
	if _, err := c.AccessToken(ctx); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "fetching lists from AnyList")

	resp, err := c.httpClient.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     c.config.BaseURL + userDataPath,
		Headers: map[string]string{constants.AcceptHeader: constants.ContentTypeProtobuf},
	})
	if err != nil {
		return nil, MapHTTPError(ctx, err)
	}

	lists, err := DecodeUserData(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user data: %w", err)
	}

	slog.InfoContext(ctx, "fetched lists successfully", "lists", len(lists))
	return lists, nil
}
