// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package anylist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/httpclient"
)

// Auth endpoints
const (
	loginPath   = "/auth/token"
	refreshPath = "/auth/token/refresh"
)

// defaultTokenTTL applies when the access token carries no readable expiry
const defaultTokenTTL = 10 * time.Minute

// tokenResponse is the body returned by both auth endpoints
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// passwordTokenSource logs in with email and password, then keeps the
// session alive with the refresh token. Wrap it in oauth2.ReuseTokenSource
// so a token is only requested once the previous one expires.
type passwordTokenSource struct {
	config     Config
	httpClient *httpclient.Client

	mu           sync.Mutex
	refreshToken string
}

var _ oauth2.TokenSource = (*passwordTokenSource)(nil)

// Token returns a fresh access token, preferring the refresh flow
func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken != "" {
		token, err := s.request(ctx, refreshPath, map[string]string{"refresh_token": s.refreshToken})
		if err == nil {
			slog.DebugContext(ctx, "AnyList access token refreshed", "expires_at", token.Expiry.Format(time.RFC3339))
			return token, nil
		}
		slog.WarnContext(ctx, "AnyList token refresh failed, logging in again", "error", err)
		s.refreshToken = ""
	}

	slog.InfoContext(ctx, "logging into AnyList")
	token, err := s.request(ctx, loginPath, map[string]string{
		"email":    s.config.Email,
		"password": s.config.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("AnyList login failed: %w", err)
	}

	slog.InfoContext(ctx, "logged into AnyList successfully", "expires_at", token.Expiry.Format(time.RFC3339))
	return token, nil
}

// request posts fields as multipart form data and parses the token pair
func (s *passwordTokenSource) request(ctx context.Context, path string, fields map[string]string) (*oauth2.Token, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to encode form: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}

	resp, err := s.httpClient.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		URL:     s.config.BaseURL + path,
		Headers: map[string]string{constants.ContentTypeHeader: form.FormDataContentType()},
		Body:    body.Bytes(),
	})
	if err != nil {
		return nil, MapHTTPError(ctx, err)
	}

	var tokens tokenResponse
	if err := json.Unmarshal(resp.Body, &tokens); err != nil {
		return nil, fmt.Errorf("token response parse failed: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("no access token in response")
	}

	if tokens.RefreshToken != "" {
		s.refreshToken = tokens.RefreshToken
	}

	return &oauth2.Token{
		AccessToken:  tokens.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: tokens.RefreshToken,
		Expiry:       parseTokenExpiry(tokens.AccessToken),
	}, nil
}

// parseTokenExpiry extracts expiry from the access token JWT
func parseTokenExpiry(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}

	_, _, err := parser.ParseUnverified(token, &claims)
	if err != nil {
		slog.Warn("failed to parse AnyList access token", "error", err)
		return time.Now().Add(defaultTokenTTL)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		slog.Warn("no expiry in AnyList access token", "error", err)
		return time.Now().Add(defaultTokenTTL)
	}

	// Cache until 1 minute before expiry
	return exp.Time.Add(-1 * time.Minute)
}
