// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package anylist

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/pantrysync/listsync/pkg/errors"
	"github.com/pantrysync/listsync/pkg/httpclient"
)

// MapHTTPError maps httpclient errors to domain errors with proper context logging
func MapHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var retryableErr *httpclient.RetryableError
	if stderrors.As(err, &retryableErr) {
		slog.WarnContext(ctx, "AnyList HTTP error occurred",
			"status_code", retryableErr.StatusCode,
			"message", retryableErr.Message,
		)

		switch retryableErr.StatusCode {
		case http.StatusUnauthorized:
			return errors.NewUnauthorized("AnyList authentication failed, check ANYLIST_EMAIL and ANYLIST_PASSWORD", err)
		case http.StatusForbidden:
			return errors.NewValidation("AnyList access denied", err)
		case http.StatusNotFound:
			return errors.NewNotFound("AnyList endpoint not found", err)
		case http.StatusTooManyRequests:
			return errors.NewServiceUnavailable("AnyList rate limited", err)
		case http.StatusBadRequest:
			return errors.NewValidation("AnyList rejected the request", err)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return errors.NewServiceUnavailable("AnyList service unavailable", err)
		default:
			slog.ErrorContext(ctx, "Unexpected AnyList HTTP status code",
				"status_code", retryableErr.StatusCode,
				"message", retryableErr.Message,
			)
			return errors.NewUnexpected("AnyList API error", err)
		}
	}

	slog.ErrorContext(ctx, "AnyList request failed with non-HTTP error",
		"error", err.Error(),
	)
	return errors.NewUnexpected("AnyList request failed", err)
}
