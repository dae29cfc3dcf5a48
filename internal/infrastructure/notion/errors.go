// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package notion

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
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
		message := retryableErr.Message
		var errObj ErrorObject
		if json.Unmarshal([]byte(retryableErr.Message), &errObj) == nil && errObj.Message != "" {
			message = fmt.Sprintf("%s: %s", errObj.Code, errObj.Message)
		}

		slog.WarnContext(ctx, "Notion HTTP error occurred",
			"status_code", retryableErr.StatusCode,
			"message", message,
		)

		switch retryableErr.StatusCode {
		case http.StatusNotFound:
			return errors.NewNotFound("database or page not found in Notion, check that it is shared with the integration", err)
		case http.StatusConflict:
			return errors.NewConflict("Notion conflict", err)
		case http.StatusUnauthorized:
			return errors.NewUnauthorized("Notion authentication failed", err)
		case http.StatusForbidden:
			return errors.NewValidation("Notion access denied", err)
		case http.StatusTooManyRequests:
			return errors.NewServiceUnavailable("Notion rate limited", err)
		case http.StatusBadRequest:
			return errors.NewValidation(fmt.Sprintf("Notion validation error: %s", message), err)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return errors.NewServiceUnavailable("Notion service unavailable", err)
		default:
			slog.ErrorContext(ctx, "Unexpected Notion HTTP status code",
				"status_code", retryableErr.StatusCode,
				"message", message,
			)
			return errors.NewUnexpected("Notion API error", err)
		}
	}

	slog.ErrorContext(ctx, "Notion request failed with non-HTTP error",
		"error", err.Error(),
	)
	return errors.NewUnexpected("Notion request failed", err)
}
