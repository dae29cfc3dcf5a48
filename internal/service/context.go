// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/log"
)

// withRunID returns ctx carrying a run ID, reusing the one already present
func withRunID(ctx context.Context) (context.Context, string) {
	if id, ok := ctx.Value(constants.RunIDContextKey).(string); ok && id != "" {
		return ctx, id
	}

	id := uuid.New().String()
	ctx = context.WithValue(ctx, constants.RunIDContextKey, id)
	ctx = log.AppendCtx(ctx, slog.String("run_id", id))
	return ctx, id
}
