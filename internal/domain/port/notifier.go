// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/pantrysync/listsync/internal/domain/model"
)

// Notifier delivers a lists-updated event to a downstream integration.
// Delivery is best-effort and fire-and-forget.
type Notifier interface {
	// Name identifies the notifier in logs
	Name() string

	Notify(ctx context.Context, event model.ListsUpdatedEvent) error
}

// ListListener subscribes to the list service's push-update channel
type ListListener interface {
	// Listen blocks, calling handle once per update, until ctx is cancelled or
	// the connection is lost for good. handle returns before the next update
	// is read.
	Listen(ctx context.Context, handle func(context.Context, model.ListsUpdatedEvent)) error
}
