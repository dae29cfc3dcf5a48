// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
)

// RecordingNotifier records every event it is asked to deliver and can be told to fail
type RecordingNotifier struct {
	name string
	Err  error

	mu     sync.Mutex
	events []model.ListsUpdatedEvent
}

// Ensure RecordingNotifier implements the Notifier interface
var _ port.Notifier = (*RecordingNotifier)(nil)

// NewRecordingNotifier creates a new mock notifier for testing
func NewRecordingNotifier(name string) *RecordingNotifier {
	return &RecordingNotifier{name: name}
}

// Name returns the notifier name
func (n *RecordingNotifier) Name() string {
	return n.name
}

// Notify records the event (mock implementation - logs only)
func (n *RecordingNotifier) Notify(ctx context.Context, event model.ListsUpdatedEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)
	if n.Err != nil {
		return n.Err
	}

	slog.InfoContext(ctx, "mock notification sent",
		"notifier", n.name,
		"event_id", event.EventID,
	)
	return nil
}

// Events returns every event received, including failed deliveries
func (n *RecordingNotifier) Events() []model.ListsUpdatedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.ListsUpdatedEvent(nil), n.events...)
}
