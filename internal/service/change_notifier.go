// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	errs "github.com/pantrysync/listsync/pkg/errors"
)

// ChangeNotifier forwards every lists-updated event from the listener to each
// notifier. Notification failures are logged and never stop the listener.
type ChangeNotifier struct {
	listener  port.ListListener
	notifiers []port.Notifier
}

// NewChangeNotifier creates a new change notifier
func NewChangeNotifier(listener port.ListListener, notifiers ...port.Notifier) *ChangeNotifier {
	return &ChangeNotifier{
		listener:  listener,
		notifiers: notifiers,
	}
}

// Run blocks until the listener stops. A nil error means ctx was cancelled.
func (n *ChangeNotifier) Run(ctx context.Context) error {
	if len(n.notifiers) == 0 {
		return errs.NewConfiguration("at least one notifier is required")
	}

	names := make([]string, 0, len(n.notifiers))
	for _, nt := range n.notifiers {
		names = append(names, nt.Name())
	}
	slog.InfoContext(ctx, "listener is running and awaiting updates", "notifiers", names)

	err := n.listener.Listen(ctx, n.Handle)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// Handle delivers one event to every notifier in order
func (n *ChangeNotifier) Handle(ctx context.Context, event model.ListsUpdatedEvent) {
	slog.InfoContext(ctx, "received lists-update event",
		"event_id", event.EventID,
		"lists", event.ListNames,
	)

	for _, nt := range n.notifiers {
		if err := nt.Notify(ctx, event); err != nil {
			notificationErr := errs.NewNotification(nt.Name(), "notification failed", err)
			slog.ErrorContext(ctx, "error sending notification",
				"error", notificationErr,
				"notifier", nt.Name(),
				"event_id", event.EventID,
			)
			continue
		}
		slog.InfoContext(ctx, "notification sent",
			"notifier", nt.Name(),
			"event_id", event.EventID,
		)
	}
}
