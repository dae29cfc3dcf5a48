// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/errors"
)

// NotifierName identifies this notifier in logs and errors
const NotifierName = "nats"

// messagingPublisher publishes lists-updated events so sync workers can react
type messagingPublisher struct {
	client  *NATSClient
	subject string
}

// Notify publishes the event as JSON on the lists-updated subject
func (m *messagingPublisher) Notify(ctx context.Context, event model.ListsUpdatedEvent) error {
	return m.publish(ctx, m.subject, event)
}

// Name returns the notifier name
func (m *messagingPublisher) Name() string {
	return NotifierName
}

// publish is the common method for publishing messages to NATS
func (m *messagingPublisher) publish(ctx context.Context, subject string, message any) error {
	// Check if client is ready
	if err := m.client.IsReady(ctx); err != nil {
		slog.ErrorContext(ctx, "NATS client is not ready for publishing",
			"error", err,
			"subject", subject,
		)
		return errors.NewServiceUnavailable("NATS client is not ready", err)
	}

	// Marshal message to JSON
	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal message to JSON",
			"error", err,
			"subject", subject,
		)
		return errors.NewUnexpected("failed to marshal message", err)
	}

	// Publish message
	if err := m.client.conn.Publish(subject, data); err != nil {
		slog.ErrorContext(ctx, "failed to publish message to NATS",
			"error", err,
			"subject", subject,
		)
		return errors.NewServiceUnavailable("failed to publish message", err)
	}

	// the event is fire-and-forget, but a broken connection should surface here
	if err := m.client.Flush(ctx); err != nil {
		slog.WarnContext(ctx, "publish not confirmed by NATS server",
			"error", err,
			"subject", subject,
		)
		return errors.NewServiceUnavailable("failed to flush published message", err)
	}

	slog.DebugContext(ctx, "message published successfully",
		"subject", subject,
		"message_size", len(data),
	)

	return nil
}

// NewMessagePublisher creates a notifier publishing on the lists-updated subject
func NewMessagePublisher(client *NATSClient) port.Notifier {
	return &messagingPublisher{
		client:  client,
		subject: constants.ListsUpdatedSubject,
	}
}
