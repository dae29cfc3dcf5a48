// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/pkg/constants"
)

// SyncTriggerService runs a sync for every lists-updated event received over NATS
type SyncTriggerService struct {
	listName string
	runner   SyncRunner
}

// NewSyncTriggerService creates a trigger that reacts to updates of listName
func NewSyncTriggerService(listName string, runner SyncRunner) *SyncTriggerService {
	return &SyncTriggerService{
		listName: listName,
		runner:   runner,
	}
}

// HandleMessage decodes the event and runs the sync when it concerns the list
func (s *SyncTriggerService) HandleMessage(ctx context.Context, msg *nats.Msg) error {
	if msg.Subject != constants.ListsUpdatedSubject {
		slog.WarnContext(ctx, "unknown subject", "subject", msg.Subject)
		return fmt.Errorf("unknown subject: %s", msg.Subject)
	}

	var event model.ListsUpdatedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal lists updated event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if !event.Concerns(s.listName) {
		slog.DebugContext(ctx, "event does not concern the synced list, skipping",
			"event_id", event.EventID,
			"lists", event.ListNames,
			"list", s.listName,
		)
		return nil
	}

	slog.InfoContext(ctx, "processing lists updated event",
		"event_id", event.EventID,
		"list", s.listName,
	)

	result, err := s.runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("sync triggered by event %s failed: %w", event.EventID, err)
	}

	slog.InfoContext(ctx, "lists updated event processed successfully",
		"event_id", event.EventID,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return nil
}
