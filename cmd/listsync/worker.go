// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/pantrysync/listsync/cmd/listsync/service"
	internalService "github.com/pantrysync/listsync/internal/service"
	"github.com/pantrysync/listsync/pkg/constants"
)

// NewWorkerCommand creates the command that syncs on every NATS lists-updated event
func NewWorkerCommand() *cobra.Command {
	settings := service.SyncSettings{Source: constants.SourceAnyList}
	var runTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run a sync for every lists-updated event received over NATS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pipeline, err := service.SyncPipeline(ctx, settings)
			if err != nil {
				return err
			}

			anylistCfg, err := service.AnyListConfig(settings.ListName)
			if err != nil {
				return err
			}

			natsClient, err := service.NATSClient(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if errClose := natsClient.Close(); errClose != nil {
					slog.ErrorContext(ctx, "failed to close NATS connection", "error", errClose)
				}
			}()

			trigger := internalService.NewSyncTriggerService(anylistCfg.ListName, pipeline)
			if err := handleListsUpdated(ctx, natsClient, trigger, runTimeout); err != nil {
				return err
			}

			<-ctx.Done()
			slog.InfoContext(ctx, "shutting down sync worker")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&settings.ListName, "list", "", "AnyList list name (default $ANYLIST_LIST_NAME or Scanned)")
	flags.StringVar(&settings.OnRecordError, "on-record-error", "", "abort|skip-and-continue (default $SYNC_ON_RECORD_ERROR or abort)")
	flags.StringVar(&settings.MatchType, "match-type", "", "name filter key: title|rich_text|text|auto (default $NOTION_MATCH_TYPE or title)")
	flags.DurationVar(&runTimeout, "run-timeout", 5*time.Minute, "upper bound for one triggered sync")

	return cmd
}

type queueSubscriber interface {
	QueueSubscribe(subject, queue string, handler nats.MsgHandler) (*nats.Subscription, error)
}

type messageHandler interface {
	HandleMessage(ctx context.Context, msg *nats.Msg) error
}

// handleListsUpdated subscribes handler to lists-updated events on the worker queue.
// Messages arriving after shutdown starts are rejected.
func handleListsUpdated(ctx context.Context, subscriber queueSubscriber, handler messageHandler, runTimeout time.Duration) error {
	_, err := subscriber.QueueSubscribe(
		constants.ListsUpdatedSubject,
		constants.WorkerQueue,
		func(msg *nats.Msg) {
			select {
			case <-ctx.Done():
				slog.InfoContext(ctx, "rejecting message - worker shutting down",
					"subject", msg.Subject)
				if msg.Reply != "" {
					if nakErr := msg.Nak(); nakErr != nil {
						slog.ErrorContext(ctx, "failed to nak message during shutdown", "error", nakErr)
					}
				}
				return
			default:
			}

			// not derived from ctx so an interrupt does not cut a run in half
			msgCtx, cancel := context.WithTimeout(context.Background(), runTimeout)
			defer cancel()

			if handleErr := handler.HandleMessage(msgCtx, msg); handleErr != nil {
				slog.ErrorContext(msgCtx, "failed to process lists updated event",
					"error", handleErr,
					"subject", msg.Subject)
				if msg.Reply != "" {
					if nakErr := msg.Nak(); nakErr != nil {
						slog.ErrorContext(msgCtx, "failed to nak message", "error", nakErr)
					}
				}
			} else if msg.Reply != "" {
				if ackErr := msg.Ack(); ackErr != nil {
					slog.ErrorContext(msgCtx, "failed to ack message", "error", ackErr)
				}
			}
		},
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", constants.ListsUpdatedSubject, err)
	}

	slog.InfoContext(ctx, "subscribed to lists updated events",
		"subject", constants.ListsUpdatedSubject,
		"queue", constants.WorkerQueue)
	return nil
}
