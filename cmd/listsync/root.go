// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pantrysync/listsync/pkg/errors"
	"github.com/pantrysync/listsync/pkg/log"
)

// NewRootCommand creates the listsync command tree
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "listsync",
		Short:         "Sync an AnyList shopping list into a Notion database",
		Long:          "Exports AnyList items, upserts them into Notion by name and fires CI triggers when lists change.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true, // errors are logged by main
	}

	cmd.AddCommand(NewSyncCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewListenCommand())
	cmd.AddCommand(NewWorkerCommand())
	cmd.AddCommand(NewSchemaCommand())

	return cmd
}

// logCommandError logs err with a category so failed runs are easy to tell apart
func logCommandError(ctx context.Context, err error) {
	var (
		configErr errors.Configuration
		sourceErr errors.Source
		recordErr errors.Record
	)

	switch {
	case stderrors.As(err, &recordErr):
		slog.ErrorContext(ctx, "sync stopped on a failed record",
			"error", err,
			"item", recordErr.Name,
			log.PriorityCritical(),
		)
	case stderrors.As(err, &configErr):
		slog.ErrorContext(ctx, "invalid configuration", "error", err)
	case stderrors.As(err, &sourceErr):
		slog.ErrorContext(ctx, "failed to read items from source", "error", err)
	default:
		slog.ErrorContext(ctx, "command failed", "error", err)
	}
}
