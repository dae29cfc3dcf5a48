// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pantrysync/listsync/cmd/listsync/service"
	"github.com/pantrysync/listsync/pkg/constants"
)

// NewSyncCommand creates the one-shot sync command
func NewSyncCommand() *cobra.Command {
	settings := service.SyncSettings{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upsert the list's items into the Notion database",
		Long: `Reads the items of one AnyList list (or an exported CSV file), normalizes them
and makes the Notion database hold exactly one record per item name with the
item's current quantity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pipeline, err := service.SyncPipeline(ctx, settings)
			if err != nil {
				return err
			}

			result, err := pipeline.Run(ctx)
			if err != nil {
				return err
			}

			if result.Skipped > 0 {
				slog.WarnContext(ctx, "sync finished with skipped items",
					"skipped", result.Skipped,
					"items", result.SkippedNames,
				)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&settings.Source, "source", constants.SourceAnyList, "where items are read from (anylist|csv)")
	flags.StringVar(&settings.ListName, "list", "", "AnyList list name (default $ANYLIST_LIST_NAME or Scanned)")
	flags.StringVar(&settings.File, "file", constants.DefaultExportFile, "CSV file read by the csv source")
	flags.StringVar(&settings.ExportFile, "export-file", "", "write extracted items to this CSV file and sync from it")
	flags.StringVar(&settings.OnRecordError, "on-record-error", "", "abort|skip-and-continue (default $SYNC_ON_RECORD_ERROR or abort)")
	flags.StringVar(&settings.MatchType, "match-type", "", "name filter key: title|rich_text|text|auto (default $NOTION_MATCH_TYPE or title)")

	return cmd
}
