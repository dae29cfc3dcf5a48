// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pantrysync/listsync/cmd/listsync/service"
	"github.com/pantrysync/listsync/internal/infrastructure/csvfile"
	internalService "github.com/pantrysync/listsync/internal/service"
	"github.com/pantrysync/listsync/pkg/constants"
)

// NewExportCommand creates the command writing an AnyList list to CSV
func NewExportCommand() *cobra.Command {
	var listName, file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the list's items to a Name,Quantity CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			source, err := service.ItemSource(ctx, service.SyncSettings{
				Source:   constants.SourceAnyList,
				ListName: listName,
			})
			if err != nil {
				return err
			}

			count, err := internalService.NewExportService(source, csvfile.NewWriter(file)).Run(ctx)
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "export complete", "file", file, "count", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&listName, "list", "", "AnyList list name (default $ANYLIST_LIST_NAME or Scanned)")
	cmd.Flags().StringVarP(&file, "output", "o", constants.DefaultExportFile, "CSV file to write")

	return cmd
}
