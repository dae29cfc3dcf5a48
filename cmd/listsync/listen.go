// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/pantrysync/listsync/cmd/listsync/service"
	"github.com/pantrysync/listsync/internal/infrastructure/anylist"
	internalService "github.com/pantrysync/listsync/internal/service"
	"github.com/pantrysync/listsync/pkg/errors"
)

// NewListenCommand creates the long-running change notifier
func NewListenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Notify GitHub and NATS whenever an AnyList list changes",
		Long: `Holds a realtime connection to AnyList and, for every list update, fires a
GitHub repository_dispatch (when GITHUB_TOKEN is set) and publishes a NATS event
(when NATS_URL is set). Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := service.AnyListConfig("")
			if err != nil {
				return err
			}

			notifiers, cleanup, err := service.Notifiers(ctx)
			defer cleanup()
			if err != nil {
				return err
			}
			if len(notifiers) == 0 {
				return errors.NewConfiguration("no notifier configured: set GITHUB_TOKEN or NATS_URL")
			}

			client, err := service.AnyListClient(ctx, cfg)
			if err != nil {
				return err
			}

			listener := anylist.NewListener(client, cfg)
			return internalService.NewChangeNotifier(listener, notifiers...).Run(ctx)
		},
	}

	return cmd
}
