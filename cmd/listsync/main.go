// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Command listsync keeps a Notion database in step with an AnyList shopping list.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pantrysync/listsync/pkg/log"
	"github.com/pantrysync/listsync/pkg/utils"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const gracefulShutdownSeconds = 10

func init() {
	log.InitStructureLogConfig()
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelConfig := utils.OTelConfigFromEnv()
	if otelConfig.ServiceVersion == "" {
		otelConfig.ServiceVersion = Version
	}
	otelShutdown, err := utils.SetupOTelSDKWithConfig(ctx, otelConfig)
	if err != nil {
		slog.ErrorContext(ctx, "error setting up OpenTelemetry SDK", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
		defer cancel()
		if shutdownErr := otelShutdown(shutdownCtx); shutdownErr != nil {
			slog.ErrorContext(shutdownCtx, "error shutting down OpenTelemetry SDK", "error", shutdownErr)
		}
	}()

	slog.DebugContext(ctx, "starting listsync",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	return execute(ctx, NewRootCommand())
}

// execute runs cmd and maps its outcome to the process exit code
func execute(ctx context.Context, cmd *cobra.Command) int {
	if err := cmd.ExecuteContext(ctx); err != nil {
		logCommandError(ctx, err)
		return 1
	}
	return 0
}
