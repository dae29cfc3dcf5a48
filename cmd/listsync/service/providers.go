// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service builds the adapters and services used by the listsync commands.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	"github.com/pantrysync/listsync/internal/infrastructure/anylist"
	"github.com/pantrysync/listsync/internal/infrastructure/csvfile"
	"github.com/pantrysync/listsync/internal/infrastructure/github"
	"github.com/pantrysync/listsync/internal/infrastructure/nats"
	"github.com/pantrysync/listsync/internal/infrastructure/notion"
	internalService "github.com/pantrysync/listsync/internal/service"
	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/errors"
)

// SyncSettings carries the command line overrides for one sync.
// Empty fields fall back to the environment.
type SyncSettings struct {
	Source        string
	ListName      string
	File          string
	ExportFile    string
	OnRecordError string
	MatchType     string
}

// AnyListConfig reads and validates the AnyList settings, applying listName when set
func AnyListConfig(listName string) (anylist.Config, error) {
	cfg, err := anylist.NewConfigFromEnv()
	if err != nil {
		return anylist.Config{}, err
	}
	if listName != "" {
		cfg.ListName = listName
	}
	if err := cfg.Validate(); err != nil {
		return anylist.Config{}, err
	}
	return cfg, nil
}

// AnyListClient creates the AnyList client
func AnyListClient(ctx context.Context, cfg anylist.Config) (*anylist.Client, error) {
	slog.InfoContext(ctx, "initializing AnyList client", "base_url", cfg.BaseURL)

	client, err := anylist.NewClient(cfg)
	if err != nil {
		return nil, errors.NewConfiguration("failed to create AnyList client", err)
	}
	return client, nil
}

// NotionConfig reads and validates the Notion settings, applying matchType when set
func NotionConfig(matchType string) (notion.Config, error) {
	cfg, err := notion.NewConfigFromEnv()
	if err != nil {
		return notion.Config{}, err
	}
	if matchType != "" {
		cfg.MatchType = matchType
	}
	if err := cfg.Validate(); err != nil {
		return notion.Config{}, err
	}
	return cfg, nil
}

// NotionClient creates the Notion client
func NotionClient(ctx context.Context, cfg notion.Config) (*notion.Client, error) {
	slog.InfoContext(ctx, "initializing Notion client", "base_url", cfg.BaseURL)

	client, err := notion.NewClient(cfg)
	if err != nil {
		return nil, errors.NewConfiguration("failed to create Notion client", err)
	}
	return client, nil
}

// RecordErrorPolicy resolves the record error policy from the flag, then the
// environment, then the abort default
func RecordErrorPolicy(flag string) (model.RecordErrorPolicy, error) {
	value := flag
	if value == "" {
		value = os.Getenv(constants.EnvOnRecordError)
	}
	if value == "" {
		return model.OnRecordErrorAbort, nil
	}

	switch policy := model.RecordErrorPolicy(strings.ToLower(value)); policy {
	case model.OnRecordErrorAbort, model.OnRecordErrorSkip:
		return policy, nil
	default:
		return "", errors.NewConfiguration(fmt.Sprintf("unsupported record error policy %q (must be %s or %s)",
			value, model.OnRecordErrorAbort, model.OnRecordErrorSkip))
	}
}

// ItemSource builds the source named by settings.Source
func ItemSource(ctx context.Context, settings SyncSettings) (port.ItemSource, error) {
	if err := constants.ValidateSource(settings.Source); err != nil {
		return nil, errors.NewConfiguration("invalid source", err)
	}

	slog.InfoContext(ctx, "initializing item source",
		"source", settings.Source,
		"description", constants.SourceDescription(settings.Source),
	)

	switch settings.Source {
	case constants.SourceCSV:
		file := settings.File
		if file == "" {
			file = constants.DefaultExportFile
		}
		return csvfile.NewReader(file), nil
	default:
		cfg, err := AnyListConfig(settings.ListName)
		if err != nil {
			return nil, err
		}
		client, err := AnyListClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return anylist.NewSource(client, cfg.ListName), nil
	}
}

// SyncPipeline builds the full extract, normalize and upsert pipeline.
// Every configuration problem is reported before any item is read.
func SyncPipeline(ctx context.Context, settings SyncSettings) (*internalService.SyncPipeline, error) {
	policy, err := RecordErrorPolicy(settings.OnRecordError)
	if err != nil {
		return nil, err
	}

	notionCfg, err := NotionConfig(settings.MatchType)
	if err != nil {
		return nil, err
	}

	source, err := ItemSource(ctx, settings)
	if err != nil {
		return nil, err
	}

	client, err := NotionClient(ctx, notionCfg)
	if err != nil {
		return nil, err
	}

	options := notionCfg.SyncOptions(policy)
	if err := options.Validate(); err != nil {
		return nil, errors.NewConfiguration("invalid sync options", err)
	}

	options, err = internalService.ResolveMatchType(ctx, notion.NewSchema(client), options)
	if err != nil {
		return nil, err
	}

	destination, err := notion.NewDestination(client, notionCfg.DatabaseID, options)
	if err != nil {
		return nil, err
	}

	engine, err := internalService.NewUpsertEngine(destination, options)
	if err != nil {
		return nil, err
	}

	var opts []internalService.PipelineOption
	if settings.ExportFile != "" {
		slog.InfoContext(ctx, "items will be written to an intermediate file before syncing",
			"file", settings.ExportFile)
		opts = append(opts, internalService.WithIntermediateFile(
			csvfile.NewWriter(settings.ExportFile),
			csvfile.NewReader(settings.ExportFile),
		))
	}

	return internalService.NewSyncPipeline(source, engine, opts...), nil
}

// NATSClient connects to NATS using the environment settings
func NATSClient(ctx context.Context) (*nats.NATSClient, error) {
	cfg, err := nats.NewConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return nats.NewClient(ctx, cfg)
}

// Notifiers builds every notifier configured in the environment. GitHub is
// enabled by GITHUB_TOKEN, NATS by NATS_URL. The returned cleanup releases
// the NATS connection and is never nil.
func Notifiers(ctx context.Context) ([]port.Notifier, func(), error) {
	var notifiers []port.Notifier
	cleanup := func() {}

	if os.Getenv("GITHUB_TOKEN") != "" {
		cfg, err := github.NewConfigFromEnv()
		if err != nil {
			return nil, cleanup, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, cleanup, err
		}
		dispatcher, err := github.NewDispatcher(cfg)
		if err != nil {
			return nil, cleanup, errors.NewConfiguration("failed to create GitHub dispatcher", err)
		}
		slog.InfoContext(ctx, "GitHub repository dispatch enabled",
			"repository", cfg.RepoOwner+"/"+cfg.RepoName,
			"event_type", cfg.EventType)
		notifiers = append(notifiers, dispatcher)
	}

	if os.Getenv(constants.EnvNATSURL) != "" {
		client, err := NATSClient(ctx)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() {
			if errClose := client.Close(); errClose != nil {
				slog.ErrorContext(ctx, "failed to close NATS connection", "error", errClose)
			}
		}
		slog.InfoContext(ctx, "NATS publishing enabled", "subject", constants.ListsUpdatedSubject)
		notifiers = append(notifiers, nats.NewMessagePublisher(client))
	}

	return notifiers, cleanup, nil
}
