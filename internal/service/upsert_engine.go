// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	errs "github.com/pantrysync/listsync/pkg/errors"
	"github.com/pantrysync/listsync/pkg/log"
)

const instrumentationName = "github.com/pantrysync/listsync/internal/service"

var tracer = otel.Tracer(instrumentationName)

type upsertOutcome string

const (
	outcomeCreated upsertOutcome = "created"
	outcomeUpdated upsertOutcome = "updated"
	outcomeFailed  upsertOutcome = "failed"
)

// UpsertEngine makes the destination hold exactly one record per item name,
// carrying the item's current quantity. Records are processed one at a time
// in input order.
type UpsertEngine struct {
	destination port.DestinationWriter
	options     model.SyncOptions
	records     metric.Int64Counter
}

// NewUpsertEngine validates options and builds an engine writing to destination.
// options.MatchType must already be resolved (not "auto").
func NewUpsertEngine(destination port.DestinationWriter, options model.SyncOptions) (*UpsertEngine, error) {
	if destination == nil {
		return nil, errs.NewConfiguration("upsert engine requires a destination")
	}
	if err := options.Validate(); err != nil {
		return nil, errs.NewConfiguration("invalid sync options", err)
	}
	if options.MatchType == model.MatchTypeAuto {
		return nil, errs.NewConfiguration("match type auto must be resolved against the destination schema first")
	}

	records, err := otel.Meter(instrumentationName).Int64Counter("listsync.records",
		metric.WithDescription("Items processed by the upsert engine, by outcome"),
	)
	if err != nil {
		slog.Warn("failed to create records counter, metrics disabled", "error", err)
		records, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("listsync.records")
	}

	return &UpsertEngine{
		destination: destination,
		options:     options,
		records:     records,
	}, nil
}

// Run upserts every item. Under the abort policy the first failure stops the
// run and is returned as an errors.Record; under skip-and-continue failures
// are logged and listed in the result's SkippedNames.
func (e *UpsertEngine) Run(ctx context.Context, items []model.Item) (*model.SyncResult, error) {
	ctx, runID := withRunID(ctx)

	ctx, span := tracer.Start(ctx, "upsert.run", trace.WithAttributes(
		attribute.Int("items", len(items)),
		attribute.String("on_record_error", string(e.options.OnRecordError)),
	))
	defer span.End()

	result := &model.SyncResult{RunID: runID}

	slog.InfoContext(ctx, "starting upsert run",
		"items", len(items),
		"name_property", e.options.NameProperty,
		"quantity_property", e.options.QuantityProperty,
		"match_type", e.options.MatchType,
		"on_record_error", e.options.OnRecordError,
	)

	for index, item := range items {
		recordCtx := log.AppendCtx(ctx, slog.Int("record", index+1))

		outcome, err := e.upsert(recordCtx, item)
		result.Processed++
		e.records.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))

		if err != nil {
			recordErr := errs.NewRecord(item.Name, "upsert failed", err)

			if e.options.OnRecordError == model.OnRecordErrorAbort {
				slog.ErrorContext(recordCtx, "aborting run on record error",
					"item", item.Name,
					"error", err,
					"remaining", len(items)-index-1,
					log.PriorityCritical(),
				)
				span.RecordError(recordErr)
				span.SetStatus(codes.Error, "record error")
				return result, recordErr
			}

			slog.WarnContext(recordCtx, "skipping item after record error",
				"item", item.Name,
				"error", err,
			)
			result.Skipped++
			result.SkippedNames = append(result.SkippedNames, item.Name)
			continue
		}

		switch outcome {
		case outcomeCreated:
			result.Created++
		case outcomeUpdated:
			result.Updated++
		}
	}

	span.SetAttributes(
		attribute.Int("created", result.Created),
		attribute.Int("updated", result.Updated),
		attribute.Int("skipped", result.Skipped),
	)

	slog.InfoContext(ctx, "upsert run finished",
		"processed", result.Processed,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	if result.Skipped > 0 {
		slog.WarnContext(ctx, "some items were not synced",
			"skipped_names", result.SkippedNames,
		)
	}

	return result, nil
}

// upsert handles a single item: query by name, then update the first match
// or create a new record
func (e *UpsertEngine) upsert(ctx context.Context, item model.Item) (upsertOutcome, error) {
	ctx, span := tracer.Start(ctx, "upsert.record", trace.WithAttributes(attribute.String("item.name", item.Name)))
	defer span.End()

	slog.InfoContext(ctx, "processing item",
		"item", item.Name,
		"quantity", item.Quantity,
	)

	matches, err := e.destination.QueryByName(ctx, item.Name)
	if err != nil {
		span.RecordError(err)
		return outcomeFailed, fmt.Errorf("query failed: %w", err)
	}

	slog.DebugContext(ctx, "queried destination for existing records",
		"item", item.Name,
		"matches", len(matches),
	)

	if len(matches) > 0 {
		target := matches[0]
		if len(matches) > 1 {
			slog.WarnContext(ctx, "multiple destination records share this name, updating the first",
				"item", item.Name,
				"matches", len(matches),
				"record_id", target.ID,
			)
		}

		if err := e.destination.UpdateQuantity(ctx, target.ID, item.Quantity); err != nil {
			span.RecordError(err)
			return outcomeFailed, fmt.Errorf("update of record %s failed: %w", target.ID, err)
		}

		slog.InfoContext(ctx, "updated quantity",
			"item", item.Name,
			"record_id", target.ID,
			"quantity", item.Quantity,
		)
		return outcomeUpdated, nil
	}

	created, err := e.destination.Create(ctx, item)
	if err != nil {
		span.RecordError(err)
		return outcomeFailed, fmt.Errorf("create failed: %w", err)
	}

	attrs := []any{"item", item.Name, "quantity", item.Quantity}
	if created != nil {
		attrs = append(attrs, "record_id", created.ID)
	}
	slog.InfoContext(ctx, "created new record", attrs...)

	return outcomeCreated, nil
}
