// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	errs "github.com/pantrysync/listsync/pkg/errors"
)

// SyncRunner runs one complete sync
type SyncRunner interface {
	Run(ctx context.Context) (*model.SyncResult, error)
}

// SyncPipeline wires extract, normalize and upsert into a single batch run
type SyncPipeline struct {
	source port.ItemSource
	engine *UpsertEngine

	// optional intermediate file round trip
	exporter port.ItemExporter
	reloader port.ItemSource
}

// PipelineOption customizes a SyncPipeline
type PipelineOption func(*SyncPipeline)

// WithIntermediateFile writes the extracted items through exporter and syncs
// what reloader reads back, so the exported file is exactly what was applied
func WithIntermediateFile(exporter port.ItemExporter, reloader port.ItemSource) PipelineOption {
	return func(p *SyncPipeline) {
		p.exporter = exporter
		p.reloader = reloader
	}
}

// NewSyncPipeline creates a new sync pipeline
func NewSyncPipeline(source port.ItemSource, engine *UpsertEngine, opts ...PipelineOption) *SyncPipeline {
	p := &SyncPipeline{
		source: source,
		engine: engine,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run extracts, normalizes and upserts. Extraction failures are returned as
// errors.Source, record failures follow the engine's policy.
func (p *SyncPipeline) Run(ctx context.Context) (*model.SyncResult, error) {
	ctx, _ = withRunID(ctx)

	slog.InfoContext(ctx, "extracting items from source")
	raw, err := extract(ctx, p.source)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "extracted items from source", "count", len(raw))

	if p.exporter != nil && p.reloader != nil {
		slog.InfoContext(ctx, "writing intermediate file", "count", len(raw))
		if err := p.exporter.Export(ctx, raw); err != nil {
			return nil, errs.NewSource("failed to write intermediate file", err)
		}

		raw, err = extract(ctx, p.reloader)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "parsed records from intermediate file", "count", len(raw))
	}

	items := NormalizeItems(raw)

	result, err := p.engine.Run(ctx, items)
	if err != nil {
		return result, err
	}

	slog.InfoContext(ctx, "destination updated without duplicating entries",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return result, nil
}

// extract calls source and makes sure failures surface as errors.Source
func extract(ctx context.Context, source port.ItemSource) ([]model.RawItem, error) {
	raw, err := source.Extract(ctx)
	if err == nil {
		return raw, nil
	}

	var srcErr errs.Source
	var cfgErr errs.Configuration
	if errors.As(err, &srcErr) || errors.As(err, &cfgErr) {
		return nil, err
	}
	return nil, errs.NewSource("failed to extract items", err)
}
