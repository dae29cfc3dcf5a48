// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"

	"github.com/pantrysync/listsync/internal/domain/port"
	errs "github.com/pantrysync/listsync/pkg/errors"
)

// ExportService copies the items of a source into an intermediate file
type ExportService struct {
	source   port.ItemSource
	exporter port.ItemExporter
}

// NewExportService creates a new export service
func NewExportService(source port.ItemSource, exporter port.ItemExporter) *ExportService {
	return &ExportService{
		source:   source,
		exporter: exporter,
	}
}

// Run extracts all items and writes them. It returns the number of items written.
func (s *ExportService) Run(ctx context.Context) (int, error) {
	ctx, _ = withRunID(ctx)

	raw, err := extract(ctx, s.source)
	if err != nil {
		return 0, err
	}

	if len(raw) == 0 {
		slog.WarnContext(ctx, "no items found, exporting header only")
	}

	if err := s.exporter.Export(ctx, raw); err != nil {
		return 0, errs.NewSource("failed to export items", err)
	}

	slog.InfoContext(ctx, "items exported", "count", len(raw))
	return len(raw), nil
}
