// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package csvfile reads and writes the Name,Quantity intermediate file
// shared by the export and sync commands.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	errs "github.com/pantrysync/listsync/pkg/errors"
)

// Column headers
const (
	NameColumn     = "Name"
	QuantityColumn = "Quantity"
)

// Reader is an item source backed by a CSV file
type Reader struct {
	path string
}

var _ port.ItemSource = (*Reader)(nil)

// NewReader creates a reader for path
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Extract parses every data row. Columns are located by header name, so
// extra columns and reordering are tolerated.
func (r *Reader) Extract(ctx context.Context) ([]model.RawItem, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.NewSource(fmt.Sprintf("file %s not found", r.path), err)
		}
		return nil, errs.NewSource(fmt.Sprintf("failed to open %s", r.path), err)
	}
	defer f.Close()

	items, err := Decode(f)
	if err != nil {
		return nil, errs.NewSource(fmt.Sprintf("failed to parse %s", r.path), err)
	}

	slog.DebugContext(ctx, "parsed records from file", "path", r.path, "count", len(items))
	return items, nil
}

// Decode reads a Name,Quantity document. An empty document yields no items.
func Decode(in io.Reader) ([]model.RawItem, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []model.RawItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nameIdx, quantityIdx := -1, -1
	for i, column := range header {
		column = strings.TrimSpace(strings.TrimPrefix(column, "\ufeff"))
		switch column {
		case NameColumn:
			nameIdx = i
		case QuantityColumn:
			quantityIdx = i
		}
	}
	if nameIdx < 0 && quantityIdx < 0 {
		return nil, fmt.Errorf("header %q has neither a %s nor a %s column", strings.Join(header, ","), NameColumn, QuantityColumn)
	}

	items := []model.RawItem{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		items = append(items, model.RawItem{
			Name:     field(row, nameIdx),
			Quantity: field(row, quantityIdx),
		})
	}
	return items, nil
}

func field(row []string, idx int) *string {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	v := row[idx]
	return &v
}

// Writer is an item exporter backed by a CSV file
type Writer struct {
	path string
}

var _ port.ItemExporter = (*Writer)(nil)

// NewWriter creates a writer for path
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Export replaces the file with a header row followed by one row per item
func (w *Writer) Export(ctx context.Context, items []model.RawItem) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", w.path, err)
	}

	if err := Encode(f, items); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", w.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", w.path, err)
	}

	slog.InfoContext(ctx, "items written to file", "path", w.path, "count", len(items))
	return nil
}

// Encode writes a Name,Quantity document. Fields containing commas, quotes
// or line breaks are quoted with inner quotes doubled. A "\r\n" inside a
// field is read back by Decode as "\n".
func Encode(out io.Writer, items []model.RawItem) error {
	writer := csv.NewWriter(out)

	if err := writer.Write([]string{NameColumn, QuantityColumn}); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{item.NameOrEmpty(), item.QuantityOrEmpty()}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
