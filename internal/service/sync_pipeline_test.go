// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/infrastructure/mock"
	errs "github.com/pantrysync/listsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncPipeline_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes then upserts", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		source := mock.NewStaticSource(
			model.NewRawItem("Bananas", "5"),
			model.NewRawItem("", "2 bags"),
			model.NewRawItem("Salt", "a pinch"),
		)
		pipeline := NewSyncPipeline(source, newTestEngine(t, dest, model.OnRecordErrorAbort))

		result, err := pipeline.Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Created)
		assert.Equal(t, map[string][]float64{
			"Bananas":         {5},
			model.UnnamedItem: {2},
			"Salt":            {0},
		}, dest.Quantities())
	})

	t.Run("empty source is a successful no-op", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		pipeline := NewSyncPipeline(mock.NewStaticSource(), newTestEngine(t, dest, model.OnRecordErrorAbort))

		result, err := pipeline.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Processed)
		assert.Empty(t, dest.Calls())
	})

	t.Run("source failure is wrapped and nothing is written", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		source := &mock.StaticSource{Err: errors.New("connection refused")}
		pipeline := NewSyncPipeline(source, newTestEngine(t, dest, model.OnRecordErrorAbort))

		_, err := pipeline.Run(ctx)
		var srcErr errs.Source
		require.ErrorAs(t, err, &srcErr)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Empty(t, dest.Calls())
	})

	t.Run("typed source failure passes through", func(t *testing.T) {
		source := &mock.StaticSource{Err: errs.NewSource(`list "Scanned" not found`)}
		pipeline := NewSyncPipeline(source, newTestEngine(t, mock.NewMemoryDestination(), model.OnRecordErrorAbort))

		_, err := pipeline.Run(ctx)
		assert.EqualError(t, err, `list "Scanned" not found`)
	})

	t.Run("intermediate file is written and re-read", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		source := mock.NewStaticSource(model.NewRawItem("Milk", "1"))
		file := mock.NewMemoryFile()
		pipeline := NewSyncPipeline(source, newTestEngine(t, dest, model.OnRecordErrorAbort), WithIntermediateFile(file, file))

		_, err := pipeline.Run(ctx)
		require.NoError(t, err)

		assert.True(t, file.Written())
		assert.Equal(t, map[string][]float64{"Milk": {1}}, dest.Quantities())
	})

	t.Run("intermediate file failure is a source error", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		file := mock.NewMemoryFile()
		file.Err = errors.New("disk full")
		pipeline := NewSyncPipeline(mock.NewStaticSource(model.NewRawItem("Milk", "1")),
			newTestEngine(t, dest, model.OnRecordErrorAbort), WithIntermediateFile(file, file))

		_, err := pipeline.Run(ctx)
		var srcErr errs.Source
		assert.ErrorAs(t, err, &srcErr)
		assert.Empty(t, dest.Calls())
	})

	t.Run("record failure under abort is returned with partial result", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		dest.FailOn(mock.OpCreate, "B", errors.New("rejected"))
		source := mock.NewStaticSource(
			model.NewRawItem("A", "1"),
			model.NewRawItem("B", "1"),
			model.NewRawItem("C", "1"),
		)
		pipeline := NewSyncPipeline(source, newTestEngine(t, dest, model.OnRecordErrorAbort))

		result, err := pipeline.Run(ctx)
		var recordErr errs.Record
		require.ErrorAs(t, err, &recordErr)
		assert.Equal(t, 1, result.Created)
	})
}

func TestExportService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("exports every item", func(t *testing.T) {
		file := mock.NewMemoryFile()
		svc := NewExportService(mock.NewStaticSource(model.NewRawItem("Milk", "1"), model.NewRawItem("Eggs", "12")), file)

		n, err := svc.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		items, err := file.Extract(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("empty list still writes the file", func(t *testing.T) {
		file := mock.NewMemoryFile()
		n, err := NewExportService(mock.NewStaticSource(), file).Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.True(t, file.Written())
	})

	t.Run("source failure", func(t *testing.T) {
		file := mock.NewMemoryFile()
		_, err := NewExportService(&mock.StaticSource{Err: errors.New("login failed")}, file).Run(ctx)
		var srcErr errs.Source
		assert.ErrorAs(t, err, &srcErr)
		assert.False(t, file.Written())
	})
}
