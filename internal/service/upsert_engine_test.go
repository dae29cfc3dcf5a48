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

func newTestEngine(t *testing.T, dest *mock.MemoryDestination, policy model.RecordErrorPolicy) *UpsertEngine {
	t.Helper()

	opts := model.DefaultSyncOptions()
	opts.OnRecordError = policy

	engine, err := NewUpsertEngine(dest, opts)
	require.NoError(t, err)
	return engine
}

func TestNewUpsertEngine(t *testing.T) {
	t.Run("nil destination", func(t *testing.T) {
		_, err := NewUpsertEngine(nil, model.DefaultSyncOptions())
		var cfgErr errs.Configuration
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("invalid options", func(t *testing.T) {
		opts := model.DefaultSyncOptions()
		opts.MatchType = "fuzzy"

		_, err := NewUpsertEngine(mock.NewMemoryDestination(), opts)
		var cfgErr errs.Configuration
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), "fuzzy")
	})

	t.Run("unresolved auto match type", func(t *testing.T) {
		opts := model.DefaultSyncOptions()
		opts.MatchType = model.MatchTypeAuto

		_, err := NewUpsertEngine(mock.NewMemoryDestination(), opts)
		var cfgErr errs.Configuration
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestUpsertEngine_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing record", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		engine := newTestEngine(t, dest, model.OnRecordErrorAbort)

		result, err := engine.Run(ctx, []model.Item{{Name: "Bananas", Quantity: 5}})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 0, result.Updated)
		assert.Equal(t, 1, dest.CountCalls(mock.OpCreate))
		assert.Equal(t, []model.DestinationRecord{{ID: "page-1", Name: "Bananas", Quantity: 5}}, dest.Records())
	})

	t.Run("updates existing record in place", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		dest.Seed(model.DestinationRecord{ID: "p1", Name: "Bananas", Quantity: 5})
		engine := newTestEngine(t, dest, model.OnRecordErrorAbort)

		result, err := engine.Run(ctx, []model.Item{{Name: "Bananas", Quantity: 8}})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Updated)
		assert.Equal(t, 0, dest.CountCalls(mock.OpCreate))
		assert.Equal(t, []mock.Call{
			{Op: mock.OpQuery, Name: "Bananas"},
			{Op: mock.OpUpdate, ID: "p1", Quantity: 8},
		}, dest.Calls())
		assert.Equal(t, []model.DestinationRecord{{ID: "p1", Name: "Bananas", Quantity: 8}}, dest.Records())
	})

	t.Run("second run does not duplicate", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		engine := newTestEngine(t, dest, model.OnRecordErrorAbort)
		items := []model.Item{{Name: "Milk", Quantity: 1}, {Name: "Eggs", Quantity: 12}}

		_, err := engine.Run(ctx, items)
		require.NoError(t, err)
		first := dest.Records()

		result, err := engine.Run(ctx, items)
		require.NoError(t, err)

		assert.Equal(t, 0, result.Created)
		assert.Equal(t, 2, result.Updated)
		assert.Equal(t, first, dest.Records())
	})

	t.Run("repeated name in one batch ends with the last quantity", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		engine := newTestEngine(t, dest, model.OnRecordErrorAbort)

		result, err := engine.Run(ctx, []model.Item{{Name: "Milk", Quantity: 1}, {Name: "Milk", Quantity: 3}})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 1, result.Updated)
		assert.Equal(t, map[string][]float64{"Milk": {3}}, dest.Quantities())
	})

	t.Run("duplicate destination records update only the first", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		dest.Seed(
			model.DestinationRecord{ID: "a", Name: "Rice", Quantity: 1},
			model.DestinationRecord{ID: "b", Name: "Rice", Quantity: 1},
		)
		engine := newTestEngine(t, dest, model.OnRecordErrorAbort)

		_, err := engine.Run(ctx, []model.Item{{Name: "Rice", Quantity: 4}})
		require.NoError(t, err)

		assert.Equal(t, []model.DestinationRecord{
			{ID: "a", Name: "Rice", Quantity: 4},
			{ID: "b", Name: "Rice", Quantity: 1},
		}, dest.Records())
	})

	t.Run("empty input makes no calls", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		engine := newTestEngine(t, dest, model.OnRecordErrorAbort)

		result, err := engine.Run(ctx, []model.Item{})
		require.NoError(t, err)

		assert.Equal(t, 0, result.Processed)
		assert.Empty(t, dest.Calls())
		assert.NotEmpty(t, result.RunID)
	})

	t.Run("abort stops at the failing record", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		dest.FailOn(mock.OpCreate, "Eggs", errs.NewServiceUnavailable("destination unavailable"))
		engine := newTestEngine(t, dest, model.OnRecordErrorAbort)

		result, err := engine.Run(ctx, []model.Item{
			{Name: "Milk", Quantity: 1},
			{Name: "Eggs", Quantity: 12},
			{Name: "Bread", Quantity: 2},
		})
		require.Error(t, err)

		var recordErr errs.Record
		require.ErrorAs(t, err, &recordErr)
		assert.Equal(t, "Eggs", recordErr.Name)

		var unavailable errs.ServiceUnavailable
		assert.ErrorAs(t, err, &unavailable)

		require.NotNil(t, result)
		assert.Equal(t, 2, result.Processed)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, map[string][]float64{"Milk": {1}}, dest.Quantities())
		for _, c := range dest.Calls() {
			assert.NotEqual(t, "Bread", c.Name, "items after the failure must not be processed")
		}
	})

	t.Run("skip and continue processes remaining records", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		dest.FailOn(mock.OpQuery, "Eggs", errors.New("timeout"))
		engine := newTestEngine(t, dest, model.OnRecordErrorSkip)

		result, err := engine.Run(ctx, []model.Item{
			{Name: "Milk", Quantity: 1},
			{Name: "Eggs", Quantity: 12},
			{Name: "Bread", Quantity: 2},
		})
		require.NoError(t, err)

		assert.Equal(t, 3, result.Processed)
		assert.Equal(t, 2, result.Created)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, []string{"Eggs"}, result.SkippedNames)
		assert.Equal(t, map[string][]float64{"Milk": {1}, "Bread": {2}}, dest.Quantities())
	})

	t.Run("update failure under skip policy leaves record untouched", func(t *testing.T) {
		dest := mock.NewMemoryDestination()
		ids := dest.Seed(model.DestinationRecord{Name: "Milk", Quantity: 1})
		dest.FailOn(mock.OpUpdate, ids[0], errs.NewNotFound("page archived"))
		engine := newTestEngine(t, dest, model.OnRecordErrorSkip)

		result, err := engine.Run(ctx, []model.Item{{Name: "Milk", Quantity: 9}})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, map[string][]float64{"Milk": {1}}, dest.Quantities())
	})
}
