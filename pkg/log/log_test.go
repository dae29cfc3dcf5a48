// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug", input: "debug", expected: slog.LevelDebug},
		{name: "info", input: "info", expected: slog.LevelInfo},
		{name: "warn", input: "warn", expected: slog.LevelWarn},
		{name: "unset falls back to default", input: "", expected: logLevelDefault},
		{name: "unknown falls back to default", input: "verbose", expected: logLevelDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, levelFromEnv(tt.input))
		})
	}
}

func TestAppendCtx_AttributesReachRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "json", &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := AppendCtx(context.Background(), slog.String("run_id", "run-1"))
	ctx = AppendCtx(ctx, slog.String("list", "Scanned"))

	logger.InfoContext(ctx, "processing item", "item", "Bananas")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "run-1", record["run_id"])
	assert.Equal(t, "Scanned", record["list"])
	assert.Equal(t, "Bananas", record["item"])
}

func TestAppendCtx_SiblingsDoNotShareAttributes(t *testing.T) {
	parent := AppendCtx(context.Background(), slog.String("run_id", "run-1"))

	first := AppendCtx(parent, slog.String("item", "first"))
	second := AppendCtx(parent, slog.String("item", "second"))

	firstAttrs := first.Value(slogFields).([]slog.Attr)
	secondAttrs := second.Value(slogFields).([]slog.Attr)

	require.Len(t, firstAttrs, 2)
	require.Len(t, secondAttrs, 2)
	assert.Equal(t, "first", firstAttrs[1].Value.String())
	assert.Equal(t, "second", secondAttrs[1].Value.String())
}

func TestAppendCtx_NilParent(t *testing.T) {
	//nolint:staticcheck // nil parent is handled explicitly
	ctx := AppendCtx(nil, slog.String("k", "v"))
	require.NotNil(t, ctx)

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	require.True(t, ok)
	assert.Len(t, attrs, 1)
}

func TestPriorityCritical(t *testing.T) {
	attr := PriorityCritical()
	assert.Equal(t, "priority", attr.Key)
	assert.Equal(t, "critical", attr.Value.String())
}
