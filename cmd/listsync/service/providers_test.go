// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/infrastructure/csvfile"
	"github.com/pantrysync/listsync/pkg/constants"
	"github.com/pantrysync/listsync/pkg/errors"
)

// unsetenv removes key for the duration of the test so envconfig defaults apply
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestRecordErrorPolicy(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		env     string
		want    model.RecordErrorPolicy
		wantErr bool
	}{
		{name: "default is abort", want: model.OnRecordErrorAbort},
		{name: "from environment", env: "skip-and-continue", want: model.OnRecordErrorSkip},
		{name: "flag wins over environment", flag: "abort", env: "skip-and-continue", want: model.OnRecordErrorAbort},
		{name: "case insensitive", flag: "Skip-And-Continue", want: model.OnRecordErrorSkip},
		{name: "unknown value", flag: "retry", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.EnvOnRecordError, tt.env)

			got, err := RecordErrorPolicy(tt.flag)
			if tt.wantErr {
				var configErr errors.Configuration
				assert.ErrorAs(t, err, &configErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemSource(t *testing.T) {
	ctx := context.Background()

	t.Run("csv source defaults to the export file", func(t *testing.T) {
		source, err := ItemSource(ctx, SyncSettings{Source: constants.SourceCSV})
		require.NoError(t, err)
		assert.IsType(t, &csvfile.Reader{}, source)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := ItemSource(ctx, SyncSettings{Source: "dropbox"})
		var configErr errors.Configuration
		require.ErrorAs(t, err, &configErr)
		assert.Contains(t, err.Error(), "unsupported source: dropbox")
	})

	t.Run("anylist source requires credentials", func(t *testing.T) {
		t.Setenv("ANYLIST_EMAIL", "")
		t.Setenv("ANYLIST_PASSWORD", "")

		_, err := ItemSource(ctx, SyncSettings{Source: constants.SourceAnyList})
		var configErr errors.Configuration
		require.ErrorAs(t, err, &configErr)
		assert.Contains(t, err.Error(), "ANYLIST_EMAIL")
	})
}

func TestAnyListConfig_ListNameOverride(t *testing.T) {
	t.Setenv("ANYLIST_EMAIL", "cook@example.com")
	t.Setenv("ANYLIST_PASSWORD", "hunter2")
	t.Setenv("ANYLIST_LIST_NAME", "Groceries")

	cfg, err := AnyListConfig("")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", cfg.ListName)

	cfg, err = AnyListConfig("Pantry")
	require.NoError(t, err)
	assert.Equal(t, "Pantry", cfg.ListName)
}

func TestSyncPipeline_ConfigurationErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		env      map[string]string
		settings SyncSettings
		contains string
	}{
		{
			name:     "missing notion token",
			env:      map[string]string{"NOTION_TOKEN": "", "NOTION_DATABASE_ID": "db"},
			settings: SyncSettings{Source: constants.SourceCSV},
			contains: "NOTION_TOKEN",
		},
		{
			name:     "missing database",
			env:      map[string]string{"NOTION_TOKEN": "secret", "NOTION_DATABASE_ID": ""},
			settings: SyncSettings{Source: constants.SourceCSV},
			contains: "NOTION_DATABASE_ID",
		},
		{
			name:     "bad policy",
			env:      map[string]string{"NOTION_TOKEN": "secret", "NOTION_DATABASE_ID": "db"},
			settings: SyncSettings{Source: constants.SourceCSV, OnRecordError: "ignore"},
			contains: "record error policy",
		},
		{
			name:     "bad match type",
			env:      map[string]string{"NOTION_TOKEN": "secret", "NOTION_DATABASE_ID": "db"},
			settings: SyncSettings{Source: constants.SourceCSV, MatchType: "fuzzy"},
			contains: "MatchType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.EnvOnRecordError, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := SyncPipeline(ctx, tt.settings)
			var configErr errors.Configuration
			require.ErrorAs(t, err, &configErr)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestSyncPipeline_CSVSource(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "secret")
	t.Setenv("NOTION_DATABASE_ID", "db")
	unsetenv(t, "NOTION_MATCH_TYPE")
	t.Setenv(constants.EnvOnRecordError, "")

	pipeline, err := SyncPipeline(context.Background(), SyncSettings{
		Source:     constants.SourceCSV,
		File:       "items.csv",
		ExportFile: "out.csv",
	})
	require.NoError(t, err)
	assert.NotNil(t, pipeline)
}

func TestNotifiers(t *testing.T) {
	ctx := context.Background()

	t.Run("none configured", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv(constants.EnvNATSURL, "")

		notifiers, cleanup, err := Notifiers(ctx)
		require.NoError(t, err)
		require.NotNil(t, cleanup)
		cleanup()
		assert.Empty(t, notifiers)
	})

	t.Run("github", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "ghp_test")
		t.Setenv("GITHUB_REPO_OWNER", "pantry")
		t.Setenv("GITHUB_REPO_NAME", "inventory")
		unsetenv(t, "GITHUB_EVENT_TYPE")
		unsetenv(t, "GITHUB_API_URL")
		t.Setenv(constants.EnvNATSURL, "")

		notifiers, cleanup, err := Notifiers(ctx)
		require.NoError(t, err)
		defer cleanup()
		require.Len(t, notifiers, 1)
		assert.Equal(t, "github", notifiers[0].Name())
	})

	t.Run("github without repository", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "ghp_test")
		t.Setenv("GITHUB_REPO_OWNER", "")
		t.Setenv("GITHUB_REPO_NAME", "")

		_, cleanup, err := Notifiers(ctx)
		defer cleanup()
		var configErr errors.Configuration
		assert.ErrorAs(t, err, &configErr)
	})
}
