// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/infrastructure/mock"
	errs "github.com/pantrysync/listsync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMatchType(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		matchType    model.MatchType
		propertyType string
		expected     model.MatchType
		wantErr      bool
	}{
		{"explicit type is kept", model.MatchTypeText, "number", model.MatchTypeText, false},
		{"auto resolves title", model.MatchTypeAuto, "title", model.MatchTypeTitle, false},
		{"auto resolves rich_text", model.MatchTypeAuto, "rich_text", model.MatchTypeRichText, false},
		{"auto rejects number", model.MatchTypeAuto, "number", model.MatchTypeAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := mock.NewMemoryDestination()
			dest.SetPropertyType(model.DefaultNameProperty, tt.propertyType)

			opts := model.DefaultSyncOptions()
			opts.MatchType = tt.matchType

			resolved, err := ResolveMatchType(ctx, dest, opts)
			if tt.wantErr {
				var cfgErr errs.Configuration
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resolved.MatchType)
		})
	}

	t.Run("missing property", func(t *testing.T) {
		opts := model.DefaultSyncOptions()
		opts.NameProperty = "Item"
		opts.MatchType = model.MatchTypeAuto

		_, err := ResolveMatchType(ctx, mock.NewMemoryDestination(), opts)
		var cfgErr errs.Configuration
		assert.ErrorAs(t, err, &cfgErr)
	})
}
