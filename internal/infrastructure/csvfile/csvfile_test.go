// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package csvfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrysync/listsync/internal/domain/model"
	errs "github.com/pantrysync/listsync/pkg/errors"
)

func exportFixture() []model.RawItem {
	empty := ""
	three := "3"
	return []model.RawItem{
		model.NewRawItem("Milk", "1"),
		model.NewRawItem(`Café, "dark"`, "2.5"),
		{Name: strPtr("Eggs"), Quantity: &empty},
		{Quantity: &three},
		model.NewRawItem(" Rice", "2 bags"),
	}
}

func strPtr(s string) *string {
	return &s
}

func TestEncodeGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, exportFixture()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "export", buf.Bytes())
}

func TestRoundTrip(t *testing.T) {
	items := []model.RawItem{
		model.NewRawItem("Milk", "1"),
		model.NewRawItem(`Café, "dark"`, "2.5"),
		model.NewRawItem(`"quoted"`, "0"),
		model.NewRawItem("multi\nline", "4"),
		model.NewRawItem("", ""),
	}

	path := filepath.Join(t.TempDir(), "items.csv")
	ctx := context.Background()

	require.NoError(t, NewWriter(path).Export(ctx, items))

	got, err := NewReader(path).Extract(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestRoundTrip_CRLFInsideField(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []model.RawItem{model.NewRawItem("two\r\nlines", "1")}))
	assert.Equal(t, "Name,Quantity\n\"two\r\nlines\",1\n", buf.String())

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, []model.RawItem{model.NewRawItem("two\nlines", "1")}, got)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []model.RawItem
		wantErr  bool
	}{
		{
			name:     "empty document",
			input:    "",
			expected: []model.RawItem{},
		},
		{
			name:     "header only",
			input:    "Name,Quantity\n",
			expected: []model.RawItem{},
		},
		{
			name:     "empty lines are skipped",
			input:    "Name,Quantity\n\nMilk,1\n\n",
			expected: []model.RawItem{model.NewRawItem("Milk", "1")},
		},
		{
			name:     "columns resolved by header name",
			input:    "Quantity,Category,Name\n2,Dairy,Milk\n",
			expected: []model.RawItem{model.NewRawItem("Milk", "2")},
		},
		{
			name:     "byte order mark",
			input:    "\ufeffName,Quantity\nMilk,1\n",
			expected: []model.RawItem{model.NewRawItem("Milk", "1")},
		},
		{
			name:     "missing quantity column",
			input:    "Name\nMilk\n",
			expected: []model.RawItem{{Name: strPtr("Milk")}},
		},
		{
			name:     "short row",
			input:    "Name,Quantity\nMilk\n",
			expected: []model.RawItem{{Name: strPtr("Milk")}},
		},
		{
			name:    "unrelated header",
			input:   "Item,Count\nMilk,1\n",
			wantErr: true,
		},
		{
			name:    "unterminated quote",
			input:   "Name,Quantity\n\"Milk,1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, items)
		})
	}
}

func TestReader_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent.csv")).Extract(context.Background())

	var srcErr errs.Source
	require.ErrorAs(t, err, &srcErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriter_UnwritablePath(t *testing.T) {
	err := NewWriter(filepath.Join(t.TempDir(), "missing-dir", "items.csv")).Export(context.Background(), nil)
	assert.Error(t, err)
}
