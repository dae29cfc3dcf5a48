// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package anylist

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/pkg/errors"
)

// fakeClient serves fixed lists without any network
type fakeClient struct {
	mu      sync.Mutex
	lists   []ShoppingList
	err     error
	headErr error
	fetches int
}

func (f *fakeClient) ShoppingLists(ctx context.Context) ([]ShoppingList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.lists, f.err
}

func (f *fakeClient) AccessToken(ctx context.Context) (string, error) {
	return "token", f.headErr
}

func (f *fakeClient) ListenerHeaders(ctx context.Context) (http.Header, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer token")
	return h, nil
}

func TestSource_Extract(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{lists: []ShoppingList{
		{Name: "Groceries", Items: []ListItem{{Name: sp("Eggs")}}},
		{Name: "Scanned", Items: []ListItem{
			{Name: sp("Bananas"), Quantity: sp("5")},
			{Quantity: sp("2")},
		}},
		{Name: "Empty"},
	}}

	t.Run("items of the named list in order", func(t *testing.T) {
		items, err := NewSource(client, "Scanned").Extract(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.RawItem{
			model.NewRawItem("Bananas", "5"),
			{Quantity: sp("2")},
		}, items)
	})

	t.Run("list name match is exact", func(t *testing.T) {
		_, err := NewSource(client, "scanned").Extract(ctx)
		var srcErr errors.Source
		require.ErrorAs(t, err, &srcErr)
		assert.Contains(t, err.Error(), `"scanned" not found`)
	})

	t.Run("empty list", func(t *testing.T) {
		items, err := NewSource(client, "Empty").Extract(ctx)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("fetch failure", func(t *testing.T) {
		failing := &fakeClient{err: stderrors.New("dial tcp: connection refused")}
		_, err := NewSource(failing, "Scanned").Extract(ctx)
		var srcErr errors.Source
		assert.ErrorAs(t, err, &srcErr)
	})
}
