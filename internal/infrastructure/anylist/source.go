// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package anylist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	"github.com/pantrysync/listsync/pkg/errors"
	"github.com/pantrysync/listsync/pkg/log"
)

// Source extracts the items of one named list
type Source struct {
	client   ClientInterface
	listName string
}

var _ port.ItemSource = (*Source)(nil)

// NewSource creates a source reading listName
func NewSource(client ClientInterface, listName string) *Source {
	return &Source{client: client, listName: listName}
}

// Extract returns the list's items in list order. A missing list is an
// errors.Source, an empty list is a warning.
func (s *Source) Extract(ctx context.Context) ([]model.RawItem, error) {
	ctx = log.AppendCtx(ctx, slog.String("list", s.listName))

	lists, err := s.client.ShoppingLists(ctx)
	if err != nil {
		return nil, errors.NewSource("failed to fetch lists from AnyList", err)
	}

	list, ok := findList(lists, s.listName)
	if !ok {
		return nil, errors.NewSource(fmt.Sprintf("list named %q not found in AnyList", s.listName))
	}

	slog.InfoContext(ctx, "extracting items from list")

	items := make([]model.RawItem, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, item.RawItem())
	}

	if len(items) == 0 {
		slog.WarnContext(ctx, "no items found in list")
	} else {
		slog.InfoContext(ctx, "found items in list", "count", len(items))
	}
	return items, nil
}

// findList returns the first list whose name matches exactly
func findList(lists []ShoppingList, name string) (ShoppingList, bool) {
	for _, l := range lists {
		if l.Name == name {
			return l, true
		}
	}
	return ShoppingList{}, false
}

// listNames returns the name of every list
func listNames(lists []ShoppingList) []string {
	names := make([]string, 0, len(lists))
	for _, l := range lists {
		names = append(names, l.Name)
	}
	return names
}
