// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	"github.com/pantrysync/listsync/pkg/errors"
)

// Destination writes items as pages of a Notion database
type Destination struct {
	client     ClientInterface
	databaseID string
	options    model.SyncOptions
}

var _ port.DestinationWriter = (*Destination)(nil)

// NewDestination creates a destination for databaseID. options.MatchType
// must be resolved.
func NewDestination(client ClientInterface, databaseID string, options model.SyncOptions) (*Destination, error) {
	if options.MatchType == model.MatchTypeAuto {
		return nil, errors.NewConfiguration("Notion destination requires a resolved match type")
	}
	return &Destination{
		client:     client,
		databaseID: databaseID,
		options:    options,
	}, nil
}

// QueryByName returns the pages whose name property equals name. Notion's
// filter result is re-checked so only exact, case-sensitive matches are kept.
func (d *Destination) QueryByName(ctx context.Context, name string) ([]model.DestinationRecord, error) {
	filter := &Filter{
		Property:  d.options.NameProperty,
		MatchType: string(d.options.MatchType),
		Equals:    name,
	}

	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		if raw, err := json.Marshal(filter); err == nil {
			slog.DebugContext(ctx, "querying Notion database", "filter", string(raw))
		}
	}

	response, err := d.client.QueryDatabase(ctx, QueryRequest{Filter: filter})
	if err != nil {
		return nil, err
	}

	records := make([]model.DestinationRecord, 0, len(response.Results))
	for _, page := range response.Results {
		if page.Archived {
			continue
		}
		record := d.toRecord(page)
		if record.Name != name {
			slog.DebugContext(ctx, "ignoring page whose name is not an exact match",
				"page_id", page.ID,
				"page_name", record.Name,
				"item", name,
			)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// Create adds a page for item
func (d *Destination) Create(ctx context.Context, item model.Item) (*model.DestinationRecord, error) {
	page, err := d.client.CreatePage(ctx, CreatePageRequest{
		Parent: Parent{DatabaseID: d.databaseID},
		Properties: map[string]PropertyValue{
			d.options.NameProperty:     d.nameValue(item.Name),
			d.options.QuantityProperty: numberValue(item.Quantity),
		},
	})
	if err != nil {
		return nil, err
	}

	return &model.DestinationRecord{
		ID:       page.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
	}, nil
}

// UpdateQuantity sets only the quantity property of page id
func (d *Destination) UpdateQuantity(ctx context.Context, id string, quantity float64) error {
	if id == "" {
		return fmt.Errorf("page id is required")
	}

	_, err := d.client.UpdatePage(ctx, id, UpdatePageRequest{
		Properties: map[string]PropertyValue{
			d.options.QuantityProperty: numberValue(quantity),
		},
	})
	return err
}

// nameValue renders the name in the shape matching the property type
func (d *Destination) nameValue(name string) PropertyValue {
	if d.options.MatchType == model.MatchTypeTitle {
		return PropertyValue{Title: textValue(name)}
	}
	return PropertyValue{RichText: textValue(name)}
}

func (d *Destination) toRecord(page Page) model.DestinationRecord {
	record := model.DestinationRecord{ID: page.ID}
	if v, ok := page.Properties[d.options.NameProperty]; ok {
		record.Name = v.PlainText()
	}
	if v, ok := page.Properties[d.options.QuantityProperty]; ok && v.Number != nil {
		record.Quantity = *v.Number
	}
	return record
}
