// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/pantrysync/listsync/internal/domain/model"
)

// DestinationWriter is the write side of the destination database, keyed by item name
type DestinationWriter interface {
	// QueryByName returns the records whose name property equals name exactly
	QueryByName(ctx context.Context, name string) ([]model.DestinationRecord, error)

	// Create inserts a record with both name and quantity set
	Create(ctx context.Context, item model.Item) (*model.DestinationRecord, error)

	// UpdateQuantity rewrites only the quantity of an existing record
	UpdateQuantity(ctx context.Context, id string, quantity float64) error
}

// SchemaReader exposes the destination schema
type SchemaReader interface {
	// PropertyType returns the type of the named property ("title", "rich_text", "number", ...)
	PropertyType(ctx context.Context, property string) (string, error)
}
