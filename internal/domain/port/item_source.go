// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/pantrysync/listsync/internal/domain/model"
)

// ItemSource produces raw items for one sync run. The upsert engine never
// knows whether they came from the list service or from an exported file.
type ItemSource interface {
	// Extract returns the raw items in source order. An empty list is not an error.
	Extract(ctx context.Context) ([]model.RawItem, error)
}

// ItemExporter writes raw items to an intermediate file
type ItemExporter interface {
	Export(ctx context.Context, items []model.RawItem) error
}
