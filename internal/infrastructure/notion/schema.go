// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pantrysync/listsync/internal/domain/port"
)

// Schema reads the database schema once and answers property type lookups
type Schema struct {
	client ClientInterface

	once sync.Once
	db   *Database
	raw  json.RawMessage
	err  error
}

var _ port.SchemaReader = (*Schema)(nil)

// NewSchema creates a schema reader backed by client
func NewSchema(client ClientInterface) *Schema {
	return &Schema{client: client}
}

func (s *Schema) load(ctx context.Context) error {
	s.once.Do(func() {
		slog.InfoContext(ctx, "fetching database schema")
		s.db, s.raw, s.err = s.client.GetDatabase(ctx)
		if s.err == nil {
			slog.InfoContext(ctx, "database schema retrieved successfully", "properties", len(s.db.Properties))
		}
	})
	return s.err
}

// PropertyType returns the type of the named property, such as "title" or "number"
func (s *Schema) PropertyType(ctx context.Context, property string) (string, error) {
	if err := s.load(ctx); err != nil {
		return "", err
	}

	p, ok := s.db.Properties[property]
	if !ok {
		return "", fmt.Errorf("property %q not found in database", property)
	}
	return p.Type, nil
}

// Raw returns the database object exactly as Notion sent it
func (s *Schema) Raw(ctx context.Context) (json.RawMessage, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.raw, nil
}
