// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
	errs "github.com/pantrysync/listsync/pkg/errors"
)

// ResolveMatchType replaces MatchTypeAuto with the filter key matching the
// name property's type in the destination schema. Other match types are
// returned unchanged without reading the schema.
func ResolveMatchType(ctx context.Context, schema port.SchemaReader, options model.SyncOptions) (model.SyncOptions, error) {
	if options.MatchType != model.MatchTypeAuto {
		return options, nil
	}

	propertyType, err := schema.PropertyType(ctx, options.NameProperty)
	if err != nil {
		return options, errs.NewConfiguration(fmt.Sprintf("cannot resolve match type for property %q", options.NameProperty), err)
	}

	switch model.MatchType(propertyType) {
	case model.MatchTypeTitle, model.MatchTypeRichText:
		options.MatchType = model.MatchType(propertyType)
	default:
		return options, errs.NewConfiguration(fmt.Sprintf("property %q has type %q, which cannot hold an item name", options.NameProperty, propertyType))
	}

	slog.InfoContext(ctx, "resolved match type from schema",
		"property", options.NameProperty,
		"match_type", options.MatchType,
	)
	return options, nil
}
