// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pantrysync/listsync/cmd/listsync/service"
	"github.com/pantrysync/listsync/internal/infrastructure/notion"
	"github.com/pantrysync/listsync/pkg/errors"
)

// Schema output formats
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// NewSchemaCommand creates the command printing the Notion database schema
func NewSchemaCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the Notion database schema",
		Long: `Prints the destination database object as Notion returns it, so the name and
quantity property names and types can be checked before a sync.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatYAML {
				return errors.NewConfiguration(fmt.Sprintf("invalid format %q: must be %s or %s", format, formatJSON, formatYAML))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := service.NotionConfig("")
			if err != nil {
				return err
			}
			client, err := service.NotionClient(ctx, cfg)
			if err != nil {
				return err
			}

			schema := notion.NewSchema(client)
			raw, err := schema.Raw(ctx)
			if err != nil {
				return err
			}

			if propertyType, errType := schema.PropertyType(ctx, cfg.NameProperty); errType != nil {
				slog.WarnContext(ctx, "name property not found in schema",
					"property", cfg.NameProperty, "error", errType)
			} else {
				slog.InfoContext(ctx, "name property type",
					"property", cfg.NameProperty,
					"type", propertyType,
				)
			}

			return writeSchema(cmd.OutOrStdout(), raw, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSON, "output format (json|yaml)")

	return cmd
}

// writeSchema renders raw in the requested format
func writeSchema(w io.Writer, raw json.RawMessage, format string) error {
	if format == formatYAML {
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to decode schema: %w", err)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode schema as YAML: %w", err)
		}
		return enc.Close()
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format schema: %w", err)
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}
