// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

import (
	"fmt"

	"github.com/pantrysync/listsync/pkg/errors"
)

// Source constants name where a sync reads its items from
const (
	// SourceAnyList reads the configured list directly from AnyList
	SourceAnyList = "anylist"

	// SourceCSV reads a previously exported intermediate file
	SourceCSV = "csv"
)

// ValidateSource validates that the source is one of the allowed values
func ValidateSource(source string) error {
	switch source {
	case SourceAnyList, SourceCSV:
		return nil
	case "":
		return errors.NewValidation("source is required")
	default:
		return errors.NewValidation(
			fmt.Sprintf("unsupported source: %s (must be anylist or csv)", source))
	}
}

// ValidSources returns list of all valid sources for documentation
func ValidSources() []string {
	return []string{SourceAnyList, SourceCSV}
}

// SourceDescription returns human-readable description of source behavior
func SourceDescription(source string) string {
	switch source {
	case SourceAnyList:
		return "Logs in to AnyList and reads the configured list"
	case SourceCSV:
		return "Reads items from an exported Name,Quantity file"
	default:
		return "Unknown source"
	}
}
