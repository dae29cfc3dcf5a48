// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the list sync tool.
package constants

// Service constants
const (
	// ServiceName is the name of this service
	ServiceName = "listsync"

	// DefaultListName is the list synced when none is configured
	DefaultListName = "Scanned"

	// DefaultExportFile is the intermediate file written by export and read by the csv source
	DefaultExportFile = "scanned-items.csv"
)

// Environment variables
const (
	// EnvNATSURL is the environment variable for NATS server URL
	EnvNATSURL = "NATS_URL"
	// EnvOnRecordError is the environment variable for the record error policy
	EnvOnRecordError = "SYNC_ON_RECORD_ERROR"
	// EnvListName is the environment variable for the list to sync
	EnvListName = "ANYLIST_LIST_NAME"
)
