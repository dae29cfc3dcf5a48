// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines shared context key types used throughout the list sync tool.
package constants

// ContextKey is the unified type for all context keys to prevent type mismatches
type ContextKey string

// Context keys
const (
	// RunIDContextKey is the context key for the ID of the current sync run
	RunIDContextKey ContextKey = "run-id"

	// EventIDContextKey is the context key for the ID of the lists-updated event being handled
	EventIDContextKey ContextKey = "event-id"
)
