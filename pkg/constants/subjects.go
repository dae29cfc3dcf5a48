// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// NATS subject constants for message publishing
const (
	// ListsUpdatedSubject carries a JSON ListsUpdatedEvent every time the list service reports a change
	ListsUpdatedSubject = "listsync.anylist.lists_updated"
)
