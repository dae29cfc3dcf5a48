// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"slices"
	"time"
)

// ListsUpdatedEvent is emitted once per push received on the list service's
// update channel and handed unchanged to every notifier
type ListsUpdatedEvent struct {
	EventID    string    `json:"event_id"`
	ListNames  []string  `json:"list_names,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}

// Concerns reports whether the event may affect the named list.
// Events that carry no list names concern every list.
func (e ListsUpdatedEvent) Concerns(listName string) bool {
	if len(e.ListNames) == 0 {
		return true
	}
	return slices.Contains(e.ListNames, listName)
}
