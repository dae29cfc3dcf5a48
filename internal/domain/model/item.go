// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package model defines the domain models used by the list sync tool.
package model

// UnnamedItem replaces an empty or missing item name during normalization
const UnnamedItem = "Unnamed Item"

// RawItem is an item as extracted from the list service or from an exported
// file, before normalization. Nil fields were absent at the source.
type RawItem struct {
	Name     *string `json:"name,omitempty"`
	Quantity *string `json:"quantity,omitempty"`
}

// NewRawItem builds a RawItem with both fields present
func NewRawItem(name, quantity string) RawItem {
	return RawItem{Name: &name, Quantity: &quantity}
}

// NameOrEmpty returns the raw name, or "" when absent
func (r RawItem) NameOrEmpty() string {
	if r.Name == nil {
		return ""
	}
	return *r.Name
}

// QuantityOrEmpty returns the raw quantity, or "" when absent
func (r RawItem) QuantityOrEmpty() string {
	if r.Quantity == nil {
		return ""
	}
	return *r.Quantity
}

// Item is a normalized list item. Name is never empty and Quantity is never
// negative. Items have no identity beyond their name.
type Item struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// DestinationRecord is a record owned by the destination database.
// IDs are re-queried on every run and never cached.
type DestinationRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}
