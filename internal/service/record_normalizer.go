// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pantrysync/listsync/internal/domain/model"
)

// leadingNumber matches the numeric prefix of a quantity such as "2.5 lbs" or "3x"
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// NormalizeItem converts a raw item into an Item. It never fails: an empty
// name becomes model.UnnamedItem and an unusable quantity becomes 0.
func NormalizeItem(raw model.RawItem) model.Item {
	name := strings.TrimSpace(raw.NameOrEmpty())
	if name == "" {
		name = model.UnnamedItem
	}

	return model.Item{
		Name:     name,
		Quantity: ParseQuantity(raw.QuantityOrEmpty()),
	}
}

// NormalizeItems normalizes every raw item, preserving order.
// Empty input yields an empty, non-nil slice.
func NormalizeItems(raw []model.RawItem) []model.Item {
	items := make([]model.Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, NormalizeItem(r))
	}
	return items
}

// ParseQuantity reads the leading number of s. Anything that does not start
// with a number, overflows, or is negative yields 0.
func ParseQuantity(s string) float64 {
	prefix := leadingNumber.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return 0
	}

	q, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return 0
	}
	return q
}
