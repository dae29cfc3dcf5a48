// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package errors provides custom error types for the list sync tool.
package errors

import "fmt"

// base holds the fields shared by every error type in this package
type base struct {
	message string
	err     error
}

// error formats the message and the wrapped cause, if any.
// Every type that embeds base renders through here.
func (b base) error() string {
	if b.err == nil {
		return b.message
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}

// Unwrap exposes the underlying error to support errors.Is / errors.As.
func (b base) Unwrap() error {
	return b.err
}
