// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
)

// Configuration represents a missing or invalid credential, identifier or option.
// It is always fatal and is raised before any network call.
type Configuration struct {
	base
}

// Error returns the error message for Configuration.
func (c Configuration) Error() string {
	return c.error()
}

// NewConfiguration creates a new Configuration error with the provided message.
func NewConfiguration(message string, err ...error) Configuration {
	return Configuration{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Source represents a failure to extract items from the list service or from an
// exported file. It is always fatal.
type Source struct {
	base
}

// Error returns the error message for Source.
func (s Source) Error() string {
	return s.error()
}

// NewSource creates a new Source error with the provided message.
func NewSource(message string, err ...error) Source {
	return Source{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Record represents a failed query, create or update for a single item.
// Name identifies the offending item so it can be corrected by hand.
type Record struct {
	base
	Name string
}

// Error returns the error message for Record.
func (r Record) Error() string {
	return r.error()
}

// NewRecord creates a new Record error for the named item.
func NewRecord(name, message string, err ...error) Record {
	return Record{
		base: base{
			message: fmt.Sprintf("%s (item %q)", message, name),
			err:     errors.Join(err...),
		},
		Name: name,
	}
}

// Notification represents a failed outbound notification. Notifications are
// best-effort, so callers log this error and carry on.
type Notification struct {
	base
	Notifier string
}

// Error returns the error message for Notification.
func (n Notification) Error() string {
	return n.error()
}

// NewNotification creates a new Notification error for the named notifier.
func NewNotification(notifier, message string, err ...error) Notification {
	return Notification{
		base: base{
			message: fmt.Sprintf("%s: %s", notifier, message),
			err:     errors.Join(err...),
		},
		Notifier: notifier,
	}
}
