// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MatchType is the destination filter key used to compare the name property
type MatchType string

// Supported match types. MatchTypeAuto is resolved from the destination
// schema before a run starts.
const (
	MatchTypeTitle    MatchType = "title"
	MatchTypeRichText MatchType = "rich_text"
	MatchTypeText     MatchType = "text"
	MatchTypeAuto     MatchType = "auto"
)

// RecordErrorPolicy decides what happens when a single record fails
type RecordErrorPolicy string

// Supported record error policies
const (
	OnRecordErrorAbort RecordErrorPolicy = "abort"
	OnRecordErrorSkip  RecordErrorPolicy = "skip-and-continue"
)

// Default destination property names
const (
	DefaultNameProperty     = "Name"
	DefaultQuantityProperty = "Quantity"
)

// SyncOptions parameterizes the upsert engine
type SyncOptions struct {
	NameProperty     string            `validate:"required"`
	QuantityProperty string            `validate:"required,nefield=NameProperty"`
	MatchType        MatchType         `validate:"required,oneof=title rich_text text auto"`
	OnRecordError    RecordErrorPolicy `validate:"required,oneof=abort skip-and-continue"`
}

// DefaultSyncOptions returns the options matching a Notion database whose
// title property is "Name" and number property is "Quantity"
func DefaultSyncOptions() SyncOptions {
	return SyncOptions{
		NameProperty:     DefaultNameProperty,
		QuantityProperty: DefaultQuantityProperty,
		MatchType:        MatchTypeTitle,
		OnRecordError:    OnRecordErrorAbort,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid field in a single error
func (o SyncOptions) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s %q must be one of [%s]", fe.Field(), fe.Value(), fe.Param()))
		case "nefield":
			problems = append(problems, fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid sync options: %s", strings.Join(problems, "; "))
}
