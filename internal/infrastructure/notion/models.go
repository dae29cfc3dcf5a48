// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package notion

import "encoding/json"

// QueryRequest is the body of a database query
type QueryRequest struct {
	Filter   *Filter `json:"filter,omitempty"`
	PageSize int     `json:"page_size,omitempty"`
}

// Filter compares one property. The condition key is the match type, so it
// is rendered by MarshalJSON.
type Filter struct {
	Property  string
	MatchType string
	Equals    string
}

// MarshalJSON renders {"property": p, "<matchType>": {"equals": v}}
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"property":  f.Property,
		f.MatchType: map[string]string{"equals": f.Equals},
	})
}

// QueryResponse is a page of database query results
type QueryResponse struct {
	Object     string `json:"object"`
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Page is a database row
type Page struct {
	Object     string                   `json:"object"`
	ID         string                   `json:"id"`
	Archived   bool                     `json:"archived"`
	Properties map[string]PropertyValue `json:"properties"`
}

// PropertyValue is a page property value. Only the shapes this tool reads or
// writes are modelled.
type PropertyValue struct {
	Type     string     `json:"type,omitempty"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Number   *float64   `json:"number,omitempty"`
}

// PlainText concatenates the text of a title or rich_text value
func (v PropertyValue) PlainText() string {
	parts := v.Title
	if len(parts) == 0 {
		parts = v.RichText
	}

	var s string
	for _, p := range parts {
		if p.PlainText != "" {
			s += p.PlainText
			continue
		}
		if p.Text != nil {
			s += p.Text.Content
		}
	}
	return s
}

// RichText is a rich text fragment
type RichText struct {
	Type      string `json:"type,omitempty"`
	Text      *Text  `json:"text,omitempty"`
	PlainText string `json:"plain_text,omitempty"`
}

// Text is the content of a text fragment
type Text struct {
	Content string `json:"content"`
}

// CreatePageRequest is the body of a page creation
type CreatePageRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
}

// Parent places a page in a database
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// UpdatePageRequest is the body of a page update
type UpdatePageRequest struct {
	Properties map[string]PropertyValue `json:"properties"`
}

// Database is the subset of a database object used to resolve property types
type Database struct {
	Object     string                    `json:"object"`
	ID         string                    `json:"id"`
	Title      []RichText                `json:"title"`
	Properties map[string]PropertySchema `json:"properties"`
}

// PropertySchema describes one database property
type PropertySchema struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ErrorObject is the body Notion returns with every 4xx/5xx response
type ErrorObject struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func textValue(content string) []RichText {
	return []RichText{{Text: &Text{Content: content}}}
}

func numberValue(n float64) PropertyValue {
	return PropertyValue{Number: &n}
}
