// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
)

// StaticSource returns a fixed set of raw items, or a fixed error
type StaticSource struct {
	Items []model.RawItem
	Err   error

	mu    sync.Mutex
	calls int
}

var _ port.ItemSource = (*StaticSource)(nil)

// NewStaticSource creates a source that yields items
func NewStaticSource(items ...model.RawItem) *StaticSource {
	return &StaticSource{Items: items}
}

// Extract returns a copy of the configured items
func (s *StaticSource) Extract(ctx context.Context) ([]model.RawItem, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.RawItem{}, s.Items...), nil
}

// Calls returns how many times Extract was called
func (s *StaticSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// MemoryFile is an in-memory intermediate file usable as both exporter and source
type MemoryFile struct {
	mu      sync.Mutex
	items   []model.RawItem
	written bool
	Err     error
}

var (
	_ port.ItemExporter = (*MemoryFile)(nil)
	_ port.ItemSource   = (*MemoryFile)(nil)
)

// NewMemoryFile creates an empty in-memory file
func NewMemoryFile() *MemoryFile {
	return &MemoryFile{}
}

// Export replaces the file contents
func (f *MemoryFile) Export(ctx context.Context, items []model.RawItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	f.items = append([]model.RawItem{}, items...)
	f.written = true
	return nil
}

// Extract reads the file contents back
func (f *MemoryFile) Extract(ctx context.Context) ([]model.RawItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.RawItem{}, f.items...), nil
}

// Written reports whether Export succeeded at least once
func (f *MemoryFile) Written() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written
}
