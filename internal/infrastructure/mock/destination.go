// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pantrysync/listsync/internal/domain/model"
	"github.com/pantrysync/listsync/internal/domain/port"
)

// Operation names recorded in the call log
const (
	OpQuery  = "query"
	OpCreate = "create"
	OpUpdate = "update"
)

// Call is one recorded destination call
type Call struct {
	Op       string
	Name     string
	ID       string
	Quantity float64
}

// MemoryDestination is an in-memory destination database with per-item failure injection
type MemoryDestination struct {
	mu      sync.Mutex
	records map[string]*model.DestinationRecord // ID -> record
	order   []string
	nextID  int
	calls   []Call
	errors  map[string]map[string]error // op -> item name or record ID -> error

	propertyTypes map[string]string
}

var (
	_ port.DestinationWriter = (*MemoryDestination)(nil)
	_ port.SchemaReader      = (*MemoryDestination)(nil)
)

// NewMemoryDestination creates an empty destination whose name property is a title
func NewMemoryDestination() *MemoryDestination {
	return &MemoryDestination{
		records: make(map[string]*model.DestinationRecord),
		errors:  make(map[string]map[string]error),
		propertyTypes: map[string]string{
			model.DefaultNameProperty:     "title",
			model.DefaultQuantityProperty: "number",
		},
	}
}

// Seed inserts existing records and returns their IDs
func (m *MemoryDestination) Seed(records ...model.DestinationRecord) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(records))
	for _, r := range records {
		record := r
		if record.ID == "" {
			record.ID = m.newIDLocked()
		}
		m.records[record.ID] = &record
		m.order = append(m.order, record.ID)
		ids = append(ids, record.ID)
	}
	return ids
}

// SetPropertyType overrides the schema type reported for property
func (m *MemoryDestination) SetPropertyType(property, propertyType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.propertyTypes[property] = propertyType
}

// FailOn makes op fail with err. key is the item name for query and create,
// and the record ID for update.
func (m *MemoryDestination) FailOn(op, key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.errors[op] == nil {
		m.errors[op] = make(map[string]error)
	}
	m.errors[op][key] = err
}

// ClearFailures removes every injected failure
func (m *MemoryDestination) ClearFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = make(map[string]map[string]error)
}

// QueryByName returns every record whose name equals name exactly
func (m *MemoryDestination) QueryByName(ctx context.Context, name string) ([]model.DestinationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: OpQuery, Name: name})
	if err := m.errors[OpQuery][name]; err != nil {
		return nil, err
	}

	var matches []model.DestinationRecord
	for _, id := range m.order {
		if r := m.records[id]; r.Name == name {
			matches = append(matches, *r)
		}
	}
	return matches, nil
}

// Create inserts a new record for item
func (m *MemoryDestination) Create(ctx context.Context, item model.Item) (*model.DestinationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: OpCreate, Name: item.Name, Quantity: item.Quantity})
	if err := m.errors[OpCreate][item.Name]; err != nil {
		return nil, err
	}

	record := &model.DestinationRecord{
		ID:       m.newIDLocked(),
		Name:     item.Name,
		Quantity: item.Quantity,
	}
	m.records[record.ID] = record
	m.order = append(m.order, record.ID)

	slog.DebugContext(ctx, "mock destination record created", "record_id", record.ID, "item", item.Name)

	created := *record
	return &created, nil
}

// UpdateQuantity sets the quantity of the record with id
func (m *MemoryDestination) UpdateQuantity(ctx context.Context, id string, quantity float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: OpUpdate, ID: id, Quantity: quantity})
	if err := m.errors[OpUpdate][id]; err != nil {
		return err
	}

	record, ok := m.records[id]
	if !ok {
		return fmt.Errorf("record %s not found", id)
	}
	record.Quantity = quantity
	return nil
}

// PropertyType reports the configured schema type of property
func (m *MemoryDestination) PropertyType(ctx context.Context, property string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	propertyType, ok := m.propertyTypes[property]
	if !ok {
		return "", fmt.Errorf("property %q not found", property)
	}
	return propertyType, nil
}

// Records returns a snapshot of every record in insertion order
func (m *MemoryDestination) Records() []model.DestinationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.DestinationRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.records[id])
	}
	return out
}

// Quantities returns name -> quantities for every record, sorted per name
func (m *MemoryDestination) Quantities() map[string][]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string][]float64)
	for _, id := range m.order {
		r := m.records[id]
		out[r.Name] = append(out[r.Name], r.Quantity)
	}
	for _, q := range out {
		sort.Float64s(q)
	}
	return out
}

// Calls returns the call log
func (m *MemoryDestination) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CountCalls returns how many calls of op were made
func (m *MemoryDestination) CountCalls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (m *MemoryDestination) newIDLocked() string {
	m.nextID++
	return fmt.Sprintf("page-%d", m.nextID)
}
