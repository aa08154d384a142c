package runlog

import (
	"context"
	"sort"
	"strconv"
)

// MemoryStore is an in-memory Store, used by tests and by the CLI when no
// archive backend is configured.
type MemoryStore struct {
	events []*Event
	nextID int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append implements Store.
func (m *MemoryStore) Append(_ context.Context, e *Event) error {
	m.nextID++
	e.ID = strconv.Itoa(m.nextID)
	m.events = append(m.events, e)
	return nil
}

// List implements Store. Cursor values are the ID of the last event seen, as
// a decimal string.
func (m *MemoryStore) List(_ context.Context, runID string, cursor string, limit int) (Page, error) {
	var matching []*Event
	for _, e := range m.events {
		if e.RunID == runID {
			matching = append(matching, e)
		}
	}
	sort.Slice(matching, func(i, j int) bool { return matching[i].Seq < matching[j].Seq })

	start := 0
	if cursor != "" {
		for i, e := range matching {
			if e.ID == cursor {
				start = i + 1
				break
			}
		}
	}
	if start >= len(matching) {
		return Page{}, nil
	}
	end := start + limit
	var next string
	if end < len(matching) {
		next = matching[end-1].ID
	} else {
		end = len(matching)
	}
	return Page{Events: matching[start:end], NextCursor: next}, nil
}
