// Package runlog defines the Store interface through which a completed run's
// replay log can be archived for later retrieval, independent of the
// in-memory replay.Log used during interpretation. The canonical
// implementation is runlog/mongo; tests use an in-memory fake.
package runlog

import (
	"context"
	"time"
)

// Event is one archived replay-log line, tagged with the run it belongs to
// and its position within that run.
type Event struct {
	// ID is the store-assigned identifier, empty until Append succeeds.
	ID string
	// RunID correlates events belonging to the same interpreter run.
	RunID string
	// Seq is the zero-based position of this event within its run.
	Seq int
	// Kind is the event's replay tag: PRINT, TOOL, RANDOM, or TIME.
	Kind string
	// Line is the event's canonical pipe-delimited text encoding, as
	// produced by replay.Log.ToText for a single event.
	Line string
	// Timestamp is when the event was archived.
	Timestamp time.Time
}

// Page is one page of a List query.
type Page struct {
	Events     []*Event
	NextCursor string
}

// Store archives and retrieves Events.
type Store interface {
	Append(ctx context.Context, e *Event) error
	List(ctx context.Context, runID string, cursor string, limit int) (Page, error)
}
