// Package policy implements run-level guardrails on interpretation: a cap on
// the total number of tool calls a single run may perform, and a cap on
// consecutive tool-call failures before the run is aborted. It is consulted
// by the interp package before each ToolCall statement executes.
package policy

import (
	"context"
	"fmt"
)

// Options configures a new Engine. A zero value for either limit means "no
// limit" for that dimension.
type Options struct {
	// MaxToolCalls bounds the total number of tool calls a run may
	// perform. Zero means unbounded.
	MaxToolCalls int
	// MaxConsecutiveFailures bounds how many tool-call failures in a row
	// are tolerated before Decide blocks further calls. Zero means
	// unbounded.
	MaxConsecutiveFailures int
	// Label annotates Decision.Reason strings; defaults to "policy".
	Label string
}

// State is the running tally Decide consults. Callers own State's lifetime
// and update it via Observe after each tool call completes.
type State struct {
	ToolCalls           int
	ConsecutiveFailures int
}

// Observe records the outcome of a completed tool call.
func (s *State) Observe(failed bool) {
	s.ToolCalls++
	if failed {
		s.ConsecutiveFailures++
	} else {
		s.ConsecutiveFailures = 0
	}
}

// Decision reports whether a further tool call may proceed.
type Decision struct {
	Allow  bool
	Reason string
}

// Engine enforces Options against a State.
type Engine struct {
	opts  Options
	label string
}

// New builds an Engine from opts.
func New(opts Options) *Engine {
	label := opts.Label
	if label == "" {
		label = "policy"
	}
	return &Engine{opts: opts, label: label}
}

// Decide evaluates whether state permits one more tool call.
func (e *Engine) Decide(_ context.Context, state State) Decision {
	if e.opts.MaxToolCalls > 0 && state.ToolCalls >= e.opts.MaxToolCalls {
		return Decision{Allow: false, Reason: fmt.Sprintf("%s: max tool calls (%d) reached", e.label, e.opts.MaxToolCalls)}
	}
	if e.opts.MaxConsecutiveFailures > 0 && state.ConsecutiveFailures >= e.opts.MaxConsecutiveFailures {
		return Decision{Allow: false, Reason: fmt.Sprintf("%s: max consecutive failures (%d) reached", e.label, e.opts.MaxConsecutiveFailures)}
	}
	return Decision{Allow: true}
}
