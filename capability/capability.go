// Package capability implements unforgeable capability tokens: the runtime's
// gate on tool execution. Capabilities are minted from a process-wide,
// monotonically increasing counter (init-at-first-use, never torn down — see
// DESIGN.md). Only uniqueness of the id matters; no happens-before ordering
// beyond that is required, so a relaxed atomic counter is sufficient even
// under concurrent minting.
package capability

import "sync/atomic"

// Kind is the closed sum of capability kinds. Only Tool grants the right to
// perform a tool call; Net, Filesystem, and Memory are carried for future
// capability-gated effects the language does not yet expose.
type Kind int

const (
	// Tool grants the right to invoke a declared tool.
	Tool Kind = iota
	// Net grants network access (reserved; unused by the current language).
	Net
	// Filesystem grants filesystem access (reserved; unused by the current language).
	Filesystem
	// Memory grants unrestricted memory access (reserved; unused by the current language).
	Memory
)

var nextID uint64

// Capability is an unforgeable token bearing a fresh id and a kind.
type Capability struct {
	ID   uint64
	Kind Kind
}

// Mint allocates a fresh Capability of the given kind, drawing the next id
// from the process-wide counter.
func Mint(kind Kind) Capability {
	id := atomic.AddUint64(&nextID, 1)
	return Capability{ID: id, Kind: kind}
}

// CanUseTool reports whether c grants the right to perform a tool call.
func (c Capability) CanUseTool() bool {
	return c.Kind == Tool
}

// NarrowToTool returns a new capability with the same id restricted to the
// Tool kind, and true, iff c was already Tool-kind. Otherwise it returns the
// zero Capability and false: narrowing cannot widen rights.
func (c Capability) NarrowToTool() (Capability, bool) {
	if !c.CanUseTool() {
		return Capability{}, false
	}
	return Capability{ID: c.ID, Kind: Tool}, true
}

// Default returns the default capability mapping supplied to programs that
// do not configure one explicitly: a single Tool-kind capability named
// "toolCap".
func Default() map[string]Capability {
	return map[string]Capability{
		"toolCap": Mint(Tool),
	}
}
