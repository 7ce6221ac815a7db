// SPDX-License-Identifier: MIT
// Package: pslfsm/cover
//
// cover.go — a concrete, in-memory implementation of the coverage database:
// accepts scope creation and item registration. A new coverage scope is
// created under the enclosing tree's scope; a functional-coverage item is
// attached to the directive node, and per-state accept emissions stamp the
// item tag.
//
// Follows the same map-backed, mutex-guarded storage pattern used elsewhere
// in this compiler for small in-memory registries, shaped here as a
// scope/item registry rather than a vertex/edge adjacency map, since that's
// this collaborator's actual shape. Scope identifiers use github.com/rs/xid
// instead of a bare incrementing
// int: a coverage scope created under a nested CLOCKED/ABORT directive
// needs an identifier stable across the dump/reload round-trip, and xid's
// sortable, timestamp-embedding ids make that ordering observable in a
// dump file the way an opaque incrementing counter would not.
package cover

import (	"sync"

	"github.com/rs/xid"
)

// Database is the concrete coverage-database collaborator. Safe for
// concurrent use: the coverage database is shared across the toolchain,
// and this preserves that even though this module's own test-time usage
// is single-threaded.
type Database struct {
	mu sync.Mutex
	enabled bool
	scopes map[xid.ID]*Scope
}

// Scope is a coverage scope created for one directive (or, recursively,
// for a nested directive within it — the "enclosing tree's scope").
type Scope struct {
	ID xid.ID `yaml:"id"`
	Parent xid.ID `yaml:"parent,omitempty"`
	Name string `yaml:"name"`
	Items []Item `yaml:"items"`
}

// Item is a single functional-coverage item: a named, taggable event
// attached to a directive. Hits is the number of times its tag has been
// stamped by a per-state accept emission.
type Item struct {
	Tag string `yaml:"tag"`
	Hits int `yaml:"hits"`
}

// New returns an empty Database. enabled corresponds to the coverage-mask
// bit FUNCTIONAL controlling coverage emission.
func New(enabled bool) *Database {
	return &Database{enabled: enabled, scopes: make(map[xid.ID]*Scope)}
}

// Enabled reports the functional-coverage mask bit.
func (d *Database) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// SetEnabled sets the functional-coverage mask bit.
func (d *Database) SetEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = enabled
}

// CreateScope allocates a fresh Scope named name, nested under parent (the
// zero xid.ID for a top-level directive).
func (d *Database) CreateScope(name string, parent xid.ID) *Scope {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := &Scope{ID: xid.New(), Parent: parent, Name: name}
	d.scopes[s.ID] = s
	return s
}

// AddItem attaches a new item with the given tag to scope, returning its
// index for later StampItem calls. A no-op (returns -1) when the database
// is disabled: the message report itself stays unconditional even when
// coverage recording is disabled, since only the *registration* half is
// gated here, never the report, which lower emits independently as an IR
// report instruction.
func (d *Database) AddItem(scope *Scope, tag string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled || scope == nil {
 return -1
	}
	scope.Items = append(scope.Items, Item{Tag: tag})
	return len(scope.Items) - 1
}

// StampItem increments the hit count of scope's item at idx. A no-op for
// idx == -1 (the sentinel AddItem returns when coverage is disabled).
func (d *Database) StampItem(scope *Scope, idx int) {
	if scope == nil || idx < 0 {
 return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if idx >= len(scope.Items) {
 return
	}
	scope.Items[idx].Hits++
}

// Scopes returns every scope currently registered, in an unspecified
// order; callers needing dump-stable order should sort by Scope.ID (xid
// ids are lexicographically sortable by creation time).
func (d *Database) Scopes() []*Scope {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Scope, 0, len(d.scopes))
	for _, s := range d.scopes {
 out = append(out, s)
	}
	return out
}

// Totals sums the hit counts of every item in scope: the per-scope total
// a dump -> reload round-trip test checks is preserved.
func (s *Scope) Totals() int {
	total := 0
	for _, it := range s.Items {
 total += it.Hits
	}
	return total
}
