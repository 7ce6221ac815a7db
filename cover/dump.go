// SPDX-License-Identifier: MIT
// Package: pslfsm/cover
//
// dump.go — YAML serialization of a Database, for the "coverage
// dump -> reload round-trip preserves per-scope totals" testable property.
// Uses gopkg.in/yaml.v3, already present as an indirect dependency,
// promoted to direct use here.
package cover

import (	"io"

	"github.com/rs/xid"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape: a flat, deterministically ordered list of
// scopes. xid.ID marshals via its own String/UnmarshalText, so scope and
// parent identifiers round-trip as plain strings in the YAML.
type document struct {
	Scopes []*Scope `yaml:"scopes"`
}

// Dump writes every scope in d to w as YAML, sorted by Scope.ID so the
// output is stable across repeated dumps of the same database.
func (d *Database) Dump(w io.Writer) error {
	scopes := d.Scopes()
	sortScopesByID(scopes)
	return yaml.NewEncoder(w).Encode(document{Scopes: scopes})
}

// Load replaces d's contents with the scopes decoded from r. The
// functional-coverage mask bit (Enabled) is left untouched: it's runtime
// configuration, not persisted coverage data.
func (d *Database) Load(r io.Reader) error {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
 return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scopes = make(map[xid.ID]*Scope, len(doc.Scopes))
	for _, s := range doc.Scopes {
 d.scopes[s.ID] = s
	}
	return nil
}

func sortScopesByID(scopes []*Scope) {
	for i := 1; i < len(scopes); i++ {
 for j := i; j > 0 && scopes[j-1].ID.Compare(scopes[j].ID) > 0; j-- {
 scopes[j-1], scopes[j] = scopes[j], scopes[j-1]
 }
	}
}
