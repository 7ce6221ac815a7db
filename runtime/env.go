// SPDX-License-Identifier: MIT
// Package: pslfsm/runtime
//
// env.go — the signal-value snapshot the interpreter reads from while
// ticking a Program. A real simulator would resolve OpSignal against its
// own signal table; this module's own tests and cmd/pslfsm CLI use MapEnv,
// a plain map snapshot, matching guard.MapLowerer's own signal-by-name
// stand-in for the external HDL layer.
package runtime

// Env supplies this tick's signal values. Implementations must return a
// value stable for the whole Tick call: the ordering contract's "consistent
// per-tick snapshot" is Env's responsibility, not the interpreter's — the
// interpreter reads every signal reference as it's encountered and never
// caches across ticks.
type Env interface {
	Signal(name string) int64
}

// MapEnv is a plain map-backed Env. Zero value for a name not present,
// matching the encoding std_logic's 'U' (uninitialized) code would occupy
// slot 0 of in a real 9-valued signal table.
type MapEnv map[string]int64

// Signal implements Env.
func (e MapEnv) Signal(name string) int64 { return e[name] }
