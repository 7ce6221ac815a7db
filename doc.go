// SPDX-License-Identifier: MIT

// Package pslfsm is the PSL temporal-property compiler core: it translates
// a parsed Property Specification Language (PSL) assertion or cover
// directive into an executable finite-state machine, then lowers that FSM
// into a target IR a simulation runtime can drive tick-by-tick.
//
// The module is organised one package per concern:
//
//	psl/ — read-only PSL AST view (C1)
//	numfold/ — compile-time integer folding for repetition/delay counts (C2)
//	guard/ — the Boolean guard algebra carried on FSM edges (C3)
//	fsm/ — the FSM data model and builder (C4)
//	fsm/invariant — the epsilon-acyclicity checker (C5)
//	fsm/dot — DOT graph visualisation (C6)
//	lower/ — the property lowerer, FSM → target IR (C7)
//	clock/ — clock sensitivity, async-abort, and prev(x,n) wiring (C8)
//	cover/ — an in-memory functional-coverage database
//	diag/ — structured diagnostics for the three error tiers
//	ir/ — the target IR instruction set and emission primitives
//	runtime/ — a minimal tick-driven interpreter that executes lower.Unit
//	cmd/pslfsm — a CLI tying build → lower → (optionally) visualise together
//
// Only psl.Node, guard.HDLLowerer, cover.Database and the ir.Emitter
// surface are meant to be supplied by a real surrounding toolchain; every
// other package here is a complete, independent implementation.
package pslfsm
