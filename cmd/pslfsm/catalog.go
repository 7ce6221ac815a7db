// SPDX-License-Identifier: MIT
// Package: pslfsm/cmd/pslfsm
//
// catalog.go — a small, fixed set of named sample directives this CLI
// operates on. The real PSL parser is an external collaborator this
// module does not implement (see psl.Stub's own doc comment), so the CLI
// can't take a .psl file as input; instead it ships a handful of
// hand-built psl.Stub trees covering the recipes a real parser's output
// would exercise, the same stand-in role psl.Stub already plays in this
// module's tests.
package main

import (
	"fmt"
	"sort"

	"github.com/pslfsm/compiler/psl"
)

func loc(line int) psl.Locus { return psl.Locus{File: "catalog", Line: line} }

func clocked(value psl.Node, clkSignal string, line int) *psl.Stub {
	decl := psl.ClockDecl(psl.Signal(clkSignal, loc(line)), loc(line))
	return psl.Clocked(value, decl, loc(line))
}

// sample builds one named directive plus a human-readable description.
type sample struct {
	name string
	desc string
	build func() psl.Node
}

var catalog = []sample{
	{
		name: "handshake",
		desc: "assert always (req -> eventually! ack) @(posedge clk)",
		build: func() psl.Node {
			req := psl.SERE(false, loc(1), psl.Signal("req", loc(1)))
			ack := psl.Eventually(psl.Signal("ack", loc(1)), loc(1))
			impl := psl.SuffixImpl(req, ack, true, loc(1))
			always := psl.Always(impl, loc(1))
			return &psl.Stub{K: psl.KindAssert, L: loc(1), Val: clocked(always, "clk", 1)}
		},
	},
	{
		name: "no_overflow",
		desc: "assert never overflow @(posedge clk)",
		build: func() psl.Node {
			never := psl.Never(psl.Signal("overflow", loc(2)), loc(2))
			return &psl.Stub{K: psl.KindAssert, L: loc(2), Val: clocked(never, "clk", 2)}
		},
	},
	{
		name: "grant_before_busy",
		desc: "assert (grant before busy) @(posedge clk)",
		build: func() psl.Node {
			before := psl.Before(psl.Signal("grant", loc(3)), psl.Signal("busy", loc(3)), 0, loc(3))
			return &psl.Stub{K: psl.KindAssert, L: loc(3), Val: clocked(before, "clk", 3)}
		},
	},
	{
		name: "req_ack_cover",
		desc: "cover {req;ack} report \"handshake seen\" @(posedge clk)",
		build: func() psl.Node {
			seq := psl.SERE(false, loc(4), psl.Signal("req", loc(4)), psl.Signal("ack", loc(4)))
			msg := psl.Signal("handshake seen", loc(4))
			cover := &psl.Stub{K: psl.KindCover, L: loc(4), Val: clocked(seq, "clk", 4), MessageV: msg}
			return cover
		},
	},
	{
		name: "abort_on_reset",
		desc: "assert always (req until ack) abort reset @(posedge clk)",
		build: func() psl.Node {
			until := psl.Until(psl.Signal("req", loc(5)), psl.Signal("ack", loc(5)), 0, loc(5))
			ab := psl.Abort(until, psl.Signal("reset", loc(5)), true, loc(5))
			always := psl.Always(ab, loc(5))
			return &psl.Stub{K: psl.KindAssert, L: loc(5), Val: clocked(always, "clk", 5)}
		},
	},
}

func findSample(name string) (sample, error) {
	for _, s := range catalog {
		if s.name == name {
			return s, nil
		}
	}
	names := make([]string, 0, len(catalog))
	for _, s := range catalog {
		names = append(names, s.name)
	}
	sort.Strings(names)
	return sample{}, fmt.Errorf("pslfsm: unknown sample %q (known: %v)", name, names)
}
