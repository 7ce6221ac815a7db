// SPDX-License-Identifier: MIT
package scenarios_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pslfsm/compiler/compile"
	"github.com/pslfsm/compiler/cover"
	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/psl"
	"github.com/pslfsm/compiler/runtime"
)

func loc(line int) psl.Locus { return psl.Locus{File: "scenario", Line: line} }

func clockedDirective(kind psl.Kind, value psl.Node) *psl.Stub {
	decl := psl.ClockDecl(psl.Signal("clk", loc(1)), loc(1))
	return &psl.Stub{K: kind, L: loc(1), Val: psl.Clocked(value, decl, loc(1))}
}

type noopDiag struct{}

func (noopDiag) Warnf(loc psl.Locus, format string, args ...any)  {}
func (noopDiag) Errorf(loc psl.Locus, format string, args ...any) {}

// tickEvent tags every reporter callback with the 1-based tick it occurred
// during, so a scenario can assert "failure at tick 3" directly.
type tickEvent struct {
	tick     int
	severity ir.Severity
	message  string
	failed   bool
}

type harness struct {
	tick   int
	events []tickEvent
}

func (h *harness) Report(severity ir.Severity, locus, message string) {
	h.events = append(h.events, tickEvent{tick: h.tick, severity: severity, message: message})
}
func (h *harness) Assert(severity ir.Severity, locus string, cond bool) {
	if !cond {
		h.events = append(h.events, tickEvent{tick: h.tick, severity: severity, message: "assertion failed", failed: true})
	}
}
func (h *harness) Cover(tag string) {
	h.events = append(h.events, tickEvent{tick: h.tick, message: "cover:" + tag})
}

func (h *harness) failures() []tickEvent {
	var out []tickEvent
	for _, e := range h.events {
		if e.failed {
			out = append(out, e)
		}
	}
	return out
}

func (h *harness) covers() []tickEvent {
	var out []tickEvent
	for _, e := range h.events {
		if len(e.message) >= 6 && e.message[:6] == "cover:" {
			out = append(out, e)
		}
	}
	return out
}

// run compiles directive and feeds it one runtime.MapEnv per element of
// trace, in order (tick 1 is trace[0]). initialStrong matches the FSM's own
// initial-state strength, needed only when Finish must be called while
// state 0 is still the sole pending state.
func run(directive psl.Node, initialStrong bool, covDB *cover.Database, trace ...runtime.MapEnv) *harness {
	opts := compile.Options{Folder: numfold.StubFolder{}, HDL: guard.MapLowerer{AllBool: true}, Coverage: covDB}
	prog, err := compile.Compile(directive, "scenario", opts, noopDiag{})
	Expect(err).NotTo(HaveOccurred())

	h := &harness{}
	in := runtime.NewInterpreter(prog, initialStrong, h)
	for _, env := range trace {
		h.tick++
		in.Tick(env)
	}
	h.tick++
	in.Finish()
	return h
}

var _ = Describe("assert always (req |-> ack)", func() {
	// Overlapping suffix implication on a bare signal antecedent: ack is
	// checked the very next tick req holds, the same timing "req -> next
	// ack" would give, but expressed the way a non-Boolean consequent must
	// be (a plain LOGICAL combinator only accepts Boolean operands).
	directive := func() *psl.Stub {
		impl := psl.SuffixImpl(psl.Signal("req", loc(1)), psl.Signal("ack", loc(1)), true, loc(1))
		always := psl.Always(impl, loc(1))
		return clockedDirective(psl.KindAssert, always)
	}

	It("reports no failure when ack follows every req", func() {
		h := run(directive(), false,
			nil,
			runtime.MapEnv{"req": 0, "ack": 0},
			runtime.MapEnv{"req": 1, "ack": 0},
			runtime.MapEnv{"req": 0, "ack": 1},
			runtime.MapEnv{"req": 0, "ack": 0},
		)
		Expect(h.failures()).To(BeEmpty())
	})

	It("fails at the tick where ack never follows req", func() {
		h := run(directive(), false,
			nil,
			runtime.MapEnv{"req": 0, "ack": 0},
			runtime.MapEnv{"req": 1, "ack": 0},
			runtime.MapEnv{"req": 0, "ack": 0},
			runtime.MapEnv{"req": 0, "ack": 0},
		)
		failures := h.failures()
		Expect(failures).NotTo(BeEmpty())
		Expect(failures[0].tick).To(Equal(3))
	})
})

var _ = Describe("cover {a;b;c}", func() {
	It("records exactly one coverage hit once the sequence completes", func() {
		seq := psl.SERE(false, loc(1), psl.Signal("a", loc(1)), psl.Signal("b", loc(1)), psl.Signal("c", loc(1)))
		directive := clockedDirective(psl.KindCover, seq)
		covDB := cover.New(true)

		// Plain concatenation inserts an unconditional advance tick between
		// each matched element, so a, b and c each land two ticks apart; a
		// trailing neutral tick flushes the accept state's own block, where
		// the coverage hit is actually recorded.
		h := run(directive, false,
			covDB,
			runtime.MapEnv{"a": 1, "b": 0, "c": 0},
			runtime.MapEnv{"a": 0, "b": 0, "c": 0},
			runtime.MapEnv{"a": 0, "b": 1, "c": 0},
			runtime.MapEnv{"a": 0, "b": 0, "c": 0},
			runtime.MapEnv{"a": 0, "b": 0, "c": 1},
			runtime.MapEnv{"a": 0, "b": 0, "c": 0},
		)

		covers := h.covers()
		Expect(covers).To(HaveLen(1))

		scopes := covDB.Scopes()
		Expect(scopes).To(HaveLen(1))
		Expect(scopes[0].Totals()).To(Equal(1))
	})
})

var _ = Describe("assert never (fault)", func() {
	It("fails once fault's accept state is dispatched", func() {
		directive := clockedDirective(psl.KindAssert, psl.Never(psl.Signal("fault", loc(1)), loc(1)))
		// A trailing neutral tick flushes the accept state entered right
		// after fault asserts — NEVER's violation report is emitted from
		// that state's own block, one tick after fault was sampled.
		h := run(directive, false,
			nil,
			runtime.MapEnv{"fault": 0},
			runtime.MapEnv{"fault": 0},
			runtime.MapEnv{"fault": 0},
			runtime.MapEnv{"fault": 0},
			runtime.MapEnv{"fault": 1},
			runtime.MapEnv{"fault": 0},
		)
		failures := h.failures()
		Expect(failures).NotTo(BeEmpty())
	})
})

var _ = Describe("assert always (start |-> eventually! done)", func() {
	It("reports a strong-liveness failure when done never arrives", func() {
		ev := psl.Eventually(psl.Signal("done", loc(1)), loc(1))
		impl := psl.SuffixImpl(psl.Signal("start", loc(1)), ev, true, loc(1))
		directive := clockedDirective(psl.KindAssert, psl.Always(impl, loc(1)))

		h := run(directive, false,
			nil,
			runtime.MapEnv{"start": 1, "done": 0},
			runtime.MapEnv{"start": 0, "done": 0},
			runtime.MapEnv{"start": 0, "done": 0},
		)

		var sawLivenessReport bool
		for _, e := range h.events {
			if e.message == "strong property live at end of simulation" {
				sawLivenessReport = true
			}
		}
		Expect(sawLivenessReport).To(BeTrue())
	})
})

var _ = Describe("assert a until b", func() {
	It("weak until does not fail when b never arrives", func() {
		directive := clockedDirective(psl.KindAssert, psl.Until(psl.Signal("a", loc(1)), psl.Signal("b", loc(1)), 0, loc(1)))
		trace := make([]runtime.MapEnv, 10)
		for i := range trace {
			trace[i] = runtime.MapEnv{"a": 1, "b": 0}
		}
		h := run(directive, false, nil, trace...)
		var sawLivenessReport bool
		for _, e := range h.events {
			if e.message == "strong property live at end of simulation" {
				sawLivenessReport = true
			}
		}
		Expect(sawLivenessReport).To(BeFalse())
	})

	It("strong until! fails at simulation end when b never arrives", func() {
		directive := clockedDirective(psl.KindAssert,
			psl.Until(psl.Signal("a", loc(1)), psl.Signal("b", loc(1)), psl.FlagStrong, loc(1)))
		trace := make([]runtime.MapEnv, 10)
		for i := range trace {
			trace[i] = runtime.MapEnv{"a": 1, "b": 0}
		}
		h := run(directive, false, nil, trace...)
		var sawLivenessReport bool
		for _, e := range h.events {
			if e.message == "strong property live at end of simulation" {
				sawLivenessReport = true
			}
		}
		Expect(sawLivenessReport).To(BeTrue())
	})
})

var _ = Describe("assert {a;b} |-> c", func() {
	// Overlapping suffix implication on a two-element sequence: plain
	// concatenation inserts an unconditional advance tick between a and b,
	// so b is sampled two ticks after a, not one; overlap then checks c on
	// the same tick the sequence's match completes.
	directive := func() *psl.Stub {
		seq := psl.SERE(false, loc(1), psl.Signal("a", loc(1)), psl.Signal("b", loc(1)))
		impl := psl.SuffixImpl(seq, psl.Signal("c", loc(1)), true, loc(1))
		return clockedDirective(psl.KindAssert, impl)
	}

	It("passes when c follows the a;b sequence", func() {
		h := run(directive(), false,
			nil,
			runtime.MapEnv{"a": 1, "b": 0, "c": 0},
			runtime.MapEnv{"a": 0, "b": 0, "c": 0},
			runtime.MapEnv{"a": 0, "b": 1, "c": 0},
			runtime.MapEnv{"a": 0, "b": 0, "c": 1},
		)
		Expect(h.failures()).To(BeEmpty())
	})

	It("fails at the tick c should have held", func() {
		h := run(directive(), false,
			nil,
			runtime.MapEnv{"a": 1, "b": 0, "c": 0},
			runtime.MapEnv{"a": 0, "b": 0, "c": 0},
			runtime.MapEnv{"a": 0, "b": 1, "c": 0},
			runtime.MapEnv{"a": 0, "b": 0, "c": 0},
		)
		failures := h.failures()
		Expect(failures).NotTo(BeEmpty())
		Expect(failures[0].tick).To(Equal(4))
	})
})
