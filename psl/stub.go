// SPDX-License-Identifier: MIT
// Package: pslfsm/psl
//
// stub.go — a concrete, in-memory Node implementation.
//
// The real PSL parser is an external collaborator (out of
// scope). Stub lets this module's own tests, the cmd/pslfsm CLI, and the
// scenarios_test suite construct PSL trees directly in Go, without
// depending on a parser that doesn't exist in this repository.
package psl

// Stub is a concrete, mutable-at-construction-time Node. Once passed to
// fsm.Build, it is treated as read-only, matching the contract real parser
// nodes must also satisfy.
//
// Name is populated only on KindHDLExpr leaves; it is not part of the Node
// interface contract but is read directly by guard.MapLowerer (a bundled
// HDL-lowerer stand-in keyed by signal name) via a type assertion to *Stub.
type Stub struct {
	K Kind
	Sub SubKind
	F Flags
	L Locus
	Ops []Node
	Val Node
	DelayV Node
	MessageV Node
	RepeatV Node
	TreeV Node
	RefV Node
	Name string

	// constVal, when non-nil, makes this leaf foldable by numfold.Fold
	// without requiring a full VHDL constant-folder collaborator.
	constVal *int64
}

// ConstValue reports the folded value of a Number leaf and whether it has
// one. numfold.Fold uses this as its built-in folding strategy for Stub
// trees; a real VHDL constant folder would replace this entirely.
func (s *Stub) ConstValue() (int64, bool) {
	if s.constVal == nil {
 return 0, false
	}
	return *s.constVal, true
}

var _ Node = (*Stub)(nil)

func (s *Stub) Kind() Kind { return s.K }
func (s *Stub) SubKind() SubKind { return s.Sub }
func (s *Stub) Flags() Flags { return s.F }
func (s *Stub) Locus() Locus { return s.L }
func (s *Stub) Operands() []Node { return s.Ops }

func (s *Stub) HasValue() bool { return s.Val != nil }
func (s *Stub) Value() Node { return s.Val }

func (s *Stub) HasDelay() bool { return s.DelayV != nil }
func (s *Stub) Delay() Node { return s.DelayV }

func (s *Stub) HasMessage() bool { return s.MessageV != nil }
func (s *Stub) Message() Node { return s.MessageV }

func (s *Stub) HasRepeat() bool { return s.RepeatV != nil }
func (s *Stub) Repeat() Node { return s.RepeatV }

func (s *Stub) HasTree() bool { return s.TreeV != nil }
func (s *Stub) Tree() Node { return s.TreeV }

func (s *Stub) HasRef() bool { return s.RefV != nil }
func (s *Stub) Ref() Node { return s.RefV }

// Signal builds a KindHDLExpr leaf carrying a bare signal name.
func Signal(name string, loc Locus) *Stub {
	return &Stub{K: KindHDLExpr, L: loc, Name: name}
}

// Next builds a KindNext node with an optional delay count (a nil delay
// means "no delay node", matching "when k is absent, k = 1").
func Next(value Node, delay Node, loc Locus) *Stub {
	return &Stub{K: KindNext, L: loc, Val: value, DelayV: delay}
}

// Number builds a constant integer leaf foldable by numfold.Fold.
func Number(v int64, loc Locus) *Stub {
	return &Stub{K: KindHDLExpr, L: loc, Name: "", constVal: &v}
}

// Always wraps value in a KindAlways node.
func Always(value Node, loc Locus) *Stub { return &Stub{K: KindAlways, L: loc, Val: value} }

// Never wraps value in a KindNever node.
func Never(value Node, loc Locus) *Stub { return &Stub{K: KindNever, L: loc, Val: value} }

// Clocked wraps value in a KindClocked node, with ref pointing at the
// resolved clock declaration (see clock.Wire's single-clock restriction).
func Clocked(value Node, ref Node, loc Locus) *Stub {
	return &Stub{K: KindClocked, L: loc, Val: value, RefV: ref}
}

// ClockDecl builds a KindClockDecl node carrying the clock HDL expression in
// Tree.
func ClockDecl(clkExpr Node, loc Locus) *Stub {
	return &Stub{K: KindClockDecl, L: loc, TreeV: clkExpr}
}

// SERE builds a concatenation (or, with fusion=true, a fusion) of ops.
func SERE(fusion bool, loc Locus, ops...Node) *Stub {
	sub := SubSereConcat
	if fusion {
 sub = SubSereFusion
	}
	return &Stub{K: KindSERE, Sub: sub, L: loc, Ops: ops}
}

// RepeatSpec carries the repetition kind and optional bound tree, attached
// to a SERE node via WithRepeat.
func RepeatSpec(sub SubKind, bound Node, loc Locus) *Stub {
	return &Stub{K: KindRepeat, Sub: sub, L: loc, TreeV: bound}
}

// WithRepeat attaches a repeat spec to a SERE in place and returns it, for
// fluent construction: SERE(false, loc, a).WithRepeat(RepeatSpec(...)).
func (s *Stub) WithRepeat(r Node) *Stub {
	s.RepeatV = r
	return s
}

// Range builds a [low,high] bound tree for a KindRepeat node's Tree.
// Operands[0] is low, Operands[1] is high.
func Range(low, high Node, loc Locus) *Stub {
	return &Stub{K: KindHDLExpr, L: loc, Ops: []Node{low, high}}
}

// Logical builds an IF/IFF/OR logical node over lhs, rhs.
func Logical(sub SubKind, lhs, rhs Node, loc Locus) *Stub {
	return &Stub{K: KindLogical, Sub: sub, L: loc, Ops: []Node{lhs, rhs}}
}

// Until builds a (weak or strong, inclusive or not) UNTIL node.
func Until(lhs, rhs Node, flags Flags, loc Locus) *Stub {
	return &Stub{K: KindUntil, F: flags, L: loc, Ops: []Node{lhs, rhs}}
}

// Eventually builds an EVENTUALLY! node (always strong).
func Eventually(value Node, loc Locus) *Stub {
	return &Stub{K: KindEventually, L: loc, Val: value}
}

// Abort builds an ABORT node; async selects PSL_ABORT_ASYNC vs..._SYNC.
func Abort(lhs, cond Node, async bool, loc Locus) *Stub {
	sub := SubAbortSync
	if async {
 sub = SubAbortAsync
	}
	return &Stub{K: KindAbort, Sub: sub, L: loc, Ops: []Node{lhs, cond}}
}

// Before builds a BEFORE node over a, b with the given flags.
func Before(a, b Node, flags Flags, loc Locus) *Stub {
	return &Stub{K: KindBefore, F: flags, L: loc, Ops: []Node{a, b}}
}

// SuffixImpl builds a |-> (overlap=true) or |=> (overlap=false) node.
func SuffixImpl(seq, prop Node, overlap bool, loc Locus) *Stub {
	sub := SubSuffixNonOverlap
	if overlap {
 sub = SubSuffixOverlap
	}
	return &Stub{K: KindSuffixImpl, Sub: sub, L: loc, Ops: []Node{seq, prop}}
}

// Prev builds a prev(x, n) built-in call; n defaults to 1 when nil.
func Prev(x Node, n Node, loc Locus) *Stub {
	var ops []Node
	if n != nil {
 ops = []Node{x, n}
	} else {
 ops = []Node{x}
	}
	return &Stub{K: KindBuiltinFCall, Sub: SubBuiltinPrev, L: loc, Ops: ops}
}
