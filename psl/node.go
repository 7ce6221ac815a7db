// SPDX-License-Identifier: MIT
// Package: pslfsm/psl
//
// node.go — the read-only PSL AST view (design component C1).
//
// Policy:
// - psl owns no mutable state and performs no I/O; it is a thin, typed
// window onto a parser-owned tree.
// - Node is an interface rather than a concrete struct so that an upstream
// parser can supply its own backing representation; Stub (stub.go)
// offers a concrete implementation used throughout this module's own
// tests and its cmd/pslfsm CLI.
// AI-HINT (file):
// - Kind distinguishes property/sequence/operator categories; SubKind
// refines a Kind (e.g. SERE_CONCAT vs SERE_FUSION); Flags is a bitset.
// - Operands, Value, Delay, Message, Repeat, Tree and Ref are all optional
// and callers MUST check Has* before calling the corresponding getter.
package psl

// Kind enumerates the PSL node categories relevant to FSM construction.
type Kind int

const (	KindHDLExpr Kind = iota
	KindNext
	KindNextA
	KindNextEvent
	KindSERE
	KindLogical
	KindUntil
	KindEventually
	KindAbort
	KindBefore
	KindSuffixImpl
	KindAlways
	KindNever
	KindAssert
	KindAssume
	KindRestrict
	KindCover
	KindFairness
	KindClocked
	KindClockDecl
	KindBuiltinFCall
	KindRepeat
)

// String renders a Kind the way diagnostics want it: "cannot handle PSL kind
// %s" expects a human name, not an integer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
 return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	KindHDLExpr: "HDL_EXPR",
	KindNext: "NEXT",
	KindNextA: "NEXT_A",
	KindNextEvent: "NEXT_EVENT",
	KindSERE: "SERE",
	KindLogical: "LOGICAL",
	KindUntil: "UNTIL",
	KindEventually: "EVENTUALLY",
	KindAbort: "ABORT",
	KindBefore: "BEFORE",
	KindSuffixImpl: "SUFFIX_IMPL",
	KindAlways: "ALWAYS",
	KindNever: "NEVER",
	KindAssert: "ASSERT",
	KindAssume: "ASSUME",
	KindRestrict: "RESTRICT",
	KindCover: "COVER",
	KindFairness: "FAIRNESS",
	KindClocked: "CLOCKED",
	KindClockDecl: "CLOCK_DECL",
	KindBuiltinFCall: "BUILTIN_FCALL",
	KindRepeat: "REPEAT",
}

// SubKind refines a Kind. Its legal values depend on Kind; see the constants
// grouped below (e.g. SubKind values for KindSERE are SubSereConcat /
// SubSereFusion).
type SubKind int

const (	SubNone SubKind = iota

	// KindSERE sub-kinds.
	SubSereConcat
	SubSereFusion

	// KindLogical sub-kinds.
	SubLogicIf
	SubLogicIff
	SubLogicOr

	// KindSuffixImpl sub-kinds.
	SubSuffixOverlap
	SubSuffixNonOverlap

	// KindAbort sub-kinds.
	SubAbortAsync
	SubAbortSync

	// KindRepeat sub-kinds.
	SubRepeatPlus // [+]
	SubRepeatGoto // [->n] / [->n..m]
	SubRepeatEqual // [=n] / [=n..m]
	SubRepeatTimes // [*n] / [*n..m] / [*]

	// KindBuiltinFCall sub-kinds.
	SubBuiltinPrev
)

// Flags is a bitset carried on a node.
type Flags uint32

const (	FlagStrong Flags = 1 << iota
	FlagInclusive
)

// Has reports whether all bits of want are set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Locus is a source location, used purely for diagnostics.
type Locus struct {
	File string
	Line int
	Col int
}

// String renders "file:line:col", the conventional Go diagnostic format.
func (l Locus) String() string {
	if l.File == "" {
 return "<unknown>"
	}
	return l.File + ":" + itoa(l.Line) + ":" + itoa(l.Col)
}

func itoa(n int) string {
	if n == 0 {
 return "0"
	}
	neg := n < 0
	if neg {
 n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
 i--
 buf[i] = byte('0' + n%10)
 n /= 10
	}
	if neg {
 i--
 buf[i] = '-'
	}
	return string(buf[i:])
}

// Node is the read-only external AST handle this package exposes as a
// typed view onto a parser-owned tree. Implementations are supplied by an
// upstream parser; this module never mutates a Node and never constructs
// one outside of Stub (used for tests and the CLI).
type Node interface {
	Kind() Kind
	SubKind() SubKind
	Flags() Flags
	Locus() Locus

	// Operands returns the node's ordered child operands. Most operator
	// kinds carry exactly the operands their recipe in expects
	// (e.g. KindUntil has two: lhs, rhs).
	Operands() []Node

	// Value is the single "continue with" child carried by NEVER, ALWAYS,
	// NEXT, EVENTUALLY, CLOCKED, ASSERT-like wrapper nodes. HasValue reports
	// whether it is present.
	HasValue() bool
	Value() Node

	// Delay is the optional cycle count embedded in a NEXT[k] node.
	HasDelay() bool
	Delay() Node

	// Message is the optional user report string expression on a directive.
	HasMessage() bool
	Message() Node

	// Repeat is the optional repetition-spec node attached to a SERE.
	HasRepeat() bool
	Repeat() Node

	// Tree is the carrier for an embedded HDL (VHDL) expression tree, used
	// by KindHDLExpr nodes and by KindRepeat bound expressions.
	HasTree() bool
	Tree() Node

	// Ref links a CLOCKED node to its resolved clock declaration.
	HasRef() bool
	Ref() Node
}
