// SPDX-License-Identifier: MIT
// Package: pslfsm/clock
//
// prev.go — the prev(x, n) shift-register lowering: allocate n
// shift-register variables of type(x) (bounded by n <= 512; for array x,
// length must be statically known). On every PREV execution, shift elements
// [i+1] -> [i]..., then store the current x at slot n-1. A reference
// evaluates to slot 0.
//
// prev's shift-register lowering needs cooperation between graph
// compilation and the code emitter, split as follows: fsm/boolean.go treats
// a KindBuiltinFCall/SubBuiltinPrev node as an ordinary HDL_EXPR leaf (graph
// construction never needs to know it's special), and lower.Unit
// substitutes a prev-aware guard.HDLLowerer (prevAwareLowerer, in
// lower/prev_lowerer.go) that consults a Plan built by this file instead of
// calling through to the real HDL lowerer when it recognises the node.
package clock

import (	"errors"
	"fmt"

	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/psl"
)

// MaxPrevDepth is the documented limitation: "sorry, Number
// higher than 512 is not supported".
const MaxPrevDepth = 512

// ErrPrevTooLarge is the tier-2 "sorry," diagnostic for an
// n > MaxPrevDepth.
var ErrPrevTooLarge = errors.New("clock: prev depth exceeds the supported limit")

// ErrNonConstantArrayLength is the tier-2 "sorry," diagnostic for
// prev(x, n) where x is an array whose length is not statically known.
var ErrNonConstantArrayLength = errors.New("clock: prev of an array requires a statically-known length")

// ArrayExpr is implemented by an HDL node that denotes an array-typed
// value; a real VHDL expression layer supplies this. psl.Stub never does,
// so any prev(x, n) over a Stub leaf is always treated as scalar.
type ArrayExpr interface {
	ArrayLength() (int64, bool)
}

// CollectPrevCalls walks directive's full tree (Operands, Value, Delay,
// Message, Repeat, Tree, Ref) and returns every KindBuiltinFCall node with
// SubKind SubBuiltinPrev, in the order first encountered. A directive may
// reference prev(x,n) any number of times, each needing its own
// independent shift register: nothing in PSL restricts a property to
// exactly one.
func CollectPrevCalls(directive psl.Node) []psl.Node {
	var out []psl.Node
	seen := map[psl.Node]bool{}
	var walk func(psl.Node)
	walk = func(n psl.Node) {
 if n == nil || seen[n] {
 return
 }
 seen[n] = true
 if n.Kind() == psl.KindBuiltinFCall && n.SubKind() == psl.SubBuiltinPrev {
 out = append(out, n)
 }
 for _, op := range n.Operands() {
 walk(op)
 }
 if n.HasValue() {
 walk(n.Value())
 }
 if n.HasDelay() {
 walk(n.Delay())
 }
 if n.HasMessage() {
 walk(n.Message())
 }
 if n.HasRepeat() {
 walk(n.Repeat())
 }
 if n.HasTree() {
 walk(n.Tree())
 }
	}
	walk(directive)
	return out
}

// call is one resolved prev(x, n) occurrence.
type call struct {
	node psl.Node // the KindBuiltinFCall node itself; used as the lookup key
	x psl.Node
	n int64
	slots []ir.Reg // slots[0] is the "1 tick ago" register; slots[n-1] the newest
}

// Plan is the per-directive result of resolving every prev call: the
// register allocation needed to emit its shift-register declarations, the
// per-tick shift/store code, and a lookup from the original call node to
// its slot-0 register (what a reference evaluates to).
type Plan struct {
	calls []*call
}

// NewPlan resolves every node CollectPrevCalls found: folds its n operand
// (defaulting to 1 for the bare prev(x) shorthand), enforces MaxPrevDepth,
// and checks array-length staticity for any x implementing ArrayExpr.
// Returns the first tier-2 error encountered, if any; per the tier-2
// policy the caller should skip lowering this directive entirely rather
// than partially emit its PREV block.
func NewPlan(calls []psl.Node, folder numfold.Folder, diag numfold.Diagnostics) (*Plan, error) {
	p := &Plan{}
	for _, c := range calls {
 ops := c.Operands()
 if len(ops) == 0 {
 return nil, fmt.Errorf("clock: %s: prev requires at least one operand", c.Locus())
 }
 x := ops[0]
 n := int64(1)
 if len(ops) > 1 {
 var err error
 n, err = numfold.Fold(folder, diag, ops[1])
 if err != nil {
 return nil, fmt.Errorf("clock: %s: %w", c.Locus(), err)
 }
 }
 if n > MaxPrevDepth {
 return nil, fmt.Errorf("%w: %s: prev(x, %d)", ErrPrevTooLarge, c.Locus(), n)
 }
 if n < 1 {
 n = 1
 }
 if ae, ok := x.(ArrayExpr); ok {
 if _, ok := ae.ArrayLength(); !ok {
 return nil, fmt.Errorf("%w: %s", ErrNonConstantArrayLength, c.Locus())
 }
 }
 p.calls = append(p.calls, &call{node: c, x: x, n: n})
	}
	return p, nil
}

// Empty reports whether the plan has no prev calls at all (the "has_prev"
// gate the PREV block lowering checks before emitting anything).
func (p *Plan) Empty() bool { return len(p.calls) == 0 }

// EmitDecls allocates each call's n shift-register variables. width is the
// bit width to allocate per slot. guard.HDLLowerer has no width query, so
// the caller passes a fixed width for every slot — lower/lower.go passes
// its std_logic width constant.
func (p *Plan) EmitDecls(e ir.Emitter, width int) {
	for ci, c := range p.calls {
 c.slots = make([]ir.Reg, c.n)
 for i := range c.slots {
 c.slots[i] = e.EmitVar(fmt.Sprintf("__prev_%d_%d", ci, i), width)
 }
	}
}

// EmitShift emits the per-tick shift-and-store code for every call: slot
// values move toward index 0 (copy [i+1] -> [i]), then the freshly lowered
// value of x is stored at slot n-1. hdl lowers x itself —
// it must NOT be the prev-aware lowerer (lower.prevAwareLowerer), or a
// prev(prev(x,1),1) expression would recurse into this same Plan;
// Non-goals already exclude nested/compound prev usage.
func (p *Plan) EmitShift(e ir.Emitter, hdl guard.HDLLowerer) error {
	for _, c := range p.calls {
 for i := 0; i < len(c.slots)-1; i++ {
 v := e.EmitLoad(c.slots[i+1])
 e.EmitStore(v, c.slots[i])
 }
 cur, _, err := hdl.LowerRvalue(e, c.x)
 if err != nil {
 return fmt.Errorf("clock: %s: %w", c.node.Locus(), err)
 }
 e.EmitStore(cur, c.slots[len(c.slots)-1])
	}
	return nil
}

// RefReg returns the slot-0 register for node (a prev call node
// previously passed to NewPlan), which is what a reference to prev(x,n)
// evaluates to. ok is false if node isn't a call this plan
// resolved.
func (p *Plan) RefReg(node psl.Node) (ir.Reg, bool) {
	for _, c := range p.calls {
 if c.node == node {
 return c.slots[0], true
 }
	}
	return ir.InvalidReg, false
}
