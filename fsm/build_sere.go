// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm
//
// build_sere.go — the SERE recipes: plain
// concatenation (";") and fusion (":"), plus the four repetition forms
// ([*n..m], [+], [->n..m], [=n..m]) and their bound-resolution rules.
//
// AI-HINT (file):
// - [->n..m] and [=n..m] only ever repeat a single Boolean element (PSL's
// own grammar restricts them this way); buildOccurrenceRepeat (through
// repeatedBoolean) relies on that and rejects a multi-element operand list.
// - An absent Tree on a KindRepeat node means the bound implied by its
// bare syntax: "[*]" is 0..infinity, "[+]" is 1..infinity, a bare
// "[->]"/"[=]" is exactly 1.
package fsm

import (	"fmt"

	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/psl"
)

// buildSequence dispatches a KindSERE node to plain concatenation/fusion or,
// when a repeat spec is attached, to the matching repetition recipe.
func (b *builder) buildSequence(state StateID, p psl.Node) (StateID, error) {
	if p.HasRepeat() {
 return b.buildRepeated(state, p)
	}
	return b.buildConcatOrFusion(state, p)
}

// buildConcatOrFusion implements plain SERE concatenation (elements
// separated by one clock tick) and fusion (the last state of element i is
// reused as the first state of element i+1, overlapping the matching
// cycle — ":" operator).
func (b *builder) buildConcatOrFusion(state StateID, p psl.Node) (StateID, error) {
	ops := p.Operands()
	if len(ops) == 0 {
 return state, nil
	}
	cur := state
	for i, el := range ops {
 next, err := b.buildNode(cur, el)
 if err != nil {
 return 0, err
 }
 if i < len(ops)-1 && p.SubKind() == psl.SubSereConcat {
 adv := b.fsm.AddState(p)
 AddEdge(b.fsm, next, adv.ID, Next, nil)
 cur = adv.ID
 } else {
 cur = next
 }
	}
	return cur, nil
}

// resolveRepeatBounds folds rep's bound tree, per the shapes Range and
// RepeatSpec produce: a two-operand Tree is [low..high]; a one-operand
// Tree is [low..] (unbounded); a bare Tree (no operands, a plain number
// leaf) is the exact count [n..n]. An absent Tree yields the caller's
// defaults (the bare-syntax bound for this repeat sub-kind).
func (b *builder) resolveRepeatBounds(rep psl.Node, defaultLow int64, defaultUnbounded bool) (low, high int64, unbounded bool, err error) {
	if !rep.HasTree() {
 return defaultLow, 0, defaultUnbounded, nil
	}
	tree := rep.Tree()
	ops := tree.Operands()
	switch len(ops) {
	case 2:
 lo, err := numfold.Fold(b.folder, b.diag, ops[0])
 if err != nil {
 return 0, 0, false, fmt.Errorf("%w: %v", ErrAborted, err)
 }
 hi, err := numfold.Fold(b.folder, b.diag, ops[1])
 if err != nil {
 return 0, 0, false, fmt.Errorf("%w: %v", ErrAborted, err)
 }
 return lo, hi, false, nil
	case 1:
 lo, err := numfold.Fold(b.folder, b.diag, ops[0])
 if err != nil {
 return 0, 0, false, fmt.Errorf("%w: %v", ErrAborted, err)
 }
 return lo, 0, true, nil
	default:
 n, err := numfold.Fold(b.folder, b.diag, tree)
 if err != nil {
 return 0, 0, false, fmt.Errorf("%w: %v", ErrAborted, err)
 }
 return n, n, false, nil
	}
}

// buildRepeated dispatches to the recipe matching this repeat's sub-kind.
func (b *builder) buildRepeated(state StateID, p psl.Node) (StateID, error) {
	rep := p.Repeat()
	switch rep.SubKind() {
	case psl.SubRepeatPlus:
 return b.buildBoundedRepeat(state, p, 1, 0, true)
	case psl.SubRepeatTimes:
 low, high, unbounded, err := b.resolveRepeatBounds(rep, 0, true)
 if err != nil {
 return 0, err
 }
 return b.buildBoundedRepeat(state, p, low, high, unbounded)
	case psl.SubRepeatGoto:
 return b.buildOccurrenceRepeat(state, p, false)
	case psl.SubRepeatEqual:
 return b.buildOccurrenceRepeat(state, p, true)
	default:
 return 0, fmt.Errorf("fsm: %s: unknown repeat sub-kind %d", p.Locus(), rep.SubKind())
	}
}

// buildBoundedRepeat implements [*n..m], [*n..], [*] and [+]: low..high (or
// low..infinity, when unbounded) consecutive back-to-back matches of p's
// body (the SERE without its repeat spec). Every valid repeat count is
// joined into a single exit state via unconditional epsilon edges.
func (b *builder) buildBoundedRepeat(state StateID, p psl.Node, low, high int64, unbounded bool) (StateID, error) {
	var exits []StateID
	if low == 0 {
 exits = append(exits, state)
	}

	cur := state
	for i := int64(0); i < low; i++ {
 next, err := b.buildConcatOrFusion(cur, p)
 if err != nil {
 return 0, err
 }
 cur = next
	}
	if low > 0 {
 exits = append(exits, cur)
	}

	if unbounded {
 loopJoin := b.fsm.AddState(p)
 AddEdge(b.fsm, cur, loopJoin.ID, Epsilon, nil)
 extra, err := b.buildConcatOrFusion(loopJoin.ID, p)
 if err != nil {
 return 0, err
 }
 AddEdge(b.fsm, extra, loopJoin.ID, Epsilon, nil)
 exits = append(exits, loopJoin.ID)
	} else {
 for i := low; i < high; i++ {
 next, err := b.buildConcatOrFusion(cur, p)
 if err != nil {
 return 0, err
 }
 cur = next
 exits = append(exits, cur)
 }
	}

	join := b.fsm.AddState(p)
	for _, e := range exits {
 AddEdge(b.fsm, e, join.ID, Epsilon, nil)
	}
	return join.ID, nil
}

// repeatedBoolean extracts the single Boolean operand [->n..m] and [=n..m]
// repeat; PSL's grammar permits no other operand shape for these two forms.
func (b *builder) repeatedBoolean(p psl.Node) (guard.Guard, error) {
	ops := p.Operands()
	if len(ops) != 1 {
 return nil, fmt.Errorf("fsm: %s: goto/equal repetition requires a single Boolean operand, got %d", p.Locus(), len(ops))
	}
	return booleanGuard(ops[0])
}

// matchOnce builds "wait (busy-looping on !g) until g holds", returning the
// state reached the cycle g first holds. where supplies the diagnostic
// locus for the states it allocates.
func (b *builder) matchOnce(cur StateID, g guard.Guard, where psl.Node) StateID {
	w := b.fsm.AddState(where)
	AddEdge(b.fsm, cur, w.ID, Epsilon, nil)
	matched := b.fsm.AddState(where)
	AddEdge(b.fsm, w.ID, matched.ID, Next, g)
	AddEdge(b.fsm, w.ID, w.ID, Next, guard.Negate(g))
	return matched.ID
}

// buildOccurrenceRepeat implements [->n..m] (goto) and [=n..m] (equal): both
// count n..m occurrences of a Boolean condition separated by arbitrary
// don't-care cycles. They differ only in where the rest of the sequence may
// resume: goto resumes immediately at the nth occurrence; equal permits any
// number of additional don't-care cycles after it before resuming.
func (b *builder) buildOccurrenceRepeat(state StateID, p psl.Node, equal bool) (StateID, error) {
	g, err := b.repeatedBoolean(p)
	if err != nil {
 return 0, err
	}
	low, high, unbounded, err := b.resolveRepeatBounds(p.Repeat(), 1, false)
	if err != nil {
 return 0, err
	}

	var exits []StateID
	cur := state
	for i := int64(0); i < low; i++ {
 cur = b.matchOnce(cur, g, p)
	}
	exits = append(exits, cur)

	if unbounded {
 loopJoin := b.fsm.AddState(p)
 AddEdge(b.fsm, cur, loopJoin.ID, Epsilon, nil)
 nxt := b.matchOnce(loopJoin.ID, g, p)
 AddEdge(b.fsm, nxt, loopJoin.ID, Epsilon, nil)
 exits = []StateID{loopJoin.ID}
	} else {
 for i := low; i < high; i++ {
 cur = b.matchOnce(cur, g, p)
 exits = append(exits, cur)
 }
	}

	if !equal {
 join := b.fsm.AddState(p)
 for _, e := range exits {
 AddEdge(b.fsm, e, join.ID, Epsilon, nil)
 }
 return join.ID, nil
	}

	// equal: an arbitrary-length don't-care tail may follow each qualifying
	// exit before the sequence resumes. join itself carries that wait as its
	// own unconditional self-loop; whatever resumes the sequence attaches a
	// guarded edge to join afterwards, and AddEdge orders guarded edges
	// ahead of the existing default, so the self-loop stays last without a
	// second, competing unconditional edge on a separate idle state.
	join := b.fsm.AddState(p)
	for _, e := range exits {
 AddEdge(b.fsm, e, join.ID, Epsilon, nil)
	}
	AddEdge(b.fsm, join.ID, join.ID, Next, nil)
	return join.ID, nil
}
