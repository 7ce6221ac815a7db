// SPDX-License-Identifier: MIT
// Package: pslfsm/lower
//
// lower.go — the property lowerer (design component C7): translates a
// built fsm.FSM into an ir.Program, reproducing the block layout described
// for psl-lower.c's vcode output — a reset block, three reserved blocks
// (CASE, ABORT, PREV), then one block per FSM state — adapted to an
// in-memory ir.Builder instead of a real vcode unit, and to this module's
// own Wiring/Plan/Database collaborators instead of a VHDL elaborator.
//
// Grounded on ir.Builder (this repository) for instruction emission, and on
// fsm/build.go's one-recipe-per-construct layout for the per-state dispatch
// logic below: each state's block mirrors a "recipe", just keyed by
// fsm.State shape rather than psl.Kind.
package lower

import (	"fmt"

	"github.com/pslfsm/compiler/clock"
	"github.com/pslfsm/compiler/cover"
	"github.com/pslfsm/compiler/fsm"
	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/psl"
	"github.com/rs/xid"
)

// stdLogicWidth matches guard.Lower's own std_logic encoding width: the
// prev shift registers this module allocates hold the same representation
// the HDL lowerer otherwise produces, since a prev reference is lowered
// exactly like any other HDL rvalue wherever it doesn't appear (guard.Lower
// never special-cases it; only prevAwareLowerer, below, does).
const stdLogicWidth = 8

// Local aliases for ir's reserved block ids, kept short since every
// function below names them repeatedly.
const (	resetBlock = ir.ResetBlock
	caseBlock = ir.CaseBlock
	abortBlock = ir.AbortBlock
	prevBlock = ir.PrevBlock
)

// Diagnostics receives the lowerer's own tier-2/3 diagnostics (a directive
// whose clock/prev wiring failed, or a state the closure walk could not
// reconcile with the FSM's own invariants).
type Diagnostics interface {
	Errorf(loc psl.Locus, format string, args...any)
}

// Unit is one lowered property: an ir.Builder plus the bookkeeping needed
// to translate fsm.StateID into the ir.BlockID that implements it, and the
// collaborators (clock wiring, prev plan, coverage database) every
// state's block may need to consult.
type Unit struct {
	*ir.Builder

	f *fsm.FSM
	wiring *clock.Wiring
	prev *clock.Plan
	hdl guard.HDLLowerer
	cov *cover.Database
	scope *cover.Scope
	diag Diagnostics
	printer guard.ExprPrinter
	blockOf map[fsm.StateID]ir.BlockID
	stateVar ir.Reg
	takenVar ir.Reg
	doneVar ir.Reg
}

// Lower builds the ir.Program implementing f, wired to clk (the resolved
// clock and outermost async-abort condition) and prevPlan (the resolved
// prev(x,n) shift registers — pass a plan built from clock.NewPlan over
// clock.CollectPrevCalls(directive), never nil; a directive with no prev
// calls still needs a non-nil, empty Plan). hdl lowers HDL rvalue leaves;
// covDB may be nil, in which case COVER acceptance still emits its
// coverage statement but never touches a Database. printer (may be nil)
// supplies the text for a COVER directive's optional report message; a nil
// printer, or an empty printed text, falls back to the message node's
// Stub name and then to its source locus.
func Lower(f *fsm.FSM, clk *clock.Wiring, prevPlan *clock.Plan, hdl guard.HDLLowerer, covDB *cover.Database, printer guard.ExprPrinter, diag Diagnostics, name string) (*ir.Program, error) {
	u := &Unit{
 Builder: ir.NewBuilder(name),
 f: f,
 wiring: clk,
 prev: prevPlan,
 hdl: hdl,
 cov: covDB,
 diag: diag,
 printer: printer,
 blockOf: make(map[fsm.StateID]ir.BlockID, len(f.States())),
	}
	if covDB != nil {
 u.scope = covDB.CreateScope(f.Src.Locus().String(), xid.ID{})
	}
	// prev references read through this wrapper, so a node the real HDL
	// lowerer would never recognise resolves to its shift-register slot
	// instead (clock/prev.go's documented cooperation strategy).
	if !u.prev.Empty() {
 u.hdl = prevAwareLowerer{inner: hdl, plan: u.prev}
	} else {
 u.hdl = hdl
	}

	if id := u.Builder.EmitBlock(); id != resetBlock {
 panic("lower: reset block must be id 0")
	}
	if id := u.Builder.EmitBlock(); id != caseBlock {
 panic("lower: case block must be id 1")
	}
	if id := u.Builder.EmitBlock(); id != abortBlock {
 panic("lower: abort block must be id 2")
	}
	if id := u.Builder.EmitBlock(); id != prevBlock {
 panic("lower: prev block must be id 3")
	}

	for _, st := range f.States() {
 u.blockOf[st.ID] = u.Builder.EmitBlock()
	}

	// Variable declarations live in the reset block: they're allocated once,
	// not per tick, matching how EmitVar represents a persistent storage
	// location rather than a fresh SSA-style value.
	u.SelectBlock(resetBlock)
	u.stateVar = u.Builder.EmitVar("state", 32)
	u.Builder.Program.StateVar = u.stateVar
	u.takenVar = u.Builder.EmitVar("taken", 1)
	u.doneVar = u.Builder.EmitVar("reset_done", 1)
	u.prev.EmitDecls(u.Builder, stdLogicWidth)

	u.lowerReset()
	if err := u.lowerPrevBlock(); err != nil {
 return nil, err
	}
	if err := u.lowerCaseBlock(); err != nil {
 return nil, err
	}
	u.lowerAbortBlock()

	for _, st := range f.States() {
 if err := u.lowerState(st); err != nil {
 return nil, err
 }
	}

	return u.Builder.Program, nil
}

// lowerReset implements the entry sequence's first-invocation half: on the
// very first tick, register the clock (and any outermost async-abort)
// sensitivity; every subsequent tick skips straight to the PREV block.
func (u *Unit) lowerReset() {
	u.SelectBlock(resetBlock)
	done := u.EmitLoad(u.doneVar)
	doResetBlock := u.EmitBlock()
	u.EmitCond(done, prevBlock, doResetBlock)

	u.SelectBlock(doResetBlock)
	u.wiring.InstallTrigger(u.Builder, "abort")
	one := u.EmitConst(1, 1)
	u.EmitStore(one, u.doneVar)
	u.EmitJump(prevBlock)
}

// lowerPrevBlock implements the PREV block (entry sequence step 3): shift
// every prev(x,n) register one tick before any guard in CASE reads its
// slot-0 value, so evaluation order always sees this tick's shift applied
// first.
func (u *Unit) lowerPrevBlock() error {
	u.SelectBlock(prevBlock)
	if !u.prev.Empty() {
 // EmitShift must lower x itself through the *real* HDL lowerer, not
 // prevAwareLowerer, or prev(prev(x,1),1) would recurse into this
 // same plan (clock/prev.go's own doc comment on EmitShift).
 if err := u.prev.EmitShift(u.Builder, u.hdlForShift()); err != nil {
 u.diag.Errorf(u.f.Src.Locus(), "prev lowering failed: %v", err)
 u.EmitUnreachable()
 return fmt.Errorf("lower: %s: %w", u.f.Src.Locus(), err)
 }
	}
	u.EmitJump(caseBlock)
	return nil
}

// hdlForShift unwraps prevAwareLowerer back to the real lowerer, if this
// Unit installed one.
func (u *Unit) hdlForShift() guard.HDLLowerer {
	if w, ok := u.hdl.(prevAwareLowerer); ok {
 return w.inner
	}
	return u.hdl
}

// lowerCaseBlock implements the entry sequence's CASE block: dispatch on
// the current state id to its own block, falling back to ABORT for any
// value no state claims (unreachable for a well-formed dispatch driven by a
// runtime that only ever stores ids fsm.FSM itself allocated).
func (u *Unit) lowerCaseBlock() error {
	u.SelectBlock(caseBlock)
	states := u.f.States()
	vals := make([]int64, 0, len(states))
	blocks := make([]ir.BlockID, 0, len(states))
	for _, st := range states {
 vals = append(vals, int64(st.ID))
 blocks = append(blocks, u.blockOf[st.ID])
	}
	selector := u.EmitLoad(u.stateVar)
	u.EmitCase(selector, abortBlock, vals, blocks)
	return nil
}

// lowerAbortBlock implements the liveness-obligation failure path: reached
// only when the runtime, at the end of a simulation, finds a strong state
// still live and jumps here directly (never via CASE's default during
// normal ticking).
func (u *Unit) lowerAbortBlock() {
	u.SelectBlock(abortBlock)
	u.EmitReport("strong property live at end of simulation", ir.SeverityFailure, u.f.Src.Locus().String())
	u.EmitAssert(u.EmitConst(1, 0), ir.SeverityFailure, u.f.Src.Locus().String())
	u.EmitReturn(ir.InvalidReg)
}

// lowerState emits st's own block: the initial-state repeating re-entry,
// its (possibly guarded) acceptance action, and its real transitions after
// closing over any outgoing epsilon edges.
func (u *Unit) lowerState(st *fsm.State) error {
	u.SelectBlock(u.blockOf[st.ID])

	if st.Initial && u.f.Repeating() {
 u.EmitEnterState(int32(st.ID), st.Strong)
	}

	c := closeState(u.f, st.ID)

	if c.accept {
 if c.acceptUnconditional {
 u.emitAccept(st)
 u.EmitReturn(ir.InvalidReg)
 return nil
 }
 reg, err := guard.Lower(c.acceptGuard, u.hdl, u.Builder)
 if err != nil {
 return fmt.Errorf("lower: %s: %w", st.Where.Locus(), err)
 }
 acceptThen := u.EmitBlock()
 edgesBlock := u.EmitBlock()
 u.EmitCond(reg, acceptThen, edgesBlock)

 u.SelectBlock(acceptThen)
 u.emitAccept(st)
 u.EmitReturn(ir.InvalidReg)

 u.SelectBlock(edgesBlock)
 return u.lowerTransitions(st, c)
	}

	return u.lowerTransitions(st, c)
}

// emitAccept emits the per-kind acceptance action: a coverage hit for
// COVER, an assertion failure for NEVER, nothing beyond silent success for
// a bare/ALWAYS property (reaching an accept state there simply means this
// invocation's obligation is discharged).
func (u *Unit) emitAccept(st *fsm.State) {
	switch u.f.Kind {
	case fsm.Cover:
 u.emitCoverHit(st)
	case fsm.Never:
 u.EmitReport("property violated", ir.SeverityError, st.Where.Locus().String())
 u.EmitAssert(u.EmitConst(1, 0), ir.SeverityError, st.Where.Locus().String())
	default:
 u.EmitComment("property satisfied")
	}
}

// emitCoverHit implements the COVER accept action: an unconditional report
// message (when the directive carries one) followed by a coverage
// statement and, when a Database is wired in, the functional-coverage item
// stamp. The report is unconditional even when the database itself is
// disabled or absent: the message is a simulation-log artifact, not
// coverage data.
func (u *Unit) emitCoverHit(st *fsm.State) {
	if u.f.Src.HasMessage() {
 u.EmitReport(u.messageText(u.f.Src.Message()), ir.SeverityNote, st.Where.Locus().String())
	}
	tag := fmt.Sprintf("cover@%s", u.f.Src.Locus().String())
	u.EmitCoverStmt(tag)
	if u.cov != nil {
 idx := u.cov.AddItem(u.scope, tag)
 u.cov.StampItem(u.scope, idx)
	}
}

func (u *Unit) messageText(n psl.Node) string {
	if u.printer != nil {
 if s := u.printer.PrintExpr(n); s != "" {
 return s
 }
	}
	if s, ok := n.(*psl.Stub); ok && s.Name != "" {
 return s.Name
	}
	return n.Locus().String()
}

// lowerTransitions emits st's closure transitions: each guarded transition
// conditionally enters its destination and marks taken; an unconditional
// one does so unconditionally. Unless this FSM is COVER or NEVER, taken
// must end up true, or the property failed to progress — an ERROR
// assertion at simulation time, not a tier-1/2 diagnostic. It fails
// whenever every guarded transition of the closure is false and there is
// no unconditional one (an HDL_EXPR test that does not hold, for instance).
func (u *Unit) lowerTransitions(st *fsm.State, c closure) error {
	zero := u.EmitConst(1, 0)
	u.EmitStore(zero, u.takenVar)

	for _, t := range c.transitions {
 if _, ok := u.blockOf[t.dest]; !ok {
 return fmt.Errorf("lower: %s: transition to unknown state %d", st.Where.Locus(), t.dest)
 }
 destStrong := u.f.State(t.dest).Strong

 if t.guard == nil {
 u.EmitEnterState(int32(t.dest), destStrong)
 one := u.EmitConst(1, 1)
 u.EmitStore(one, u.takenVar)
 continue
 }

 reg, err := guard.Lower(t.guard, u.hdl, u.Builder)
 if err != nil {
 return fmt.Errorf("lower: %s: %w", st.Where.Locus(), err)
 }
 takeBlock := u.EmitBlock()
 nextBlock := u.EmitBlock()
 u.EmitCond(reg, takeBlock, nextBlock)

 u.SelectBlock(takeBlock)
 u.EmitEnterState(int32(t.dest), destStrong)
 one := u.EmitConst(1, 1)
 u.EmitStore(one, u.takenVar)
 u.EmitJump(nextBlock)

 u.SelectBlock(nextBlock)
	}

	if u.f.Kind != fsm.Cover && u.f.Kind != fsm.Never {
 taken := u.EmitLoad(u.takenVar)
 u.EmitAssert(taken, ir.SeverityError, st.Where.Locus().String())
	}
	u.EmitReturn(ir.InvalidReg)
	return nil
}
