// SPDX-License-Identifier: MIT
// Package: pslfsm/runtime
//
// interp.go — a minimal, single-threaded tick interpreter for a lowered
// ir.Program: the simulation-time monitor the overview describes as the
// reason properties are lowered to a target IR at all.
//
// Ordering contract (one invocation per trigger, a consistent per-tick
// signal snapshot, deferred successor-state processing, and a liveness
// failure for any strong state still live at the end of the simulation)
// is implemented here rather than in the IR itself: the IR only records
// *what* a tick does, not *when* one happens, matching how ir.Instr.Locus
// is pre-rendered precisely so this package never needs to import psl.
//
// This interpreter assumes its caller already decided when to invoke Tick
// (on every clock edge, and again whenever the async-abort condition
// changes, per clock.Wire's sensitivity list) — it does not re-derive that
// decision from the OpAddTrigger/OpOrTrigger/OpFunctionTrigger/
// OpSchedEvent instructions it executes, which it treats as inert
// bookkeeping. Re-deriving it would mean reimplementing a full event-driven
// simulator, a different and much larger undertaking than monitoring one
// already-lowered property.
package runtime

import "github.com/pslfsm/compiler/ir"

// Interpreter executes one Program, tick by tick.
type Interpreter struct {
	prog *ir.Program
	rep Reporter
	env Env

	regs map[ir.Reg]int64

	live map[int32]bool
	next map[int32]bool

	strongKnown map[int32]bool
	strong map[int32]bool

	haltAt ir.BlockID
}

// NewInterpreter creates an Interpreter for prog, seeding state 0 (the FSM's
// initial state, invariant 1) as live for the first Tick. initialStrong is
// the initial state's own fsm.State.Strong flag — the caller (typically
// compile.Compile's caller, which still holds the *fsm.FSM) supplies it
// directly, since a lowered Program carries per-state strength only on the
// OpEnterState instructions that transition *into* a state, never as static
// data about the seed state itself. rep may be nil to discard all
// reporting.
func NewInterpreter(prog *ir.Program, initialStrong bool, rep Reporter) *Interpreter {
	in := &Interpreter{
 prog: prog,
 rep: rep,
 regs: make(map[ir.Reg]int64),
 live: map[int32]bool{},
 // Seeded into next, not live: Tick's first call swaps next into
 // live, which is the only way state 0 ever becomes live (nothing
 // ever emits OpEnterState targeting the FSM's own initial state
 // except its own repeating re-entry, which only fires once that
 // state's block has already run at least once).
 next: map[int32]bool{0: true},
 strongKnown: map[int32]bool{0: true},
 strong: map[int32]bool{0: initialStrong},
 haltAt: ir.InvalidBlock,
	}
	return in
}

// Live reports the set of state ids live going into the next Tick call.
func (in *Interpreter) Live() []int32 {
	out := make([]int32, 0, len(in.live))
	for id := range in.live {
 out = append(out, id)
	}
	return out
}

// Tick advances the simulation by one invocation: it runs the reset/PREV
// prefix exactly once (env is snapshotted for the whole call, implementing
// the "consistent per-tick snapshot" half of the ordering contract), then
// dispatches every currently live state through CASE. States entered via
// OpEnterState during this tick become live only for the *next* Tick call
// (the "deferred successor-state processing" half).
func (in *Interpreter) Tick(env Env) {
	in.env = env
	in.live, in.next = in.next, map[int32]bool{}

	in.haltAt = ir.CaseBlock
	in.run(ir.ResetBlock)
	in.haltAt = ir.InvalidBlock

	for id := range in.live {
 in.regs[in.prog.StateVar] = int64(id)
 in.run(ir.CaseBlock)
	}
}

// Finish reports a liveness-obligation failure (strong
// "must fail if still live when the simulation ends") for any state pending
// for a tick that will never happen, by directly executing the already
// lowered AbortBlock — its OpReport/OpAssert pair is exactly the failure
// this obligation describes, so Finish need not duplicate it.
func (in *Interpreter) Finish() {
	for id := range in.next {
 strong := in.strong[id]
 if !in.strongKnown[id] {
 continue
 }
 if strong {
 in.run(ir.AbortBlock)
 return
 }
	}
}

func (in *Interpreter) block(id ir.BlockID) *ir.Block {
	return in.prog.Block(id)
}

func (in *Interpreter) truthy(r ir.Reg) bool { return in.regs[r] != 0 }

func boolToInt(b bool) int64 {
	if b {
 return 1
	}
	return 0
}

// run interprets prog starting at from, following control transfers until
// it hits a terminator (OpReturn/OpUnreachable) or reaches in.haltAt,
// whichever comes first.
func (in *Interpreter) run(from ir.BlockID) {
	pc := from
	for {
 if in.haltAt != ir.InvalidBlock && pc == in.haltAt {
 return
 }
 blk := in.block(pc)
 next := ir.InvalidBlock
 terminated := false

 for _, instr := range blk.Instrs {
 switch instr.Op {
 case ir.OpConst:
 in.regs[instr.Dst] = instr.Const
 case ir.OpSignal:
 in.regs[instr.Dst] = in.env.Signal(instr.Name)
 case ir.OpCmp:
 in.regs[instr.Dst] = boolToInt(in.regs[instr.A] == in.regs[instr.B])
 case ir.OpAnd:
 in.regs[instr.Dst] = boolToInt(in.truthy(instr.A) && in.truthy(instr.B))
 case ir.OpOr:
 in.regs[instr.Dst] = boolToInt(in.truthy(instr.A) || in.truthy(instr.B))
 case ir.OpNot:
 in.regs[instr.Dst] = boolToInt(!in.truthy(instr.A))
 case ir.OpAssert:
 if in.rep != nil {
 in.rep.Assert(instr.Severity, instr.Locus, in.truthy(instr.A))
 }
 case ir.OpReport:
 if in.rep != nil {
 in.rep.Report(instr.Severity, instr.Locus, instr.Name)
 }
 case ir.OpCoverStmt:
 if in.rep != nil {
 in.rep.Cover(instr.Name)
 }
 case ir.OpEnterState:
 in.next[instr.StateID] = true
 in.strongKnown[instr.StateID] = true
 in.strong[instr.StateID] = instr.Strong
 case ir.OpAddTrigger, ir.OpOrTrigger, ir.OpFunctionTrigger, ir.OpSchedEvent:
 // Sensitivity bookkeeping only; see the package doc comment.
 case ir.OpVar:
 if _, ok := in.regs[instr.Dst]; !ok {
 in.regs[instr.Dst] = 0
 }
 case ir.OpIndex, ir.OpCopy:
 // No array-valued expression reaches this interpreter: every
 // guard this module lowers is scalar (guard/lower.go).
 case ir.OpLoad:
 in.regs[instr.Dst] = in.regs[instr.A]
 case ir.OpStore:
 in.regs[instr.B] = in.regs[instr.A]
 case ir.OpCase:
 next = instr.Target
 for i, v := range instr.CaseVals {
 if in.regs[instr.A] == v {
 next = instr.CaseDest[i]
 break
 }
 }
 terminated = true
 case ir.OpJump:
 next = instr.Target
 terminated = true
 case ir.OpCond:
 if in.truthy(instr.A) {
 next = instr.Target
 } else {
 next = instr.Else
 }
 terminated = true
 case ir.OpReturn, ir.OpUnreachable:
 return
 case ir.OpComment:
 // No-op.
 }
 if terminated {
 break
 }
 }

 if !terminated {
 panic("runtime: block has no terminating instruction")
 }
 pc = next
	}
}
