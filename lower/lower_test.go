// SPDX-License-Identifier: MIT
package lower_test

import (
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pslfsm/compiler/clock"
	"github.com/pslfsm/compiler/cover"
	"github.com/pslfsm/compiler/fsm"
	"github.com/pslfsm/compiler/ir"
	"github.com/pslfsm/compiler/lower"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/psl"
)

func loc(line int) psl.Locus { return psl.Locus{File: "t", Line: line} }

func clockedAssert(value psl.Node) *psl.Stub {
	decl := psl.ClockDecl(psl.Signal("clk", loc(1)), loc(1))
	clocked := psl.Clocked(value, decl, loc(1))
	return &psl.Stub{K: psl.KindAssert, L: loc(1), Val: clocked}
}

// stripClocked mirrors compile.stripClocked (unexported there): fsm.Build
// has no CLOCKED recipe of its own, so every directive handed to it must
// have that form already removed.
func stripClocked(n psl.Node) (psl.Node, error) {
	switch n.Kind() {
	case psl.KindAlways, psl.KindNever, psl.KindAssert, psl.KindAssume, psl.KindRestrict, psl.KindCover:
		s, ok := n.(*psl.Stub)
		if !ok {
			return nil, fmt.Errorf("clock stripping requires a *psl.Stub directive, got %T", n)
		}
		if !n.HasValue() {
			return nil, fmt.Errorf("%s has no inner value", n.Kind())
		}
		inner, err := stripClocked(n.Value())
		if err != nil {
			return nil, err
		}
		cp := *s
		cp.Val = inner
		return &cp, nil
	case psl.KindClocked:
		if !n.HasValue() {
			return nil, fmt.Errorf("CLOCKED node has no inner value")
		}
		return n.Value(), nil
	default:
		return nil, fmt.Errorf("expected a CLOCKED form, found %s", n.Kind())
	}
}

type recordingDiag struct{ errs []string }

func (d *recordingDiag) Errorf(loc psl.Locus, format string, args ...any) {
	d.errs = append(d.errs, loc.String())
}

func TestLower_EmitsReservedBlocksThenOneBlockPerState(t *testing.T) {
	ctrl := gomock.NewController(t)
	top := clockedAssert(psl.Signal("req", loc(1)))
	stripped, err := stripClocked(top)
	require.NoError(t, err)
	f, err := fsm.Build(stripped, numfold.StubFolder{}, nil)
	require.NoError(t, err)

	w, err := clock.Wire(top)
	require.NoError(t, err)
	plan, err := clock.NewPlan(clock.CollectPrevCalls(top), numfold.StubFolder{}, nil)
	require.NoError(t, err)

	hdl := NewMockHDLLowerer(ctrl)
	hdl.EXPECT().LowerRvalue(gomock.Any(), gomock.Any()).Return(ir.Reg(0), true, nil).AnyTimes()

	prog, err := lower.Lower(f, w, plan, hdl, nil, nil, &recordingDiag{}, "p")
	require.NoError(t, err)

	// Reserved blocks: reset, case, abort, prev, then one per FSM state.
	assert.GreaterOrEqual(t, len(prog.Blocks), 4+int(f.NextID()))
	assert.Equal(t, "p", prog.Name)
}

func TestLower_HDLLowererErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	top := clockedAssert(psl.Signal("req", loc(1)))
	stripped, err := stripClocked(top)
	require.NoError(t, err)
	f, err := fsm.Build(stripped, numfold.StubFolder{}, nil)
	require.NoError(t, err)

	w, err := clock.Wire(top)
	require.NoError(t, err)
	plan, err := clock.NewPlan(nil, numfold.StubFolder{}, nil)
	require.NoError(t, err)

	hdl := NewMockHDLLowerer(ctrl)
	hdl.EXPECT().LowerRvalue(gomock.Any(), gomock.Any()).
		Return(ir.InvalidReg, false, assertErr{}).AnyTimes()

	_, err = lower.Lower(f, w, plan, hdl, nil, nil, &recordingDiag{}, "p")
	require.Error(t, err)
}

type assertErr struct{}

func (assertErr) Error() string { return "lowerer: boom" }

func TestLower_CoverDirectiveStampsDatabaseItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	seq := psl.SERE(false, loc(1), psl.Signal("req", loc(1)), psl.Signal("ack", loc(1)))
	decl := psl.ClockDecl(psl.Signal("clk", loc(1)), loc(1))
	top := &psl.Stub{K: psl.KindCover, L: loc(1), Val: psl.Clocked(seq, decl, loc(1))}

	stripped, err := stripClocked(top)
	require.NoError(t, err)
	f, err := fsm.Build(stripped, numfold.StubFolder{}, nil)
	require.NoError(t, err)
	w, err := clock.Wire(top)
	require.NoError(t, err)
	plan, err := clock.NewPlan(nil, numfold.StubFolder{}, nil)
	require.NoError(t, err)

	hdl := NewMockHDLLowerer(ctrl)
	hdl.EXPECT().LowerRvalue(gomock.Any(), gomock.Any()).Return(ir.Reg(0), true, nil).AnyTimes()

	covDB := cover.New(true)
	prog, err := lower.Lower(f, w, plan, hdl, covDB, nil, &recordingDiag{}, "p")
	require.NoError(t, err)
	assert.NotNil(t, prog)

	scopes := covDB.Scopes()
	require.Len(t, scopes, 1)
}
