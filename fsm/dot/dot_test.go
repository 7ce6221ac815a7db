// SPDX-License-Identifier: MIT
package dot_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pslfsm/compiler/fsm"
	"github.com/pslfsm/compiler/fsm/dot"
	"github.com/pslfsm/compiler/guard"
	"github.com/pslfsm/compiler/numfold"
	"github.com/pslfsm/compiler/psl"
)

func loc(line int) psl.Locus { return psl.Locus{File: "t", Line: line} }

func assertDirective(value psl.Node) *psl.Stub {
	return &psl.Stub{K: psl.KindAssert, L: loc(0), Val: value}
}

func TestWrite_EmitsDigraphWithStatesAndEdges(t *testing.T) {
	top := assertDirective(psl.Signal("req", loc(1)))
	f, err := fsm.Build(top, numfold.StubFolder{}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dot.Write(&buf, f, nil))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "digraph "))
	assert.Contains(t, out, "n0")
	assert.Contains(t, out, "n1")
	assert.Contains(t, out, "peripheries=2") // accept state
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
}

func TestWrite_EpsilonEdgeIsDashed(t *testing.T) {
	f := fsm.NewFSM(fsm.Bare, nil)
	s0 := f.AddState(nil)
	s1 := f.AddState(nil)
	s0.Initial = true
	fsm.AddEdge(f, s0.ID, s1.ID, fsm.Epsilon, nil)

	var buf bytes.Buffer
	require.NoError(t, dot.Write(&buf, f, nil))
	assert.Contains(t, buf.String(), "style=dashed")
}

func TestWrite_UsesExprPrinterForEdgeLabel(t *testing.T) {
	f := fsm.NewFSM(fsm.Bare, nil)
	s0 := f.AddState(nil)
	s1 := f.AddState(nil)
	s0.Initial = true
	g := guard.FromExpr(psl.Signal("req", loc(1)))
	fsm.AddEdge(f, s0.ID, s1.ID, fsm.Next, g)

	var buf bytes.Buffer
	require.NoError(t, dot.Write(&buf, f, fixedPrinter{s: "custom"}))
	assert.Contains(t, buf.String(), `label="custom"`)
}

type fixedPrinter struct{ s string }

func (p fixedPrinter) PrintExpr(psl.Node) string { return p.s }

func TestRender_FailsForNonexistentInputFile(t *testing.T) {
	err := dot.Render("/nonexistent/path/does-not-exist.dot")
	require.Error(t, err)
	assert.ErrorIs(t, err, dot.ErrRenderFailed)
}
