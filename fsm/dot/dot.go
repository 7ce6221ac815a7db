// SPDX-License-Identifier: MIT
// Package: pslfsm/fsm/dot
//
// dot.go — the FSM visualiser (design component C6): emits a
// DOT description of an fsm.FSM and, optionally, invokes an external
// renderer ("dot -Tsvg -O <file>") to produce an SVG. Neither
// function touches the FSM; this package is read-only, mirroring C6's
// "emit a DOT description; invoke an external renderer" split.
//
// ErrRenderFailed follows this codebase's usual sentinel-error policy:
// a package-level error value callers can match with errors.Is, wrapping
// whatever the external renderer reported.
package dot

import (	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/pslfsm/compiler/fsm"
	"github.com/pslfsm/compiler/guard"
)

// ErrRenderFailed wraps a failure to spawn the external renderer. Per
// A rendering failure is fatal to the visualiser but never to the compiler:
// callers should log it and continue, not abort compilation.
var ErrRenderFailed = errors.New("dot: failed to invoke external renderer")

// Write emits f as a DOT graph description to w. Each state is one line
// (double peripheries when Accept); each edge is one line, dashed when its
// Kind is Epsilon, labelled with the guard re-printed via p (a nil p falls
// back to guard.Print's own default rendering).
func Write(w io.Writer, f *fsm.FSM, p guard.ExprPrinter) error {
	if _, err := fmt.Fprintf(w, "digraph %s {\n", f.Kind); err != nil {
 return err
	}
	if _, err := fmt.Fprintln(w, "\trankdir=LR;"); err != nil {
 return err
	}

	for _, s := range f.States() {
 shape := "circle"
 peripheries := 1
 if s.Accept {
 peripheries = 2
 }
 label := fmt.Sprintf("s%d", s.ID)
 if s.Strong {
 label += "!"
 }
 if _, err := fmt.Fprintf(w, "\tn%d [shape=%s, peripheries=%d, label=\"%s\"];\n",
 s.ID, shape, peripheries, guard.EscapeDOT(label)); err != nil {
 return err
 }
 if s.Initial {
 if _, err := fmt.Fprintf(w, "\tn%d [style=filled, fillcolor=lightgray];\n", s.ID); err != nil {
 return err
 }
 }
	}

	for _, s := range f.States() {
 for _, e := range s.Edges {
 style := "solid"
 if e.Kind == fsm.Epsilon {
 style = "dashed"
 }
 label := guard.Print(e.Guard, p)
 if _, err := fmt.Fprintf(w, "\tn%d -> n%d [style=%s, label=\"%s\"];\n",
 s.ID, e.Dest, style, guard.EscapeDOT(label)); err != nil {
 return err
 }
 }
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

// Render invokes the external graph renderer on file: "dot -Tsvg -O <file>"
// with no further arguments. A failure to spawn the process, or a non-zero
// exit from it, is wrapped in ErrRenderFailed; stdout/stderr from dot(1)
// are not captured, matching
// fork-and-wait semantics.
func Render(file string) error {
	cmd := exec.Command("dot", "-Tsvg", "-O", file)
	if err := cmd.Run(); err != nil {
 return fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return nil
}
