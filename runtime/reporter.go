// SPDX-License-Identifier: MIT
// Package: pslfsm/runtime
//
// reporter.go — the simulation-time monitoring sink a lowered Program's
// OpReport/OpAssert/OpCoverStmt instructions drive: the overview's
// "simulation-time monitoring" is this interface, exercised once per Tick.
package runtime

import (	"log/slog"
	"os"

	"github.com/joeycumines/logiface"
	islog "github.com/joeycumines/logiface-slog"

	"github.com/pslfsm/compiler/ir"
)

// Reporter receives every report, assertion, and coverage statement a
// Program executes. A nil Reporter passed to NewInterpreter silently
// discards all three — useful for a dry run that only cares about final
// live-state membership.
type Reporter interface {
	Report(severity ir.Severity, locus, message string)
	Assert(severity ir.Severity, locus string, cond bool)
	Cover(tag string)
}

// LogReporter is the bundled Reporter this module's own cmd/pslfsm CLI
// uses: structured logiface output, same backend diag.Sink uses at compile
// time, just keyed by the IR's own pre-rendered string locus instead of a
// psl.Locus — a lowered Program no longer carries psl.Node references
// (ir.Instr.Locus is pre-rendered exactly so runtime need not import psl).
type LogReporter struct {
	logger *logiface.Logger[*islog.Event]
}

var _ Reporter = (*LogReporter)(nil)

// NewLogReporter builds a LogReporter writing structured JSON to handler
// (os.Stderr's JSON handler when nil).
func NewLogReporter(handler slog.Handler) *LogReporter {
	if handler == nil {
 handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	return &LogReporter{logger: logiface.New[*islog.Event](islog.NewLogger(handler))}
}

// Report implements Reporter.
func (r *LogReporter) Report(severity ir.Severity, locus, message string) {
	r.builder(severity).Str("locus", locus).Log(message)
}

// Assert implements Reporter: a failing assertion is always logged at its
// declared severity, regardless of whether that severity is itself
// "Failure" — an ALWAYS property's progress assertion and a NEVER
// property's acceptance assertion both carry SeverityError, for instance.
func (r *LogReporter) Assert(severity ir.Severity, locus string, cond bool) {
	if cond {
 return
	}
	r.builder(severity).Str("locus", locus).Log("assertion failed")
}

// Cover implements Reporter.
func (r *LogReporter) Cover(tag string) {
	r.logger.Info().Str("tag", tag).Log("coverage hit")
}

func (r *LogReporter) builder(severity ir.Severity) *logiface.Builder[*islog.Event] {
	switch severity {
	case ir.SeverityNote:
 return r.logger.Info()
	case ir.SeverityWarning:
 return r.logger.Warning()
	case ir.SeverityFailure:
 return r.logger.Crit()
	default:
 return r.logger.Err()
	}
}
