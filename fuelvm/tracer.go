package fuelvm

import (
	"fmt"
	"strings"
)

// StepLog is a single step recorded by StepTracer: exactly the data the
// dispatcher's Tracer.CaptureState hook exposes. Unlike the teacher's
// EVMLogger, there is no operand stack or growable memory tape to snapshot
// here -- register and memory state live in the VM's own addressable
// memory, readable through the Interpreter directly if a caller needs more
// than the step trace.
type StepLog struct {
	PC        Word
	Op        Opcode
	GasBefore Word
	GasCost   Word
	Depth     int
}

// StepTracer collects step-by-step execution logs, implementing Tracer.
// It is the generalization of core/vm/tracer.go's StructLogTracer to
// spec.md's simpler per-step signature.
type StepTracer struct {
	Logs []StepLog
}

// NewStepTracer returns an empty StepTracer.
func NewStepTracer() *StepTracer {
	return &StepTracer{}
}

// CaptureState records one instruction step.
func (t *StepTracer) CaptureState(pc Word, op Opcode, gasBefore, gasCost Word, depth int) {
	t.Logs = append(t.Logs, StepLog{PC: pc, Op: op, GasBefore: gasBefore, GasCost: gasCost, Depth: depth})
}

// Reset clears the collected logs so the tracer can be reused across runs,
// mirroring StructuredLogger.Reset in core/vm/structured_logger.go.
func (t *StepTracer) Reset() {
	t.Logs = t.Logs[:0]
}

// FormatLogs renders logs as human-readable text, one line per step, the
// generalization of core/vm/structured_logger.go's FormatLogs.
func FormatLogs(logs []StepLog) string {
	var b strings.Builder
	for i, log := range logs {
		fmt.Fprintf(&b, "pc=%-6d %-6s gas=%-10d cost=%-6d depth=%d", log.PC, log.Op, log.GasBefore, log.GasCost, log.Depth)
		if i < len(logs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
