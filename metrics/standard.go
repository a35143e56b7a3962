package metrics

// Pre-defined metrics for the FuelVM execution engine. All metrics live in
// DefaultRegistry so they are globally accessible without passing a
// registry around. Nothing in the engine updates them: the fuelvm
// Interpreter counts its steps and gas charges in its own per-interpreter
// counters instead.

var (
	// ---- Dispatcher metrics ----

	// InstructionsExecuted counts decoded-and-dispatched instructions across
	// all interpreter runs.
	InstructionsExecuted = DefaultRegistry.Counter("dispatcher.instructions_executed")
	// StepDuration records the wall-clock duration of a single dispatch
	// loop iteration, in microseconds.
	StepDuration = DefaultRegistry.Histogram("dispatcher.step_us")
	// PanicsRaised counts instructions that terminated with a PanicReason.
	PanicsRaised = DefaultRegistry.Counter("dispatcher.panics")

	// ---- Gas metrics ----

	// GasCharged counts total gas deducted from CGAS across all charges.
	GasCharged = DefaultRegistry.Counter("gas.charged")
	// OutOfGasCount counts instructions that failed with OutOfGas.
	OutOfGasCount = DefaultRegistry.Counter("gas.out_of_gas")
	// MemoryPagesAllocated tracks the current number of allocated memory
	// pages for the active interpreter.
	MemoryPagesAllocated = DefaultRegistry.Gauge("gas.memory_pages")

	// ---- Call frame metrics ----

	// CallDepth tracks the current call-frame nesting depth.
	CallDepth = DefaultRegistry.Gauge("frames.depth")
	// CallsEntered counts CALL instructions executed.
	CallsEntered = DefaultRegistry.Counter("frames.calls")
	// CallsReverted counts frames that terminated via RVRT.
	CallsReverted = DefaultRegistry.Counter("frames.reverted")

	// ---- Storage metrics ----

	// StorageReads counts contract-state read operations (SRW/SRWQ).
	StorageReads = DefaultRegistry.Counter("storage.reads")
	// StorageWrites counts contract-state write operations (SWW/SWWQ).
	StorageWrites = DefaultRegistry.Counter("storage.writes")

	// ---- Receipts metrics ----

	// ReceiptsEmitted counts receipts appended across all interpreter runs.
	ReceiptsEmitted = DefaultRegistry.Counter("receipts.emitted")
)
