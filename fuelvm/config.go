package fuelvm

// Config carries the consensus parameters and debug hooks the dispatcher
// needs, generalized the way the teacher builds `vm.Config`/`ForkRules`:
// a plain struct with a functional-default constructor, rather than a
// pile of package-level variables.
type Config struct {
	// MaxInputs bounds the number of transaction inputs (and therefore the
	// coin-balance table length at Init).
	MaxInputs Word
	// MaxReceipts bounds the receipts log's capacity.
	MaxReceipts Word
	// MaxCallFrames bounds call-stack nesting depth.
	MaxCallFrames int
	// TxOffset is the byte offset of the serialized transaction within
	// VM memory, after the tx id, coin-balance table, and length prefix.
	TxOffset Word
	// ChainID distinguishes transactions signed for different networks.
	ChainID uint64

	// GasPerByte is the gas charged per byte of witness/code data where
	// the opcode's cost is purely length-dependent outside the explicit
	// DependentCost table (spec.md §4.3).
	GasPerByte Word
	// GasPriceFactor scales the tx's gas price into base-asset units for
	// fee computation.
	GasPriceFactor Word

	// Debug enables per-instruction tracing via Tracer; left false in
	// normal execution so the dispatcher pays no formatting cost.
	Debug  bool
	Tracer Tracer
}

// Tracer receives a callback before each instruction executes, mirroring
// the teacher's `vm.Config.Tracer` hook (`CaptureState` in
// `core/vm/interpreter.go`).
type Tracer interface {
	CaptureState(pc Word, op Opcode, gasBefore, gasCost Word, depth int)
}

// NewConfig returns a Config with the spec's default consensus parameters
// (spec.md §4.12, §6) and tracing disabled.
func NewConfig() *Config {
	return &Config{
		MaxInputs:      MaxInputsDefault,
		MaxReceipts:    MaxReceiptsDefault,
		MaxCallFrames:  MaxCallFrames,
		TxOffset:       0,
		ChainID:        0,
		GasPerByte:     1,
		GasPriceFactor: 1,
	}
}
