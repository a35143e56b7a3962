// Package fuelvm implements the FuelVM execution engine: a register-based
// interpreter for transaction scripts and contract bytecode running over a
// UTXO-oriented chain state. The engine is organized as a single flat
// package because its sub-concerns are mutually recursive -- the memory
// model needs the gas meter for page charges, the gas meter needs memory's
// page count, and the dispatcher needs both plus the register file, the ALU,
// and the call-frame stack.
package fuelvm

import "github.com/fuellabs/fuelvm/fueltypes"

// Word is the VM's native 64-bit machine word.
type Word = fueltypes.Word

const (
	// WordSize is the width of a Word in bytes.
	WordSize = 8

	// VMMaxRAM is the default total addressable memory, in bytes. A fixed
	// power of two; consensus parameters may lower it but never raise it
	// past this ceiling.
	VMMaxRAM Word = 1 << 20 // 1 MiB

	// MemPageSize is the allocation granularity for stack/heap growth.
	MemPageSize Word = 4096

	// MemMaxAccessSize bounds any single read/write/copy span.
	MemMaxAccessSize Word = VMMaxRAM

	// VMRegisterCount is the total number of registers, system + user.
	VMRegisterCount = 64

	// VMRegisterSystemCount is the number of reserved system registers
	// (indices 0 through 15).
	VMRegisterSystemCount = 16

	// MaxCallFrames bounds call-stack nesting depth.
	MaxCallFrames = 1024

	// MaxInputsDefault is the default consensus limit on transaction inputs.
	MaxInputsDefault = 255

	// MaxReceiptsDefault is the default consensus limit on receipts per
	// execution; it always reserves room for the closing ScriptResult.
	MaxReceiptsDefault = 65536

	// CallFrameSerializedSize is the byte size of a serialized CallFrame:
	// ContractId(32) | AssetId(32) | Registers(64*8) | CodeSize(8) | ArgA(8) | ArgB(8).
	CallFrameSerializedSize = fueltypes.ContractIDLen + fueltypes.AssetIDLen +
		VMRegisterCount*WordSize + WordSize + WordSize + WordSize

	// InstructionSize is the width of one encoded instruction, in bytes.
	InstructionSize = 4
)

// EmptyReceiptsMerkleRoot is the Merkle root of zero receipts: the SHA-256
// digest of the empty string, matching the upstream convention of rooting
// an empty accumulator at the hash of nothing.
var EmptyReceiptsMerkleRoot = fueltypes.HexToBytes32(
	"0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
)
