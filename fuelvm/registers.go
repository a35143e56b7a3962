package fuelvm

import "fmt"

// System register indices, per the canonical FuelVM register table. Indices
// 0-15 are reserved; writes to them from user instructions fail with
// ReservedRegisterNotWritable.
const (
	RegZero = 0  // always 0
	RegOne  = 1  // always 1
	RegOF   = 2  // overflow indicator
	RegPC   = 3  // program counter, aligned to 4 bytes
	RegIS   = 4  // instruction-start address of the current frame
	RegSSP  = 5  // stack-start pointer
	RegSP   = 6  // stack pointer
	RegFP   = 7  // frame pointer
	RegHP   = 8  // heap pointer
	RegERR  = 9  // error flag
	RegGGAS = 10 // global gas remaining
	RegCGAS = 11 // context gas remaining
	RegBAL  = 12 // forwarded coin amount for the current call
	RegRET  = 13 // last return value
	RegRETL = 14 // last return-data length
	RegFLAG = 15 // flag bits
)

// Flag bit positions within RegFLAG.
const (
	FlagUnsafeMath = 1 << 0
	FlagWrapping   = 1 << 1
)

// RegisterFile holds the VM's 64 machine words.
type RegisterFile [VMRegisterCount]Word

// NewRegisterFile returns a zeroed register file with ONE and HP seeded,
// per initialization step 1 (ZERO is already 0 by default).
func NewRegisterFile(maxRAM Word) RegisterFile {
	var r RegisterFile
	r[RegOne] = 1
	r[RegHP] = maxRAM
	return r
}

// IsSystem reports whether idx addresses a reserved system register.
func IsSystem(idx uint8) bool {
	return int(idx) < VMRegisterSystemCount
}

// IsUser reports whether idx addresses a freely user-writable register.
func IsUser(idx uint8) bool {
	return !IsSystem(idx)
}

// SystemRegisters is a struct of typed pointers into a RegisterFile's
// reserved indices, letting the dispatcher borrow exactly the system
// registers an instruction needs without indexing by raw integer
// everywhere. Obtained via RegisterFile.Split, mirroring the "split"
// operation design note: one call yields non-aliasing access to the system
// registers and the user register slice simultaneously.
type SystemRegisters struct {
	Zero *Word
	One  *Word
	OF   *Word
	PC   *Word
	IS   *Word
	SSP  *Word
	SP   *Word
	FP   *Word
	HP   *Word
	ERR  *Word
	GGAS *Word
	CGAS *Word
	BAL  *Word
	RET  *Word
	RETL *Word
	FLAG *Word
}

// Split returns typed read/write handles to the system registers and a
// slice over the 48 user-writable registers (index 16..63), taken from the
// same backing array in a single operation.
func (r *RegisterFile) Split() (*SystemRegisters, []Word) {
	sys := &SystemRegisters{
		Zero: &r[RegZero],
		One:  &r[RegOne],
		OF:   &r[RegOF],
		PC:   &r[RegPC],
		IS:   &r[RegIS],
		SSP:  &r[RegSSP],
		SP:   &r[RegSP],
		FP:   &r[RegFP],
		HP:   &r[RegHP],
		ERR:  &r[RegERR],
		GGAS: &r[RegGGAS],
		CGAS: &r[RegCGAS],
		BAL:  &r[RegBAL],
		RET:  &r[RegRET],
		RETL: &r[RegRETL],
		FLAG: &r[RegFLAG],
	}
	return sys, r[VMRegisterSystemCount:]
}

// Get reads register idx.
func (r *RegisterFile) Get(idx uint8) Word {
	return r[idx]
}

// SetUser writes value into a user register. Callers must have already
// rejected system-register indices; SetUser panics (a Go panic, not a
// PanicReason) if idx addresses a reserved register, since that check is
// the dispatcher's responsibility per ReservedRegisterNotWritable.
func (r *RegisterFile) SetUser(idx uint8, value Word) {
	if IsSystem(idx) {
		panic(fmt.Sprintf("fuelvm: SetUser called with reserved register index %d", idx))
	}
	r[idx] = value
}

// IsExternal reports whether FP == 0, i.e. there is no active call frame.
func (s *SystemRegisters) IsExternal() bool {
	return *s.FP == 0
}

// Unsafe reports whether the unsafe-math flag bit is set.
func (s *SystemRegisters) Unsafe() bool {
	return *s.FLAG&FlagUnsafeMath != 0
}

// Wrapping reports whether the wrapping flag bit is set.
func (s *SystemRegisters) Wrapping() bool {
	return *s.FLAG&FlagWrapping != 0
}
