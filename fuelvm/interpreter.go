package fuelvm

import (
	"github.com/fuellabs/fuelvm/fueltypes"
	"github.com/fuellabs/fuelvm/log"
	"github.com/fuellabs/fuelvm/metrics"
)

// ContextKind tags which of the three execution contexts spec.md §3
// describes is currently running.
type ContextKind uint8

const (
	// ContextScript is the outermost context: a transaction's script,
	// executing with FP == 0.
	ContextScript ContextKind = iota
	// ContextPredicate is input-predicate verification: a read-only
	// sandbox over a single transaction input.
	ContextPredicate
	// ContextCall is a nested contract call, pushed by CALL and popped on
	// RET/RETD/RVRT.
	ContextCall
)

// Context carries the data specific to the current execution context, on
// top of the registers/memory shared by all three (spec.md §3).
type Context struct {
	Kind ContextKind

	// BlockHeight is set for Script and Call contexts.
	BlockHeight uint32

	// PredicateProgramStart/PredicateProgramLength bound the predicate
	// bytecode's range within the transaction, and InputIndex identifies
	// which input it verifies. Set only for ContextPredicate.
	PredicateProgramStart  Word
	PredicateProgramLength Word
	InputIndex             Word
}

// IsInternal reports whether FP != 0, i.e. execution is nested inside a
// contract call.
func (c *Context) IsInternal(sys *SystemRegisters) bool {
	return !sys.IsExternal()
}

// ProgramState is the outcome of running an interpreter to completion, per
// spec.md §6's Output section. Exactly one of the constructors below
// produces any given State.
type ProgramState struct {
	Kind      ProgramStateKind
	Value     Word
	DataRange [2]Word // [offset, length) for ReturnData
}

// ProgramStateKind distinguishes terminal outcomes from the single-step
// debug outcomes used by RunProgram/VerifyPredicate in step mode.
type ProgramStateKind uint8

const (
	StateReturn ProgramStateKind = iota
	StateReturnData
	StateRevert
	StateRunProgram
	StateVerifyPredicate
)

// Interpreter holds every piece of mutable state a running VM needs:
// registers, memory, storage, receipts, the call-frame nesting counter,
// runtime balances, the gas meter, and the static Config plus the current
// Context. It is the register-VM analogue of the teacher's EVM struct,
// generalized from a single implicit call stack to FuelVM's
// serialized-in-memory call frames.
type Interpreter struct {
	Registers RegisterFile
	Memory    *Memory
	Storage   Storage
	Receipts  *Receipts
	Frames    CallFrameStack
	Balances  *RuntimeBalances
	Gas       GasMeter
	Config    *Config
	Context   Context

	// InputContracts lists the ContractIds the initializing transaction
	// declares as inputs. CALL and TR may only target a contract in this
	// list (spec.md §4.8 step 1); it is the Go analogue of fuel-vm's
	// Transaction::input_contracts().
	InputContracts []fueltypes.ContractId

	tx []byte

	log        *log.Logger
	steps      *metrics.Counter
	charges    *metrics.Counter
	halted     bool
	finalState ProgramState
}

// NewInterpreter builds an Interpreter over a freshly allocated memory
// region and the supplied storage and config. Callers still need to run
// initialization.go's Init to lay the transaction out in memory before
// stepping.
func NewInterpreter(cfg *Config, storage Storage, maxRAM Word) *Interpreter {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Interpreter{
		Registers: NewRegisterFile(maxRAM),
		Memory:    NewMemory(maxRAM),
		Storage:   storage,
		Receipts:  NewReceipts(cfg.MaxReceipts),
		Config:    cfg,
		log:       log.Default().Module("vm"),
		steps:     metrics.NewCounter("fuelvm_steps_total"),
		charges:   metrics.NewCounter("fuelvm_gas_charges_total"),
	}
}

// sys returns typed handles to the system registers and the user register
// slice, taken fresh each call so callers never hold a stale split across a
// frame push/pop.
func (vm *Interpreter) sys() (*SystemRegisters, []Word) {
	return vm.Registers.Split()
}

// ownership snapshots the registers that define the current context's
// readable/writable memory regions.
func (vm *Interpreter) ownership(prevHP Word) OwnershipRegisters {
	sys, _ := vm.sys()
	return OwnershipRegisters{
		SP:       *sys.SP,
		SSP:      *sys.SSP,
		HP:       *sys.HP,
		PrevHP:   prevHP,
		External: sys.IsExternal(),
	}
}

// Halted reports whether the interpreter has reached a terminal state
// (RET/RETD/RVRT at the outermost frame, or a Panic).
func (vm *Interpreter) Halted() bool { return vm.halted }

// halt marks the interpreter as finished; used by the dispatcher once a
// RET/RETD/RVRT/Panic unwinds the outermost frame.
func (vm *Interpreter) halt() { vm.halted = true }

// panicOut records a Panic receipt for err and halts execution. It never
// returns a *VMError to the caller: a Panic is, per spec.md §7, a terminal
// outcome the dispatcher absorbs rather than propagates.
func (vm *Interpreter) panicOut(err *VMError) {
	sys, _ := vm.sys()
	vm.log.Warn("panic", "reason", err.Reason.String(), "pc", *sys.PC)
	_ = vm.Receipts.Push(Receipt{
		Kind:   ReceiptPanic,
		ID:     vm.currentContractID(),
		PC:     *sys.PC,
		IS:     *sys.IS,
		Reason: err.Reason,
	})
	vm.finalState = ProgramState{Kind: StateRevert, Value: Word(err.Reason)}
	vm.halt()
}

// isInputContract reports whether id was declared as a contract input of
// the initializing transaction, the membership check CALL and TR gate on
// before touching a contract they were not authorized to reach.
func (vm *Interpreter) isInputContract(id fueltypes.ContractId) bool {
	for _, c := range vm.InputContracts {
		if c == id {
			return true
		}
	}
	return false
}

// currentContractID returns the ContractId of the currently executing
// frame, or the zero id when running in an external (script) context.
func (vm *Interpreter) currentContractID() fueltypes.ContractId {
	sys, _ := vm.sys()
	if sys.IsExternal() {
		return fueltypes.ContractId{}
	}
	ownership := vm.ownership(*sys.HP)
	raw, err := vm.Memory.Read(*sys.FP, CallFrameSerializedSize, ownership)
	if err != nil {
		return fueltypes.ContractId{}
	}
	return DecodeCallFrame(raw).To
}
