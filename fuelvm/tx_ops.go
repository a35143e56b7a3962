package fuelvm

// GM metadata selectors (Imm18), the subset spec.md's transaction-
// reflection family actually needs: whether the caller is external, the
// verifying predicate's input index, and the chain id the tx was signed
// against.
const (
	GMIsCallerExternal Word = 0
	GMGetVerifyingPredicate Word = 1
	GMGetChainID Word = 2
)

// execTx handles GM and GTF, the transaction-reflection opcodes. GM reads
// VM-level metadata selected by its Imm18 into RA; GTF reads a field out of
// the serialized transaction, selected by Imm12, into RA: scalar fields,
// lengths and counts as values, the *Start selectors as addresses inside
// the transaction's memory region. RB is not read.
func (vm *Interpreter) execTx(in Instruction) *VMError {
	sys, _ := vm.sys()
	switch in.Op {
	case OpGM:
		return vm.execGm(sys, in)
	case OpGTF:
		return vm.execGtf(sys, in)
	default:
		return NewVMError(PanicInvalidImmediateValue, *sys.PC, *sys.IS)
	}
}

func (vm *Interpreter) execGm(sys *SystemRegisters, in Instruction) *VMError {
	if IsSystem(in.RA) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	var result Word
	switch Word(in.Imm) {
	case GMIsCallerExternal:
		if vm.callerIsExternal() {
			result = 1
		}
	case GMGetVerifyingPredicate:
		if vm.Context.Kind != ContextPredicate {
			return NewVMError(PanicExpectedInternalContext, *sys.PC, *sys.IS)
		}
		result = vm.Context.InputIndex
	case GMGetChainID:
		result = Word(vm.Config.ChainID)
	default:
		return NewVMError(PanicInvalidMetadataIdentifier, *sys.PC, *sys.IS)
	}
	ALU{}.Set(sys, &vm.Registers[in.RA], result)
	return nil
}

// callerIsExternal reports whether the caller of the current context is
// external: always in external context, and in internal context when FP
// is below one frame's size or at most one call frame is on the stack.
func (vm *Interpreter) callerIsExternal() bool {
	sys, _ := vm.sys()
	if sys.IsExternal() {
		return true
	}
	if *sys.FP < CallFrameSerializedSize {
		return true
	}
	return vm.Frames.Depth() <= 1
}

// execGtf writes the transaction field selected by Imm12 (see gtfField)
// into register RA; no selector is indexed, so RB is not read.
// Unrecognized selectors fail InvalidMetadataIdentifier rather than
// silently returning zero.
func (vm *Interpreter) execGtf(sys *SystemRegisters, in Instruction) *VMError {
	if IsSystem(in.RA) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	if vm.tx == nil {
		return NewVMError(PanicTransactionValidity, *sys.PC, *sys.IS)
	}
	value, ok := vm.gtfField(Word(in.Imm))
	if !ok {
		return NewVMError(PanicInvalidMetadataIdentifier, *sys.PC, *sys.IS)
	}
	ALU{}.Set(sys, &vm.Registers[in.RA], value)
	return nil
}
