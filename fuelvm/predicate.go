package fuelvm

// predicateDisallowed reports whether op is off-limits to a predicate per
// spec.md §4.10's sandbox restrictions. CALL, LOG, LOGD, TR and TRO have
// no other gate that stops a predicate. SMO is listed too, although it
// already panics ExpectedInternalContext for any external caller, as do
// MINT/BURN and the storage family (a predicate is always external, having
// no CALL of its own to reach internal context).
func predicateDisallowed(op Opcode) bool {
	switch op {
	case OpCALL, OpLOG, OpLOGD, OpSMO, OpTR, OpTRO:
		return true
	default:
		return false
	}
}

// checkPredicateConstraints enforces spec.md §4.10's two structural
// restrictions that the ordinary opcode handlers have no way to see on
// their own: the disallowed-opcode list, and confinement of the program
// counter to the predicate's slice of the transaction image. It is called
// once per step, before the instruction is charged or executed.
func (vm *Interpreter) checkPredicateConstraints(in Instruction, pc Word) *VMError {
	if vm.Context.Kind != ContextPredicate {
		return nil
	}
	sys, _ := vm.sys()
	start := vm.Context.PredicateProgramStart
	end := start + vm.Context.PredicateProgramLength
	if pc < start || pc+InstructionSize > end {
		return NewVMError(PanicMemoryAccess, pc, *sys.IS)
	}
	if predicateDisallowed(in.Op) {
		return NewVMError(PanicContractInstructionNotAllowed, pc, *sys.IS)
	}
	return nil
}

// VerifyPredicate runs a predicate to completion and reports whether it
// proved ownership of its input. Per spec.md §4.10, the sole passing
// outcome is `RET 1`; any other halt -- RETD, RVRT, a non-1 RET, or a
// Panic -- fails verification. gasUsed is checked against the caller-
// declared predicate-gas-used field: undershooting it is itself a failure
// (GasMismatch), since a predicate's declared cost must match exactly.
func (vm *Interpreter) VerifyPredicate(declaredGasUsed Word) (bool, PanicReason) {
	if vm.Context.Kind != ContextPredicate {
		return false, PanicExpectedInternalContext
	}
	gasBefore := vm.Registers.Get(RegCGAS)
	state := vm.Run()

	if state.Kind != StateReturn || state.Value != 1 {
		if len(vm.Receipts.All()) > 0 {
			last := vm.Receipts.All()[len(vm.Receipts.All())-1]
			if last.Kind == ReceiptPanic {
				return false, last.Reason
			}
		}
		if state.Kind == StateReturn {
			return false, PanicPredicateReturnedNonOne
		}
		return false, PanicPredicateFailure
	}

	gasUsed := gasBefore - vm.Registers.Get(RegCGAS)
	if gasUsed != declaredGasUsed {
		return false, PanicGasMismatch
	}
	return true, PanicSuccess
}
