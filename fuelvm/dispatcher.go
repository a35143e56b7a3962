package fuelvm

// flatGas maps an opcode to its constant charge. Opcodes whose cost is
// purely a DependentCost (MCL/MCLI/MCP/MCPI/LDC/LOGD/SCWQ/SRWQ/SWWQ/SMO/CCP)
// are charged by their own handler instead and are left at zero here.
var flatGas = [opcodeCount]Word{
	OpNOOP: GasNoop,

	OpADD: GasAdd, OpADDI: GasAdd,
	OpSUB: GasSub, OpSUBI: GasSub,
	OpMUL: GasMul, OpMULI: GasMul,
	OpDIV: GasDiv, OpDIVI: GasDiv,
	OpMOD: GasMod, OpMODI: GasMod,
	OpEXP: GasExp, OpEXPI: GasExp,
	OpMLOG: GasMlog,
	OpMROO: GasMroo,
	OpSLL:  GasSll, OpSLLI: GasSll,
	OpSRL: GasSrl, OpSRLI: GasSrl,
	OpAND: GasAnd, OpANDI: GasAnd,
	OpOR: GasOr, OpORI: GasOr,
	OpXOR: GasXor, OpXORI: GasXor,
	OpNOT:  GasNot,
	OpEQ:   GasEq,
	OpLT:   GasLt,
	OpGT:   GasGt,
	OpMOVE: GasMove, OpMOVI: GasMove,

	OpWDCM: GasWdcm, OpWQCM: GasWqcm,
	OpWDOP: GasWdop, OpWQOP: GasWqop,
	OpWDML: GasWdml, OpWQML: GasWqml,
	OpWDDV: GasWddv, OpWQDV: GasWqdv,
	OpWDMD: GasWdmd, OpWQMD: GasWqmd,
	OpWDAM: GasWdam, OpWQAM: GasWqam,
	OpWDMM: GasWdmm, OpWQMM: GasWqmm,

	OpJI: GasJi, OpJNEI: GasJnei, OpJNZI: GasJnzi, OpJMP: GasJmp,
	OpJNE: GasJne, OpJNEF: GasJne, OpJNEB: GasJne,
	OpJMPF: GasJmp, OpJMPB: GasJmp, OpJNZF: GasJnzi, OpJNZB: GasJnzi,

	OpALOC: GasAloc, OpCFEI: GasCfei, OpCFE: GasCfei,
	OpCFSI: GasCfsi, OpCFS: GasCfsi,
	OpMEQ: GasMeq,
	OpLB:  GasLb, OpLW: GasLw,
	OpSB: GasSb, OpSW: GasSw,
	OpPSHL: GasMove, OpPSHH: GasMove, OpPOPL: GasMove, OpPOPH: GasMove,

	OpRET: GasRet, OpRETD: GasRetd, OpRVRT: GasRvrt,

	OpECK1: GasEck1, OpECR1: GasEcr1, OpED19: GasEd19,
	OpK256: GasK256, OpS256: GasS256,
	OpECOP: GasEcop, OpEPAR: GasEpar,

	OpBAL: GasBal, OpBHEI: GasBhei, OpBHSH: GasBhsh,
	OpBURN: GasBurn, OpMINT: GasMint,
	OpCALL: GasCall, OpCB: GasCb,
	OpCROO: GasCroo, OpCSIZ: GasCsiz,
	OpTIME: GasTime, OpTR: GasTr, OpTRO: GasTro,

	OpSRW: GasSrw, OpSWW: GasSww,

	OpGM: GasGm, OpGTF: GasGtf,

	OpFLAG: GasFlag,

	OpLOG: GasLog,

	OpECAL: GasEcal,
}

// isDependentCost reports whether op's cost is purely dependent-cost --
// mirroring the per-opcode
// cost table layout spec.md §4.3 describes (a fixed base plus a per-unit
// multiplier against an explicit length operand). Handlers for these
// opcodes call vm.Gas.ChargeDependent themselves instead of relying on
// flatGas.
func isDependentCost(op Opcode) bool {
	switch op {
	case OpMCL, OpMCLI, OpMCP, OpMCPI, OpLDC, OpLOGD, OpSCWQ, OpSRWQ, OpSWWQ, OpSMO, OpCCP:
		return true
	default:
		return false
	}
}

// Run drives the interpreter to completion, returning the terminal
// ProgramState. It mirrors the teacher's EVM.Run loop (core/vm/interpreter.go):
// fetch, decode, charge gas, execute, advance pc -- generalized from EVM's
// stack machine to FuelVM's fixed-width register instructions, and from a
// single halt condition to the three-way Panic/Revert/Return split spec.md
// §7 describes. It never returns an error: a VMBug is an internal
// invariant violation and is translated into a Go panic, since it
// represents a defect in the dispatcher itself rather than a condition the
// caller can act on.
func (vm *Interpreter) Run() ProgramState {
	for !vm.halted {
		if bug := vm.step(); bug != nil {
			panic(bug.Error())
		}
	}
	return vm.finalState
}

// step fetches and executes exactly one instruction. It returns a non-nil
// *VMBug only for internal invariant violations; user-attributable faults
// are absorbed into a Panic receipt via panicOut and simply halt the loop.
func (vm *Interpreter) step() *VMBug {
	sys, _ := vm.sys()
	pc := *sys.PC

	ownership := vm.ownership(vm.Memory.Len())
	if !readableRange(pc, InstructionSize, ownership, vm.Memory.Len()) {
		vm.panicOut(NewVMError(PanicMemoryOverflow, pc, *sys.IS))
		return nil
	}
	raw, rerr := vm.Memory.Read(pc, InstructionSize, ownership)
	if rerr != nil {
		vm.panicOut(rerr)
		return nil
	}
	word := getWord32BE(raw)

	inst, derr := Decode(word, pc, *sys.IS)
	if derr != nil {
		vm.panicOut(derr)
		return nil
	}

	vm.steps.Inc()
	if vm.Config.Debug && vm.Config.Tracer != nil {
		vm.Config.Tracer.CaptureState(pc, inst.Op, *sys.CGAS, flatGas[inst.Op], vm.Frames.Depth())
	}

	if perr := vm.checkPredicateConstraints(inst, pc); perr != nil {
		vm.panicOut(perr)
		return nil
	}

	if !isDependentCost(inst.Op) {
		vm.charges.Inc()
		if gerr := vm.Gas.ChargeFlat(sys, flatGas[inst.Op]); gerr != nil {
			vm.panicOut(gerr)
			return nil
		}
	}

	pcBefore := *sys.PC
	if verr := vm.execute(inst); verr != nil {
		vm.panicOut(verr)
		return nil
	}
	if vm.halted {
		return nil
	}
	if *sys.PC == pcBefore {
		*sys.PC += InstructionSize
	}
	return nil
}

func getWord32BE(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// execute dispatches a decoded instruction to its family handler. Each
// handler is responsible for its own register-reservation checks
// (ReservedRegisterNotWritable), its own dependent-gas charge if
// applicable, and advancing PC itself for control-flow opcodes (the
// dispatcher only auto-advances when PC is left unchanged).
func (vm *Interpreter) execute(in Instruction) *VMError {
	switch {
	case in.Op == OpNOOP:
		return nil
	case in.Op <= OpMOVI:
		return vm.execALU(in)
	case in.Op <= OpWQMM:
		return vm.execWideALU(in)
	case in.Op <= OpJNZB:
		return vm.execControl(in)
	case in.Op <= OpPOPH:
		return vm.execStack(in)
	case in.Op == OpRET || in.Op == OpRETD || in.Op == OpRVRT:
		return vm.execReturn(in)
	case in.Op <= OpEPAR:
		return vm.execCrypto(in)
	case in.Op == OpCALL:
		return vm.execCall(in)
	case in.Op <= OpTRO:
		return vm.execContract(in)
	case in.Op <= OpSCWQ:
		return vm.execStorage(in)
	case in.Op == OpGM || in.Op == OpGTF:
		return vm.execTx(in)
	case in.Op == OpSMO:
		return vm.execMessage(in)
	case in.Op == OpFLAG:
		return vm.execFlag(in)
	case in.Op == OpLOG || in.Op == OpLOGD:
		return vm.execLog(in)
	case in.Op == OpBSIZ || in.Op == OpBLDD:
		return vm.execBlob(in)
	case in.Op == OpECAL:
		return vm.execEcal(in)
	default:
		return NewVMError(PanicInvalidImmediateValue, 0, 0)
	}
}
