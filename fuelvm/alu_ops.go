package fuelvm

// execALU handles the scalar arithmetic/logic family: three-register forms
// read RB/RC, immediate forms read RB and an Imm12 (or just Imm18 for
// MOVI), and every variant writes RA through one of the ALU's four shared
// primitives (alu.go) so overflow/error-flag semantics stay uniform across
// all thirty opcodes.
func (vm *Interpreter) execALU(in Instruction) *VMError {
	sys, _ := vm.sys()
	if IsSystem(in.RA) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	dest := &vm.Registers[in.RA]

	var b, c Word
	if in.Form == FormReg2Imm12 {
		b = vm.Registers.Get(in.RB)
		c = Word(in.Imm)
	} else if in.Form == FormReg1Imm18 {
		// MOVI: immediate load, handled separately below.
	} else {
		b = vm.Registers.Get(in.RB)
		c = vm.Registers.Get(in.RC)
	}

	alu := ALU{}
	switch in.Op {
	case OpADD, OpADDI:
		return alu.CaptureOverflow(sys, dest, AddOp, b, c)
	case OpSUB, OpSUBI:
		return alu.CaptureOverflow(sys, dest, SubOp, b, c)
	case OpMUL, OpMULI:
		return alu.CaptureOverflow(sys, dest, MulOp, b, c)
	case OpEXP, OpEXPI:
		return alu.CaptureOverflow(sys, dest, ExpOp, b, c)
	case OpSLL, OpSLLI:
		return alu.BooleanOverflow(sys, dest, ShlOp, b, c)
	case OpSRL, OpSRLI:
		return alu.BooleanOverflow(sys, dest, ShrOp, b, c)
	case OpAND, OpANDI:
		return alu.BooleanOverflow(sys, dest, AndOp, b, c)
	case OpOR, OpORI:
		return alu.BooleanOverflow(sys, dest, OrOp, b, c)
	case OpXOR, OpXORI:
		return alu.BooleanOverflow(sys, dest, XorOp, b, c)
	case OpEQ:
		return alu.BooleanOverflow(sys, dest, EqOp, b, c)
	case OpLT:
		return alu.BooleanOverflow(sys, dest, LtOp, b, c)
	case OpGT:
		return alu.BooleanOverflow(sys, dest, GtOp, b, c)
	case OpNOT:
		return alu.BooleanOverflow(sys, dest, NotOp, b, 0)
	case OpDIV, OpDIVI:
		return alu.ErrorOp(sys, dest, DivOp, b, c)
	case OpMOD, OpMODI:
		return alu.ErrorOp(sys, dest, ModOp, b, c)
	case OpMLOG:
		return alu.ErrorOp(sys, dest, MlogOp, b, c)
	case OpMROO:
		return alu.ErrorOp(sys, dest, MrooOp, b, c)
	case OpMOVE:
		alu.Set(sys, dest, vm.Registers.Get(in.RB))
		return nil
	case OpMOVI:
		alu.Set(sys, dest, Word(in.Imm))
		return nil
	default:
		return NewVMError(PanicInvalidImmediateValue, *sys.PC, *sys.IS)
	}
}
