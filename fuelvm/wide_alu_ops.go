package fuelvm

// The 2-register+Imm12 wide-ALU forms pack a third operand into the 12-bit
// immediate alongside the sub-operation, per spec.md §6 ("the ALU wide ops
// use a 2-register + Imm12 where Imm12 encodes sub-operation and
// operand-kind bits"): bits [11:6] hold a register index, bit 5 selects
// whether that register is used directly as a zero-extended scalar
// (operand-kind=1) or as a pointer to an in-memory wide operand
// (operand-kind=0), and bits [4:0] hold the WideSubOp.
func unpackWideImm(imm uint32) (regIdx uint8, direct bool, op WideSubOp) {
	regIdx = uint8((imm >> 6) & 0x3f)
	direct = (imm>>5)&1 == 1
	op = WideSubOp(imm & 0x1f)
	return
}

// execWideALU handles the fourteen WD*/WQ* wide-precision opcodes. RA holds
// the destination address for OP/ML/DV/MD/AM/MM variants (CM writes its
// boolean result directly to RA instead); RB holds the address of the left
// operand. The 4-register forms (MD/AM/MM) take three operand addresses in
// RB/RC/RD with no packed immediate, since the sub-operation is already
// implied by the opcode.
func (vm *Interpreter) execWideALU(in Instruction) *VMError {
	sys, _ := vm.sys()
	width := 16
	if in.Op == OpWQCM || in.Op == OpWQOP || in.Op == OpWQML || in.Op == OpWQDV ||
		in.Op == OpWQMD || in.Op == OpWQAM || in.Op == OpWQMM {
		width = 32
	}

	switch in.Op {
	case OpWDCM, OpWQCM:
		if IsSystem(in.RA) {
			return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
		}
		aAddr := vm.Registers.Get(in.RB)
		a, err := vm.readWideOperand(aAddr, width)
		if err != nil {
			return err
		}
		b, err := vm.resolveWideImmOperand(in.Imm, width)
		if err != nil {
			return err
		}
		var cmp int
		if width == 16 {
			cmp = Compare128(a, b)
		} else {
			cmp = Compare256(a, b)
		}
		result := Word(0)
		if cmp < 0 {
			result = ^Word(0)
		} else if cmp > 0 {
			result = 1
		}
		ALU{}.Set(sys, &vm.Registers[in.RA], result)
		return nil

	case OpWDOP, OpWQOP, OpWDML, OpWQML, OpWDDV, OpWQDV:
		destAddr := vm.Registers.Get(in.RA)
		aAddr := vm.Registers.Get(in.RB)
		a, err := vm.readWideOperand(aAddr, width)
		if err != nil {
			return err
		}
		_, _, subOp := unpackWideImm(in.Imm)
		b, err := vm.resolveWideImmOperand(in.Imm, width)
		if err != nil {
			return err
		}
		return vm.writeWideResult(sys, destAddr, width, subOp, a, b, zeroWide(width))

	case OpWDMD, OpWQMD, OpWDAM, OpWQAM, OpWDMM, OpWQMM:
		destAddr := vm.Registers.Get(in.RA)
		a, err := vm.readWideOperand(vm.Registers.Get(in.RB), width)
		if err != nil {
			return err
		}
		b, err := vm.readWideOperand(vm.Registers.Get(in.RC), width)
		if err != nil {
			return err
		}
		c, err := vm.readWideOperand(vm.Registers.Get(in.RD), width)
		if err != nil {
			return err
		}
		var subOp WideSubOp
		switch in.Op {
		case OpWDMD, OpWQMD:
			subOp = WideOpMulDiv
		case OpWDAM, OpWQAM:
			subOp = WideOpAddMod
		default:
			subOp = WideOpMulMod
		}
		return vm.writeWideResult(sys, destAddr, width, subOp, a, b, c)

	default:
		return NewVMError(PanicInvalidImmediateValue, *sys.PC, *sys.IS)
	}
}

func zeroWide(width int) []byte { return make([]byte, width) }

// resolveWideImmOperand resolves the packed register/indirect operand for
// the 2-register+Imm12 wide forms.
func (vm *Interpreter) resolveWideImmOperand(imm uint32, width int) ([]byte, *VMError) {
	regIdx, direct, _ := unpackWideImm(imm)
	v := vm.Registers.Get(regIdx)
	if direct {
		buf := make([]byte, width)
		putWordBE(buf[width-WordSize:], v)
		return buf, nil
	}
	return vm.readWideOperand(v, width)
}

// readWideOperand reads a width-byte big-endian buffer from memory at addr,
// checked against the current context's readable region.
func (vm *Interpreter) readWideOperand(addr Word, width int) ([]byte, *VMError) {
	ownership := vm.ownership(vm.Memory.Len())
	return vm.Memory.Read(addr, Word(width), ownership)
}

// writeWideResult computes op(a, b, c) at the given width and writes it to
// memory at destAddr, applying the same overflow/error flag semantics as
// the scalar ALU.
func (vm *Interpreter) writeWideResult(sys *SystemRegisters, destAddr Word, width int, op WideSubOp, a, b, c []byte) *VMError {
	ownership := vm.ownership(vm.Memory.Len())
	dst, werr := vm.Memory.Write(destAddr, Word(width), ownership)
	if werr != nil {
		return werr
	}

	var overflow, errCond bool
	var resultBytes []byte
	if width == 16 {
		var r [16]byte
		r, overflow, errCond = Wide128(op, a, b, c)
		resultBytes = r[:]
	} else {
		var r [32]byte
		r, overflow, errCond = Wide256(op, a, b, c)
		resultBytes = r[:]
	}

	if errCond {
		*sys.ERR = 1
		if !sys.Unsafe() {
			return NewVMError(PanicArithmeticError, *sys.PC, *sys.IS)
		}
		for i := range dst {
			dst[i] = 0
		}
		return nil
	}
	*sys.ERR = 0

	if overflow {
		*sys.OF = 1
		if !sys.Wrapping() {
			return NewVMError(PanicArithmeticOverflow, *sys.PC, *sys.IS)
		}
	} else {
		*sys.OF = 0
	}
	copy(dst, resultBytes)
	return nil
}
