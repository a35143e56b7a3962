package fuelvm

// execStack handles stack/heap growth (ALOC/CFEI/CFE/CFSI/CFS), bulk memory
// ops (MCL/MCLI/MCP/MCPI/MEQ), byte/word load-store (LB/LW/SB/SW), and the
// register-group push/pop opcodes (PSHL/PSHH/POPL/POPH), whose Imm24
// bitmask addresses exactly the 24 user registers in each half of the
// 48-register user bank (indices 16-39 for the "low" half, 40-63 for the
// "high" half).
func (vm *Interpreter) execStack(in Instruction) *VMError {
	sys, _ := vm.sys()

	switch in.Op {
	case OpALOC:
		return vm.growHeap(sys, vm.Registers.Get(in.RA))

	case OpCFEI:
		return vm.growStack(sys, Word(in.Imm))
	case OpCFE:
		return vm.growStack(sys, vm.Registers.Get(in.RA))

	case OpCFSI:
		return vm.shrinkStack(sys, Word(in.Imm))
	case OpCFS:
		return vm.shrinkStack(sys, vm.Registers.Get(in.RA))

	case OpMCL:
		return vm.memClear(sys, vm.Registers.Get(in.RA), vm.Registers.Get(in.RB))
	case OpMCLI:
		return vm.memClear(sys, vm.Registers.Get(in.RA), Word(in.Imm))

	case OpMCP:
		return vm.memCopy(sys, vm.Registers.Get(in.RA), vm.Registers.Get(in.RB), vm.Registers.Get(in.RC))
	case OpMCPI:
		return vm.memCopy(sys, vm.Registers.Get(in.RA), vm.Registers.Get(in.RB), Word(in.Imm))

	case OpMEQ:
		return vm.memEqual(sys, in)

	case OpLB:
		return vm.loadByte(sys, in)
	case OpLW:
		return vm.loadWord(sys, in)
	case OpSB:
		return vm.storeByte(sys, in)
	case OpSW:
		return vm.storeWord(sys, in)

	case OpPSHL:
		return vm.pushRegisters(sys, 16, Word(in.Imm))
	case OpPSHH:
		return vm.pushRegisters(sys, 40, Word(in.Imm))
	case OpPOPL:
		return vm.popRegisters(sys, 16, Word(in.Imm))
	case OpPOPH:
		return vm.popRegisters(sys, 40, Word(in.Imm))

	default:
		return NewVMError(PanicInvalidImmediateValue, *sys.PC, *sys.IS)
	}
}

func (vm *Interpreter) growHeap(sys *SystemRegisters, amount Word) *VMError {
	newHP, ok := subWord(*sys.HP, amount)
	if !ok || newHP < *sys.SP {
		return NewVMError(PanicMemoryOverflow, *sys.PC, *sys.IS)
	}
	newPages, err := vm.Memory.UpdateAllocations(*sys.SP, newHP)
	if err != nil {
		return err
	}
	if gerr := vm.Gas.ChargeMemoryPages(sys, newPages); gerr != nil {
		return gerr
	}
	*sys.HP = newHP
	return nil
}

func subWord(a, b Word) (Word, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}

func (vm *Interpreter) growStack(sys *SystemRegisters, amount Word) *VMError {
	newSP, ok := addWord(*sys.SP, amount)
	if !ok || newSP > *sys.HP {
		return NewVMError(PanicMemoryOverflow, *sys.PC, *sys.IS)
	}
	newPages, err := vm.Memory.UpdateAllocations(newSP, *sys.HP)
	if err != nil {
		return err
	}
	if gerr := vm.Gas.ChargeMemoryPages(sys, newPages); gerr != nil {
		return gerr
	}
	*sys.SP = newSP
	return nil
}

func (vm *Interpreter) shrinkStack(sys *SystemRegisters, amount Word) *VMError {
	newSP, ok := subWord(*sys.SP, amount)
	if !ok || newSP < *sys.SSP {
		return NewVMError(PanicExpectedUnallocatedStack, *sys.PC, *sys.IS)
	}
	*sys.SP = newSP
	return nil
}

func (vm *Interpreter) memClear(sys *SystemRegisters, addr, length Word) *VMError {
	ownership := vm.ownership(*sys.HP)
	dst, err := vm.Memory.Write(addr, length, ownership)
	if err != nil {
		return err
	}
	if gerr := vm.Gas.ChargeDependent(sys, GasMcl, length); gerr != nil {
		return gerr
	}
	for i := range dst {
		dst[i] = 0
	}
	return nil
}

func (vm *Interpreter) memCopy(sys *SystemRegisters, dst, src, length Word) *VMError {
	if gerr := vm.Gas.ChargeDependent(sys, GasMcp, length); gerr != nil {
		return gerr
	}
	ownership := vm.ownership(*sys.HP)
	return vm.Memory.CopyWithin(dst, src, length, ownership)
}

func (vm *Interpreter) memEqual(sys *SystemRegisters, in Instruction) *VMError {
	if IsSystem(in.RA) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	length := vm.Registers.Get(in.RD)
	ownership := vm.ownership(*sys.HP)
	a, err := vm.Memory.Read(vm.Registers.Get(in.RB), length, ownership)
	if err != nil {
		return err
	}
	b, err := vm.Memory.Read(vm.Registers.Get(in.RC), length, ownership)
	if err != nil {
		return err
	}
	result := Word(0)
	if bytesEqual(a, b) {
		result = 1
	}
	ALU{}.Set(sys, &vm.Registers[in.RA], result)
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (vm *Interpreter) loadByte(sys *SystemRegisters, in Instruction) *VMError {
	if IsSystem(in.RA) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	addr, ok := addWord(vm.Registers.Get(in.RB), Word(in.Imm))
	if !ok {
		return NewVMError(PanicMemoryOverflow, *sys.PC, *sys.IS)
	}
	ownership := vm.ownership(*sys.HP)
	b, err := vm.Memory.Read(addr, 1, ownership)
	if err != nil {
		return err
	}
	ALU{}.Set(sys, &vm.Registers[in.RA], Word(b[0]))
	return nil
}

func (vm *Interpreter) loadWord(sys *SystemRegisters, in Instruction) *VMError {
	if IsSystem(in.RA) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	base, ok := addWord(vm.Registers.Get(in.RB), Word(in.Imm)*WordSize)
	if !ok {
		return NewVMError(PanicMemoryOverflow, *sys.PC, *sys.IS)
	}
	ownership := vm.ownership(*sys.HP)
	b, err := vm.Memory.Read(base, WordSize, ownership)
	if err != nil {
		return err
	}
	ALU{}.Set(sys, &vm.Registers[in.RA], getWordBE(b))
	return nil
}

func (vm *Interpreter) storeByte(sys *SystemRegisters, in Instruction) *VMError {
	addr, ok := addWord(vm.Registers.Get(in.RA), Word(in.Imm))
	if !ok {
		return NewVMError(PanicMemoryOverflow, *sys.PC, *sys.IS)
	}
	ownership := vm.ownership(*sys.HP)
	dst, err := vm.Memory.Write(addr, 1, ownership)
	if err != nil {
		return err
	}
	dst[0] = byte(vm.Registers.Get(in.RB))
	return nil
}

func (vm *Interpreter) storeWord(sys *SystemRegisters, in Instruction) *VMError {
	base, ok := addWord(vm.Registers.Get(in.RA), Word(in.Imm)*WordSize)
	if !ok {
		return NewVMError(PanicMemoryOverflow, *sys.PC, *sys.IS)
	}
	ownership := vm.ownership(*sys.HP)
	dst, err := vm.Memory.Write(base, WordSize, ownership)
	if err != nil {
		return err
	}
	putWordBE(dst, vm.Registers.Get(in.RB))
	return nil
}

func (vm *Interpreter) pushRegisters(sys *SystemRegisters, base uint8, mask Word) *VMError {
	count := Word(0)
	for i := uint8(0); i < 24; i++ {
		if mask&(1<<i) != 0 {
			count++
		}
	}
	if gerr := vm.growStack(sys, count*WordSize); gerr != nil {
		return gerr
	}
	ownership := vm.ownership(*sys.HP)
	addr := *sys.SP - count*WordSize
	for i := uint8(0); i < 24; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		dst, err := vm.Memory.Write(addr, WordSize, ownership)
		if err != nil {
			return err
		}
		putWordBE(dst, vm.Registers.Get(base+i))
		addr += WordSize
	}
	return nil
}

func (vm *Interpreter) popRegisters(sys *SystemRegisters, base uint8, mask Word) *VMError {
	count := Word(0)
	for i := uint8(0); i < 24; i++ {
		if mask&(1<<i) != 0 {
			count++
		}
	}
	if count*WordSize > *sys.SP {
		return NewVMError(PanicMemoryOverflow, *sys.PC, *sys.IS)
	}
	ownership := vm.ownership(*sys.HP)
	addr := *sys.SP - count*WordSize
	for i := uint8(0); i < 24; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		b, err := vm.Memory.Read(addr, WordSize, ownership)
		if err != nil {
			return err
		}
		vm.Registers.SetUser(base+i, getWordBE(b))
		addr += WordSize
	}
	return vm.shrinkStack(sys, count*WordSize)
}
