package fuelvm

// execControl handles the eleven control-flow opcodes. All jump targets are
// instruction counts, converted to byte offsets by multiplying by
// InstructionSize; a handler that takes the jump sets PC directly (the
// dispatcher's auto-advance only fires when PC is left unchanged), so every
// branch here either sets PC explicitly or returns leaving it untouched to
// fall through to the next instruction.
func (vm *Interpreter) execControl(in Instruction) *VMError {
	sys, _ := vm.sys()

	jumpAbs := func(target Word) { *sys.PC = target * InstructionSize }
	jumpFwd := func(base, offset Word) { *sys.PC = base + offset*InstructionSize }
	jumpBack := func(base, offset Word) { *sys.PC = base - offset*InstructionSize }

	switch in.Op {
	case OpJI:
		jumpAbs(Word(in.Imm))
		return nil

	case OpJNEI:
		if vm.Registers.Get(in.RA) != Word(in.Imm) {
			// RB carries the jump target for this form, per the
			// 2-register+Imm12 layout: RA is compared, RB holds the
			// instruction-count target.
			jumpAbs(vm.Registers.Get(in.RB))
		}
		return nil

	case OpJNZI:
		if vm.Registers.Get(in.RA) != 0 {
			jumpAbs(Word(in.Imm))
		}
		return nil

	case OpJMP:
		jumpAbs(vm.Registers.Get(in.RA))
		return nil

	case OpJNE:
		if vm.Registers.Get(in.RA) != vm.Registers.Get(in.RB) {
			jumpAbs(vm.Registers.Get(in.RC))
		}
		return nil

	case OpJNEF:
		if vm.Registers.Get(in.RA) != vm.Registers.Get(in.RB) {
			jumpFwd(*sys.PC, Word(in.Imm))
		}
		return nil

	case OpJNEB:
		if vm.Registers.Get(in.RA) != vm.Registers.Get(in.RB) {
			jumpBack(*sys.PC, Word(in.Imm))
		}
		return nil

	case OpJMPF:
		jumpFwd(*sys.PC, vm.Registers.Get(in.RA)+Word(in.Imm))
		return nil

	case OpJMPB:
		jumpBack(*sys.PC, vm.Registers.Get(in.RA)+Word(in.Imm))
		return nil

	case OpJNZF:
		if vm.Registers.Get(in.RA) != 0 {
			jumpFwd(*sys.PC, Word(in.Imm))
		}
		return nil

	case OpJNZB:
		if vm.Registers.Get(in.RA) != 0 {
			jumpBack(*sys.PC, Word(in.Imm))
		}
		return nil

	default:
		return NewVMError(PanicInvalidImmediateValue, *sys.PC, *sys.IS)
	}
}
