package fuelvm

import "github.com/fuellabs/fuelvm/fueltypes"

// execStorage handles the five contract-state opcodes: single-slot SRW/SWW
// and ranged SRWQ/SWWQ/SCWQ. All operate against the current contract's
// key/value store, charging SRWQ/SWWQ/SCWQ's dependent cost against the
// number of 32-byte slots touched.
func (vm *Interpreter) execStorage(in Instruction) *VMError {
	sys, _ := vm.sys()
	if sys.IsExternal() {
		return NewVMError(PanicExpectedInternalContext, *sys.PC, *sys.IS)
	}
	contract := vm.currentContractID()

	switch in.Op {
	case OpSRW:
		return vm.execSrw(sys, in, contract)
	case OpSWW:
		return vm.execSww(sys, in, contract)
	case OpSRWQ:
		return vm.execSrwq(sys, in, contract)
	case OpSWWQ:
		return vm.execSwwq(sys, in, contract)
	case OpSCWQ:
		return vm.execScwq(sys, in, contract)
	default:
		return NewVMError(PanicInvalidImmediateValue, *sys.PC, *sys.IS)
	}
}

func (vm *Interpreter) readBytes32(addr Word) (fueltypes.Bytes32, *VMError) {
	ownership := vm.ownership(*vm.sysHP())
	raw, err := vm.Memory.Read(addr, fueltypes.Bytes32Length, ownership)
	if err != nil {
		return fueltypes.Bytes32{}, err
	}
	return fueltypes.BytesToBytes32(raw), nil
}

// execSrw reads one 32-byte value keyed by the 32-byte key at RB into
// memory at the address in RA, setting register RC to 1 if the slot was
// unset.
func (vm *Interpreter) execSrw(sys *SystemRegisters, in Instruction, contract fueltypes.ContractId) *VMError {
	if IsSystem(in.RA) || IsSystem(in.RC) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	key, err := vm.readBytes32(vm.Registers.Get(in.RB))
	if err != nil {
		return err
	}
	value, ok := vm.Storage.ContractState(contract, key)
	ownership := vm.ownership(*sys.HP)
	dst, werr := vm.Memory.Write(vm.Registers.Get(in.RA), fueltypes.Bytes32Length, ownership)
	if werr != nil {
		return werr
	}
	copy(dst, value.Bytes())
	unset := Word(0)
	if !ok {
		unset = 1
	}
	ALU{}.Set(sys, &vm.Registers[in.RC], unset)
	return nil
}

// execSww writes the 32-byte value at RB to the slot keyed by the 32-byte
// key at RA.
func (vm *Interpreter) execSww(sys *SystemRegisters, in Instruction, contract fueltypes.ContractId) *VMError {
	key, err := vm.readBytes32(vm.Registers.Get(in.RA))
	if err != nil {
		return err
	}
	value, err := vm.readBytes32(vm.Registers.Get(in.RB))
	if err != nil {
		return err
	}
	vm.Storage.ContractStateInsert(contract, key, value)
	return nil
}

// execSrwq reads RD consecutive 32-byte slots starting at the key in RC
// into the buffer at RA, setting register RB to the count that was unset.
func (vm *Interpreter) execSrwq(sys *SystemRegisters, in Instruction, contract fueltypes.ContractId) *VMError {
	if IsSystem(in.RB) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	key, err := vm.readBytes32(vm.Registers.Get(in.RC))
	if err != nil {
		return err
	}
	count := vm.Registers.Get(in.RD)
	if gerr := vm.Gas.ChargeDependent(sys, GasSrwq, count); gerr != nil {
		return gerr
	}
	slots := vm.Storage.ContractStateRange(contract, key, count)
	ownership := vm.ownership(*sys.HP)
	dst, werr := vm.Memory.Write(vm.Registers.Get(in.RA), count*fueltypes.Bytes32Length, ownership)
	if werr != nil {
		return werr
	}
	unset := Word(0)
	for i, slot := range slots {
		if !slot.Ok {
			unset++
		}
		copy(dst[i*fueltypes.Bytes32Length:(i+1)*fueltypes.Bytes32Length], slot.Value.Bytes())
	}
	ALU{}.Set(sys, &vm.Registers[in.RB], unset)
	return nil
}

// execSwwq writes RD consecutive 32-byte values from the buffer at RA to
// slots starting at the key in RC.
func (vm *Interpreter) execSwwq(sys *SystemRegisters, in Instruction, contract fueltypes.ContractId) *VMError {
	key, err := vm.readBytes32(vm.Registers.Get(in.RC))
	if err != nil {
		return err
	}
	count := vm.Registers.Get(in.RD)
	if gerr := vm.Gas.ChargeDependent(sys, GasSwwq, count); gerr != nil {
		return gerr
	}
	ownership := vm.ownership(*sys.HP)
	raw, rerr := vm.Memory.Read(vm.Registers.Get(in.RA), count*fueltypes.Bytes32Length, ownership)
	if rerr != nil {
		return rerr
	}
	values := make([]fueltypes.Bytes32, count)
	for i := range values {
		values[i] = fueltypes.BytesToBytes32(raw[i*fueltypes.Bytes32Length : (i+1)*fueltypes.Bytes32Length])
	}
	vm.Storage.ContractStateInsertRange(contract, key, values)
	return nil
}

// execScwq clears RC consecutive slots starting at the key in RB, setting
// register RA to 1 iff every cleared slot was previously set.
func (vm *Interpreter) execScwq(sys *SystemRegisters, in Instruction, contract fueltypes.ContractId) *VMError {
	if IsSystem(in.RA) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	key, err := vm.readBytes32(vm.Registers.Get(in.RB))
	if err != nil {
		return err
	}
	count := vm.Registers.Get(in.RC)
	if gerr := vm.Gas.ChargeDependent(sys, GasScwq, count); gerr != nil {
		return gerr
	}
	allSet := vm.Storage.ContractStateRemoveRange(contract, key, count)
	result := Word(0)
	if allSet {
		result = 1
	}
	ALU{}.Set(sys, &vm.Registers[in.RA], result)
	return nil
}
