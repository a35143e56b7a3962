package fuelvm

import "github.com/fuellabs/fuelvm/fueltypes"

// execMessage handles SMO: $rA points at a 32-byte recipient address, $rB
// at the message data, $rC is the data length, and $rD is the base-asset
// amount to send alongside it. The sender's base-asset balance is debited
// and a MessageOut receipt recording the data's hash is produced; the
// actual outgoing-message bookkeeping (adding it to the block's message
// set) is the caller's responsibility once Run returns, same as spec.md
// §8's transfer/output reconciliation.
func (vm *Interpreter) execMessage(in Instruction) *VMError {
	sys, _ := vm.sys()
	if sys.IsExternal() {
		return NewVMError(PanicExpectedInternalContext, *sys.PC, *sys.IS)
	}

	length := vm.Registers.Get(in.RC)
	if gerr := vm.Gas.ChargeDependent(sys, GasSmo, length); gerr != nil {
		return gerr
	}

	ownership := vm.ownership(*sys.HP)
	recipient, rerr := vm.Memory.ReadBytes32(vm.Registers.Get(in.RA), ownership)
	if rerr != nil {
		return rerr
	}
	data, rerr := vm.Memory.Read(vm.Registers.Get(in.RB), length, ownership)
	if rerr != nil {
		return rerr
	}
	amount := vm.Registers.Get(in.RD)

	if amount != 0 {
		if berr := vm.Balances.CheckedBalanceSub(vm.Memory, sys, fueltypes.AssetId{}, amount); berr != nil {
			return berr
		}
	}

	contract := vm.currentContractID()
	_ = vm.Receipts.Push(Receipt{
		Kind:       ReceiptMessageOut,
		ID:         contract,
		PC:         *sys.PC,
		IS:         *sys.IS,
		Amount:     amount,
		DataHash:   hashReturnData(data),
		DataLength: length,
		SubID:      recipient,
	})
	return nil
}

// execFlag handles FLAG: $rA's low bits become the running FLAG register,
// which gates the ALU's unsafe-math and wrapping behavior (SystemRegisters.
// Unsafe/Wrapping). FLAG is itself a reserved register; this handler
// writes it directly rather than through ALU{}.Set.
func (vm *Interpreter) execFlag(in Instruction) *VMError {
	sys, _ := vm.sys()
	*sys.FLAG = vm.Registers.Get(in.RA) & (FlagUnsafeMath | FlagWrapping)
	return nil
}

// execLog handles LOG and LOGD. LOG records four arbitrary register values
// verbatim. LOGD treats $rC/$rD as a pointer/length pair into memory,
// hashing the referenced data into the receipt rather than copying it
// inline, matching ReturnData's DataHash convention.
func (vm *Interpreter) execLog(in Instruction) *VMError {
	sys, _ := vm.sys()
	contract := vm.currentContractID()

	switch in.Op {
	case OpLOG:
		_ = vm.Receipts.Push(Receipt{
			Kind: ReceiptLog, ID: contract, PC: *sys.PC, IS: *sys.IS,
			RA: vm.Registers.Get(in.RA), RB: vm.Registers.Get(in.RB),
			RC: vm.Registers.Get(in.RC), RD: vm.Registers.Get(in.RD),
		})
		return nil
	case OpLOGD:
		length := vm.Registers.Get(in.RD)
		if gerr := vm.Gas.ChargeDependent(sys, GasLogd, length); gerr != nil {
			return gerr
		}
		ownership := vm.ownership(*sys.HP)
		data, rerr := vm.Memory.Read(vm.Registers.Get(in.RC), length, ownership)
		if rerr != nil {
			return rerr
		}
		_ = vm.Receipts.Push(Receipt{
			Kind: ReceiptLogData, ID: contract, PC: *sys.PC, IS: *sys.IS,
			RA: vm.Registers.Get(in.RA), RB: vm.Registers.Get(in.RB),
			DataHash: hashReturnData(data), DataLength: length,
		})
		return nil
	default:
		return NewVMError(PanicInvalidImmediateValue, *sys.PC, *sys.IS)
	}
}

// execBlob handles BSIZ and BLDD, the code-introspection pair used to read
// a contract's bytecode as data rather than execute it. BSIZ writes the
// callee's code length to $rA; BLDD copies $rD bytes of the callee's code
// starting at offset $rC into memory at $rA, zero-padding past the code's
// end rather than panicking, since a predicate commonly probes a size it
// does not yet know.
func (vm *Interpreter) execBlob(in Instruction) *VMError {
	sys, _ := vm.sys()

	switch in.Op {
	case OpBSIZ:
		if IsSystem(in.RA) {
			return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
		}
		id, rerr := vm.readContractID(vm.Registers.Get(in.RB))
		if rerr != nil {
			return rerr
		}
		code, ok := vm.Storage.StorageContract(id)
		if !ok {
			return NewVMError(PanicContractNotFound, *sys.PC, *sys.IS)
		}
		ALU{}.Set(sys, &vm.Registers[in.RA], Word(len(code)))
		return nil

	case OpBLDD:
		id, rerr := vm.readContractID(vm.Registers.Get(in.RB))
		if rerr != nil {
			return rerr
		}
		code, ok := vm.Storage.StorageContract(id)
		if !ok {
			return NewVMError(PanicContractNotFound, *sys.PC, *sys.IS)
		}
		offset := vm.Registers.Get(in.RC)
		length := vm.Registers.Get(in.RD)
		if gerr := vm.Gas.ChargeDependent(sys, GasLdc, length); gerr != nil {
			return gerr
		}
		ownership := vm.ownership(*sys.HP)
		dst, werr := vm.Memory.Write(vm.Registers.Get(in.RA), length, ownership)
		if werr != nil {
			return werr
		}
		for i := range dst {
			dst[i] = 0
		}
		if offset < Word(len(code)) {
			copy(dst, code[offset:])
		}
		return nil

	default:
		return NewVMError(PanicInvalidImmediateValue, *sys.PC, *sys.IS)
	}
}

// execEcal handles ECAL, the vendor-defined extension call. spec.md §9
// reserves its four register operands and Config.Tracer hook for a host's
// own opcodes; the base interpreter has none registered, so every ECAL
// panics with ContractInstructionNotAllowed rather than silently no-oping,
// since a host that wants ECAL support replaces this method's behavior
// rather than relying on a default that could mask a missing extension.
func (vm *Interpreter) execEcal(in Instruction) *VMError {
	sys, _ := vm.sys()
	return NewVMError(PanicContractInstructionNotAllowed, *sys.PC, *sys.IS)
}
