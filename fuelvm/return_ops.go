package fuelvm

import (
	"github.com/fuellabs/fuelvm/fuelcrypto"
	"github.com/fuellabs/fuelvm/fueltypes"
)

// execCall handles CALL: RA is the address in memory of the callee's
// ContractId, RB the asset amount to forward, RC the address of the
// AssetId to forward it in, and RD the amount of CGAS to nominate for the
// callee (clamped to the caller's remaining CGAS per gas.go's SplitCallGas).
// The current frame (if any) is serialized at the new FP, the callee's
// code is loaded from storage, and a fresh frame begins at the loaded
// code's start.
func (vm *Interpreter) execCall(in Instruction) *VMError {
	sys, _ := vm.sys()

	ownership := vm.ownership(*sys.HP)
	toBytes, rerr := vm.Memory.Read(vm.Registers.Get(in.RA), fueltypes.ContractIDLen, ownership)
	if rerr != nil {
		return rerr
	}
	to := fueltypes.BytesToContractId(toBytes)

	assetBytes, rerr := vm.Memory.Read(vm.Registers.Get(in.RC), fueltypes.AssetIDLen, ownership)
	if rerr != nil {
		return rerr
	}
	asset := fueltypes.BytesToAssetId(assetBytes)
	amount := vm.Registers.Get(in.RB)

	if !vm.isInputContract(to) {
		return NewVMError(PanicContractNotInInputs, *sys.PC, *sys.IS)
	}

	code, ok := vm.Storage.StorageContract(to)
	if !ok {
		return NewVMError(PanicContractNotFound, *sys.PC, *sys.IS)
	}

	// Read before the frame push below advances FP: currentContractID
	// decodes the frame at *sys.FP, which still names the caller here.
	external := sys.IsExternal()
	source := vm.currentContractID()

	if pushErr := vm.Frames.Push(); pushErr != nil {
		return pushErr
	}

	if berr := vm.debitAssetBalance(sys, external, source, asset, amount); berr != nil {
		_ = vm.Frames.Pop()
		return berr
	}
	vm.creditContractBalance(to, asset, amount)

	forward, retained := SplitCallGas(*sys.CGAS, vm.Registers.Get(in.RD))

	frame := &CallFrame{
		To:        to,
		AssetID:   asset,
		Registers: vm.Registers,
		CodeSize:  Word(len(code)),
		ArgA:      vm.Registers.Get(RegGGAS),
		ArgB:      retained,
	}
	newFP := *sys.SP
	if gerr := vm.growStack(sys, CallFrameSerializedSize); gerr != nil {
		_ = vm.Frames.Pop()
		return gerr
	}
	frameOwnership := vm.ownership(*sys.HP)
	dst, werr := vm.Memory.Write(newFP, CallFrameSerializedSize, frameOwnership)
	if werr != nil {
		_ = vm.Frames.Pop()
		return werr
	}
	copy(dst, frame.Encode())

	codeStart := *sys.SP
	if gerr := vm.growStack(sys, Word(len(code))); gerr != nil {
		_ = vm.Frames.Pop()
		return gerr
	}
	codeOwnership := vm.ownership(*sys.HP)
	codeDst, werr := vm.Memory.Write(codeStart, Word(len(code)), codeOwnership)
	if werr != nil {
		_ = vm.Frames.Pop()
		return werr
	}
	copy(codeDst, code)

	*sys.FP = newFP
	*sys.SSP = *sys.SP
	*sys.IS = codeStart
	*sys.PC = codeStart
	*sys.CGAS = forward
	*sys.BAL = amount

	vm.Context = Context{Kind: ContextCall, BlockHeight: vm.Storage.BlockHeight()}

	_ = vm.Receipts.Push(Receipt{
		Kind:     ReceiptCall,
		ID:       to,
		PC:       *sys.PC,
		IS:       *sys.IS,
		To:       to,
		Asset:    asset,
		Amount:   amount,
		GasLimit: forward,
	})
	return nil
}

// execReturn handles RET, RETD and RVRT. All three unwind the current call
// frame (if any): registers are restored from the frame's saved copy via
// PreservedOnReturn, CGAS is merged back into the caller's via
// MergeReturnGas, and a terminal receipt is produced. At the outermost
// frame (FP == 0) all three halt the interpreter instead of unwinding.
func (vm *Interpreter) execReturn(in Instruction) *VMError {
	sys, _ := vm.sys()

	var val Word
	switch in.Op {
	case OpRET, OpRVRT:
		val = vm.Registers.Get(in.RA)
	case OpRETD:
		val = vm.Registers.Get(in.RA) // data pointer; length is RB
	}

	contractID := vm.currentContractID()
	external := sys.IsExternal()
	var dataLength Word

	switch in.Op {
	case OpRET:
		_ = vm.Receipts.Push(Receipt{Kind: ReceiptReturn, ID: contractID, PC: *sys.PC, IS: *sys.IS, Val: val})
	case OpRETD:
		dataLength = vm.Registers.Get(in.RB)
		ownership := vm.ownership(*sys.HP)
		data, rerr := vm.Memory.Read(val, dataLength, ownership)
		if rerr != nil {
			return rerr
		}
		hash := hashReturnData(data)
		_ = vm.Receipts.Push(Receipt{Kind: ReceiptReturnData, ID: contractID, PC: *sys.PC, IS: *sys.IS, DataHash: hash, DataLength: dataLength})
	case OpRVRT:
		_ = vm.Receipts.Push(Receipt{Kind: ReceiptRevert, ID: contractID, PC: *sys.PC, IS: *sys.IS, Val: val})
	}

	if external {
		vm.finalState = returnState(in, val, dataLength)
		vm.halt()
		return nil
	}

	ownership := vm.ownership(vm.Memory.Len())
	raw, rerr := vm.Memory.Read(*sys.FP, CallFrameSerializedSize, ownership)
	if rerr != nil {
		return rerr
	}
	frame := DecodeCallFrame(raw)

	callerCGAS := MergeReturnGas(frame.ArgB, *sys.CGAS)
	callerGGAS := *sys.GGAS

	PreservedOnReturn(frame, sys)
	*sys.CGAS = callerCGAS
	*sys.GGAS = callerGGAS
	copy(vm.Registers[VMRegisterSystemCount:], frame.Registers[VMRegisterSystemCount:])

	if popErr := vm.Frames.Pop(); popErr != nil {
		panic(popErr.Error())
	}

	if sys.IsExternal() {
		vm.Context = Context{Kind: ContextScript, BlockHeight: vm.Storage.BlockHeight()}
	} else {
		vm.Context = Context{Kind: ContextCall, BlockHeight: vm.Storage.BlockHeight()}
	}
	return nil
}

func returnState(in Instruction, val, dataLength Word) ProgramState {
	switch in.Op {
	case OpRVRT:
		return ProgramState{Kind: StateRevert, Value: val}
	case OpRETD:
		return ProgramState{Kind: StateReturnData, DataRange: [2]Word{val, dataLength}}
	default:
		return ProgramState{Kind: StateReturn, Value: val}
	}
}

func hashReturnData(data []byte) fueltypes.Bytes32 {
	return fuelcrypto.SHA256Bytes32(data)
}
