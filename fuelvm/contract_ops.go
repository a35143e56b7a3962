package fuelvm

import (
	"github.com/fuellabs/fuelvm/fuelcrypto"
	"github.com/fuellabs/fuelvm/fueltypes"
)

// execContract handles the contract-introspection and value-transfer
// opcodes: BAL, BHEI, BHSH, BURN, MINT, CB, CCP, CROO, CSIZ, LDC, TIME, TR,
// TRO. Most read a ContractId/AssetId out of memory by pointer and consult
// Storage or RuntimeBalances; CCP and LDC additionally charge their
// dependent cost against the byte count they move.
func (vm *Interpreter) execContract(in Instruction) *VMError {
	sys, _ := vm.sys()

	switch in.Op {
	case OpBAL:
		return vm.execBal(sys, in)
	case OpBHEI:
		if IsSystem(in.RA) {
			return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
		}
		ALU{}.Set(sys, &vm.Registers[in.RA], Word(vm.Storage.BlockHeight()))
		return nil
	case OpBHSH:
		return vm.execBhsh(sys, in)
	case OpBURN:
		return vm.execMintBurn(sys, in, false)
	case OpMINT:
		return vm.execMintBurn(sys, in, true)
	case OpCB:
		return vm.execCb(sys, in)
	case OpCCP:
		return vm.execCcp(sys, in)
	case OpCROO:
		return vm.execCroo(sys, in)
	case OpCSIZ:
		return vm.execCsiz(sys, in)
	case OpLDC:
		return vm.execLdc(sys, in)
	case OpTIME:
		if IsSystem(in.RA) {
			return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
		}
		height := uint32(vm.Registers.Get(in.RB))
		ALU{}.Set(sys, &vm.Registers[in.RA], vm.Storage.Timestamp(height))
		return nil
	case OpTR:
		return vm.execTr(sys, in)
	case OpTRO:
		return vm.execTro(sys, in)
	default:
		return NewVMError(PanicInvalidImmediateValue, *sys.PC, *sys.IS)
	}
}

func (vm *Interpreter) readContractID(addr Word) (fueltypes.ContractId, *VMError) {
	ownership := vm.ownership(*vm.sysHP())
	raw, err := vm.Memory.Read(addr, fueltypes.ContractIDLen, ownership)
	if err != nil {
		return fueltypes.ContractId{}, err
	}
	return fueltypes.BytesToContractId(raw), nil
}

func (vm *Interpreter) readAssetID(addr Word) (fueltypes.AssetId, *VMError) {
	ownership := vm.ownership(*vm.sysHP())
	raw, err := vm.Memory.Read(addr, fueltypes.AssetIDLen, ownership)
	if err != nil {
		return fueltypes.AssetId{}, err
	}
	return fueltypes.BytesToAssetId(raw), nil
}

func (vm *Interpreter) sysHP() *Word {
	sys, _ := vm.sys()
	return sys.HP
}

// debitAssetBalance subtracts amount from asset's balance, sourcing it from
// the current contract's persistent storage ledger in internal context or
// the transaction's free balance in external context, mirroring
// contract.rs's internal_contract()-or-external_asset_id_balance_sub
// fallback: external is never an error, only the ledger consulted changes.
func (vm *Interpreter) debitAssetBalance(sys *SystemRegisters, external bool, contract fueltypes.ContractId, asset fueltypes.AssetId, amount Word) *VMError {
	if amount == 0 {
		return nil
	}
	if external {
		return vm.Balances.CheckedBalanceSub(vm.Memory, sys, asset, amount)
	}
	current := vm.Storage.MerkleContractAssetIDBalance(contract, asset)
	if current < amount {
		return NewVMError(PanicNotEnoughBalance, *sys.PC, *sys.IS)
	}
	vm.Storage.MerkleContractAssetIDBalanceInsert(contract, asset, current-amount)
	return nil
}

// creditContractBalance adds amount to contract's persistent asset balance,
// the counterpart to debitAssetBalance's internal-context branch.
func (vm *Interpreter) creditContractBalance(contract fueltypes.ContractId, asset fueltypes.AssetId, amount Word) {
	if amount == 0 {
		return
	}
	current := vm.Storage.MerkleContractAssetIDBalance(contract, asset)
	vm.Storage.MerkleContractAssetIDBalanceInsert(contract, asset, current+amount)
}

func (vm *Interpreter) execBal(sys *SystemRegisters, in Instruction) *VMError {
	if IsSystem(in.RA) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	asset, err := vm.readAssetID(vm.Registers.Get(in.RB))
	if err != nil {
		return err
	}
	contract, err := vm.readContractID(vm.Registers.Get(in.RC))
	if err != nil {
		return err
	}
	if !vm.isInputContract(contract) {
		return NewVMError(PanicContractNotInInputs, *sys.PC, *sys.IS)
	}
	balance := vm.Storage.MerkleContractAssetIDBalance(contract, asset)
	ALU{}.Set(sys, &vm.Registers[in.RA], balance)
	return nil
}

func (vm *Interpreter) execBhsh(sys *SystemRegisters, in Instruction) *VMError {
	ownership := vm.ownership(*sys.HP)
	height := uint32(vm.Registers.Get(in.RB))
	hash := vm.Storage.BlockHash(height)
	dst, werr := vm.Memory.Write(vm.Registers.Get(in.RA), fueltypes.Bytes32Length, ownership)
	if werr != nil {
		return werr
	}
	copy(dst, hash.Bytes())
	return nil
}

func (vm *Interpreter) execCb(sys *SystemRegisters, in Instruction) *VMError {
	ownership := vm.ownership(*sys.HP)
	coinbase := vm.Storage.Coinbase()
	dst, werr := vm.Memory.Write(vm.Registers.Get(in.RA), fueltypes.ContractIDLen, ownership)
	if werr != nil {
		return werr
	}
	copy(dst, coinbase.Bytes())
	return nil
}

func (vm *Interpreter) execCsiz(sys *SystemRegisters, in Instruction) *VMError {
	if IsSystem(in.RA) {
		return NewVMError(PanicReservedRegisterNotWritable, *sys.PC, *sys.IS)
	}
	contract, err := vm.readContractID(vm.Registers.Get(in.RB))
	if err != nil {
		return err
	}
	size, ok := vm.Storage.StorageContractSize(contract)
	if !ok {
		return NewVMError(PanicContractNotFound, *sys.PC, *sys.IS)
	}
	ALU{}.Set(sys, &vm.Registers[in.RA], size)
	return nil
}

func (vm *Interpreter) execCroo(sys *SystemRegisters, in Instruction) *VMError {
	contract, err := vm.readContractID(vm.Registers.Get(in.RB))
	if err != nil {
		return err
	}
	_, root, ok := vm.Storage.StorageContractRoot(contract)
	if !ok {
		return NewVMError(PanicContractNotFound, *sys.PC, *sys.IS)
	}
	ownership := vm.ownership(*sys.HP)
	dst, werr := vm.Memory.Write(vm.Registers.Get(in.RA), fueltypes.Bytes32Length, ownership)
	if werr != nil {
		return werr
	}
	copy(dst, root.Bytes())
	return nil
}

// execCcp copies length bytes of an external contract's code (addressed by
// RB) starting at source offset RC into memory at RA.
func (vm *Interpreter) execCcp(sys *SystemRegisters, in Instruction) *VMError {
	contract, err := vm.readContractID(vm.Registers.Get(in.RB))
	if err != nil {
		return err
	}
	offset := vm.Registers.Get(in.RC)
	length := vm.Registers.Get(in.RD)
	code, ok := vm.Storage.StorageContract(contract)
	if !ok {
		return NewVMError(PanicContractNotFound, *sys.PC, *sys.IS)
	}
	if gerr := vm.Gas.ChargeDependent(sys, GasCcp, length); gerr != nil {
		return gerr
	}
	ownership := vm.ownership(*sys.HP)
	dst, werr := vm.Memory.Write(vm.Registers.Get(in.RA), length, ownership)
	if werr != nil {
		return werr
	}
	end := offset + length
	if end > Word(len(code)) {
		end = Word(len(code))
	}
	var src []byte
	if offset < Word(len(code)) {
		src = code[offset:end]
	}
	n := copy(dst, src)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return nil
}

// execLdc replaces the current frame's code by loading length bytes of an
// external contract's code (RB, offset RC) onto the top of the heap, then
// jumping IS/PC to the newly loaded code -- the call-without-a-frame form
// contract bytecode uses to delegate to a library contract's code.
func (vm *Interpreter) execLdc(sys *SystemRegisters, in Instruction) *VMError {
	contract, err := vm.readContractID(vm.Registers.Get(in.RA))
	if err != nil {
		return err
	}
	offset := vm.Registers.Get(in.RB)
	length := vm.Registers.Get(in.RC)
	code, ok := vm.Storage.StorageContract(contract)
	if !ok {
		return NewVMError(PanicContractNotFound, *sys.PC, *sys.IS)
	}
	if gerr := vm.Gas.ChargeDependent(sys, GasLdc, length); gerr != nil {
		return gerr
	}
	if gerr := vm.growHeap(sys, length); gerr != nil {
		return gerr
	}
	ownership := vm.ownership(*sys.HP)
	dst, werr := vm.Memory.Write(*sys.HP, length, ownership)
	if werr != nil {
		return werr
	}
	end := offset + length
	if end > Word(len(code)) {
		end = Word(len(code))
	}
	var src []byte
	if offset < Word(len(code)) {
		src = code[offset:end]
	}
	n := copy(dst, src)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	*sys.IS = *sys.HP
	*sys.PC = *sys.HP
	return nil
}

// execTr transfers RB coins of asset RC out of the current contract's
// balance to a recipient contract addressed by RA.
func (vm *Interpreter) execTr(sys *SystemRegisters, in Instruction) *VMError {
	external := sys.IsExternal()
	source := vm.currentContractID()
	recipient, err := vm.readContractID(vm.Registers.Get(in.RA))
	if err != nil {
		return err
	}
	if !vm.isInputContract(recipient) {
		return NewVMError(PanicContractNotInInputs, *sys.PC, *sys.IS)
	}
	amount := vm.Registers.Get(in.RB)
	if amount == 0 {
		return NewVMError(PanicTransferAmountCannotBeZero, *sys.PC, *sys.IS)
	}
	asset, err := vm.readAssetID(vm.Registers.Get(in.RC))
	if err != nil {
		return err
	}
	if berr := vm.debitAssetBalance(sys, external, source, asset, amount); berr != nil {
		return berr
	}
	vm.creditContractBalance(recipient, asset, amount)
	_ = vm.Receipts.Push(Receipt{
		Kind:              ReceiptTransfer,
		ID:                vm.currentContractID(),
		PC:                *sys.PC,
		IS:                *sys.IS,
		RecipientContract: recipient,
		Asset:             asset,
		Amount:            amount,
	})
	return nil
}

// execTro transfers RD coins of asset RC from the current contract's
// balance to the transaction output indexed by RB, addressed in memory
// as a recipient address at RA.
func (vm *Interpreter) execTro(sys *SystemRegisters, in Instruction) *VMError {
	external := sys.IsExternal()
	source := vm.currentContractID()
	recipient, err := vm.readContractID(vm.Registers.Get(in.RA))
	if err != nil {
		return err
	}
	outputIndex := vm.Registers.Get(in.RB)
	asset, err := vm.readAssetID(vm.Registers.Get(in.RC))
	if err != nil {
		return err
	}
	amount := vm.Registers.Get(in.RD)
	if amount == 0 {
		return NewVMError(PanicTransferAmountCannotBeZero, *sys.PC, *sys.IS)
	}
	if berr := vm.debitAssetBalance(sys, external, source, asset, amount); berr != nil {
		return berr
	}
	_ = vm.Receipts.Push(Receipt{
		Kind:              ReceiptTransferOut,
		ID:                vm.currentContractID(),
		PC:                *sys.PC,
		IS:                *sys.IS,
		RecipientContract: recipient,
		OutputIndex:       outputIndex,
		Asset:             asset,
		Amount:            amount,
	})
	return nil
}

// execMintBurn backs MINT and BURN: RA is the amount register, RB points
// at a 32-byte sub-id. The contract's owned asset id is derived as
// sha256(contractId || subId), the same derivation the rest of the stack
// uses for asset ids minted by a specific contract.
func (vm *Interpreter) execMintBurn(sys *SystemRegisters, in Instruction, mint bool) *VMError {
	if sys.IsExternal() {
		return NewVMError(PanicExpectedInternalContext, *sys.PC, *sys.IS)
	}
	amount := vm.Registers.Get(in.RA)
	ownership := vm.ownership(*sys.HP)
	subID, err := vm.Memory.Read(vm.Registers.Get(in.RB), fueltypes.Bytes32Length, ownership)
	if err != nil {
		return err
	}
	contract := vm.currentContractID()
	assetHash := fuelcrypto.SHA256Bytes32(contract.Bytes(), subID)
	asset := fueltypes.BytesToAssetId(assetHash.Bytes())

	current := vm.Storage.MerkleContractAssetIDBalance(contract, asset)
	var updated Word
	kind := ReceiptBurn
	if mint {
		updated = current + amount
		kind = ReceiptMint
	} else {
		if amount > current {
			return NewVMError(PanicNotEnoughBalance, *sys.PC, *sys.IS)
		}
		updated = current - amount
	}
	vm.Storage.MerkleContractAssetIDBalanceInsert(contract, asset, updated)
	_ = vm.Receipts.Push(Receipt{
		Kind:   kind,
		ID:     contract,
		PC:     *sys.PC,
		IS:     *sys.IS,
		Asset:  asset,
		Amount: amount,
	})
	return nil
}
