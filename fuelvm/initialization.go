package fuelvm

import (
	"sort"

	"github.com/fuellabs/fuelvm/fueltypes"
)

// CoinInput is one coin the initializing transaction spends, feeding the
// per-asset balance table spec.md §4.12 step 3 describes.
type CoinInput struct {
	AssetID fueltypes.AssetId
	Amount  Word
}

// InitParams bundles everything Init needs to lay a transaction out in
// memory. GasLimit is the transaction's total gas budget minus whatever
// gas its input predicates have already consumed verifying themselves
// (spec.md §4.12 step 6); the caller computes that subtraction, since only
// it knows how many predicates ran and what they charged.
type InitParams struct {
	TxID     fueltypes.Bytes32
	TxBytes  []byte
	Coins    []CoinInput
	Context  Context
	GasLimit Word

	// InputContracts lists the ContractIds this transaction declares as
	// inputs; CALL and TR panic ContractNotInInputs against a contract not
	// in this list (spec.md §4.8 step 1).
	InputContracts []fueltypes.ContractId
}

const balanceEntrySize = fueltypes.AssetIDLen + WordSize

// Init lays a transaction out in memory and resets all per-transaction
// state, per spec.md §4.12. It is the register-VM analogue of the
// teacher's StateTransition setting up a fresh EVM call frame
// (core/state_transition.go's TransitionDb): reset receipts/frames/memory/
// registers, then place the pieces of the transaction a running program
// needs to find by address (id, balance table, raw bytes) at known
// offsets, since FuelVM has no implicit "calldata" register the way EVM's
// CALLDATALOAD reads from transaction-adjacent state.
func (vm *Interpreter) Init(p InitParams) {
	vm.Receipts = NewReceipts(vm.Config.MaxReceipts)
	vm.Frames = CallFrameStack{}
	for i := range vm.Memory.buf {
		vm.Memory.buf[i] = 0
	}
	vm.Memory.allocatedPages = 0
	vm.Registers = NewRegisterFile(vm.Memory.Len())
	vm.halted = false
	vm.finalState = ProgramState{}
	vm.tx = p.TxBytes
	vm.Context = p.Context
	vm.InputContracts = p.InputContracts

	offset := Word(0)
	copy(vm.Memory.buf[offset:], p.TxID.Bytes())
	offset += fueltypes.Bytes32Length

	balanceBase := offset
	sorted, values := sortedCoins(p.Coins)
	for i, asset := range sorted {
		entry := balanceBase + Word(i)*balanceEntrySize
		copy(vm.Memory.buf[entry:], asset.Bytes())
		putWordBE(vm.Memory.buf[entry+fueltypes.AssetIDLen:entry+balanceEntrySize], values[i])
	}
	offset += Word(len(sorted)) * balanceEntrySize
	vm.Balances = NewRuntimeBalances(sorted, values, balanceBase)

	putWordBE(vm.Memory.buf[offset:offset+WordSize], Word(len(p.TxBytes)))
	offset += WordSize
	vm.Config.TxOffset = offset
	copy(vm.Memory.buf[offset:], p.TxBytes)
	offset += Word(len(p.TxBytes))

	sys, _ := vm.sys()
	*sys.SSP = offset
	*sys.SP = offset
	*sys.IS = vm.Config.TxOffset + txHeaderSize
	*sys.PC = vm.Config.TxOffset + txHeaderSize
	*sys.GGAS = p.GasLimit
	*sys.CGAS = p.GasLimit

	if p.Context.Kind == ContextPredicate {
		*sys.PC = p.Context.PredicateProgramStart
		*sys.IS = p.Context.PredicateProgramStart
	}

	if _, err := vm.Memory.UpdateAllocations(*sys.SP, *sys.HP); err != nil {
		panic(err.Error())
	}
}

// sortedCoins returns coins sorted by AssetId, the order
// NewRuntimeBalances requires so each asset's header-table offset is
// reproducible from its sorted position alone.
func sortedCoins(coins []CoinInput) ([]fueltypes.AssetId, []Word) {
	ordered := append([]CoinInput(nil), coins...)
	sort.Slice(ordered, func(i, j int) bool {
		return lessBytes(ordered[i].AssetID.Bytes(), ordered[j].AssetID.Bytes())
	})
	assets := make([]fueltypes.AssetId, len(ordered))
	values := make([]Word, len(ordered))
	for i, c := range ordered {
		assets[i] = c.AssetID
		values[i] = c.Amount
	}
	return assets, values
}

func lessBytes(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
