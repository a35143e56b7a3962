package fuelvm

import "github.com/fuellabs/fuelvm/fueltypes"

// balanceEntry tracks one asset's free balance together with the byte
// offset of its (AssetId, Word) pair in the header coin-balance region, so
// a debit can update the in-memory map and the backing memory bytes in one
// step.
type balanceEntry struct {
	value  Word
	offset Word
}

// RuntimeBalances is the dual map/memory representation of a transaction's
// free balances described in spec.md §4.6: a map for O(1) debits plus the
// same values laid out in VM memory so contract code can read them
// directly. Grounded on core/vm's StateDB balance bookkeeping (AddBalance/
// SubBalance against a big.Int ledger), narrowed to FuelVM's fixed-width
// per-asset Word ledger and given the memory-mirroring behavior spec.md
// requires, which the EVM model has no equivalent of (EVM balances never
// live in callable bytecode's address space).
type RuntimeBalances struct {
	byAsset map[fueltypes.AssetId]*balanceEntry
}

// NewRuntimeBalances builds the dual representation from the sorted
// (AssetId, Word) pairs already written into the header coin-balance
// region at offsets baseOffset, baseOffset+40, ... (32-byte AssetId + 8-byte
// Word per entry).
func NewRuntimeBalances(sorted []fueltypes.AssetId, values []Word, baseOffset Word) *RuntimeBalances {
	b := &RuntimeBalances{byAsset: make(map[fueltypes.AssetId]*balanceEntry, len(sorted))}
	const entrySize = fueltypes.AssetIDLen + WordSize
	for i, asset := range sorted {
		b.byAsset[asset] = &balanceEntry{
			value:  values[i],
			offset: baseOffset + Word(i)*entrySize,
		}
	}
	return b
}

// Balance returns asset's current free balance, or 0 if the asset is not
// tracked.
func (b *RuntimeBalances) Balance(asset fueltypes.AssetId) Word {
	e, ok := b.byAsset[asset]
	if !ok {
		return 0
	}
	return e.value
}

// All returns every tracked asset's current free balance, keyed by
// AssetId. Used by ComputeChangeOutputs (txresult.go) to find which assets
// have a nonzero remainder once execution halts.
func (b *RuntimeBalances) All() map[fueltypes.AssetId]Word {
	out := make(map[fueltypes.AssetId]Word, len(b.byAsset))
	for asset, e := range b.byAsset {
		out[asset] = e.value
	}
	return out
}

// CheckedBalanceSub debits v from asset's free balance, mirroring the new
// value into mem at the entry's header offset. v == 0 is a no-op success.
// Fails NotEnoughBalance if asset is untracked or its balance is less than
// v.
func (b *RuntimeBalances) CheckedBalanceSub(mem *Memory, sys *SystemRegisters, asset fueltypes.AssetId, v Word) *VMError {
	if v == 0 {
		return nil
	}
	e, ok := b.byAsset[asset]
	if !ok || e.value < v {
		return NewVMError(PanicNotEnoughBalance, *sys.PC, *sys.IS)
	}
	e.value -= v
	putWordBE(mem.buf[e.offset+fueltypes.AssetIDLen:e.offset+fueltypes.AssetIDLen+WordSize], e.value)
	return nil
}

// CheckedBalanceAdd credits v to asset's free balance, mirroring the new
// value into memory the same way CheckedBalanceSub does. Used when a
// transfer target is the external context's own free balance (e.g. TR to
// an output that refunds the caller). An untracked asset is ignored: no
// entry is created and nothing is credited, so this only covers value
// credited back to an asset the transaction already listed.
func (b *RuntimeBalances) CheckedBalanceAdd(mem *Memory, asset fueltypes.AssetId, v Word) {
	e, ok := b.byAsset[asset]
	if !ok {
		return
	}
	e.value += v
	putWordBE(mem.buf[e.offset+fueltypes.AssetIDLen:e.offset+fueltypes.AssetIDLen+WordSize], e.value)
}
