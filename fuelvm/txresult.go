package fuelvm

import (
	"sort"

	"github.com/fuellabs/fuelvm/fueltypes"
)

// ChangeOutput is one asset's unspent remainder, returned to the
// transaction's change address once execution halts.
type ChangeOutput struct {
	AssetID fueltypes.AssetId
	Amount  Word
}

// ComputeChangeOutputs reconciles a halted interpreter's free balances
// into the change outputs a transaction's outer collaborator must fill
// in before committing it, grounded on `src/interpreter/post_execution.rs`
// (original_source/, per SPEC_FULL.md Section B item 5): iterate every
// asset the transaction listed, and emit one change output for each whose
// ending balance is still nonzero. Assets are returned in ascending
// AssetId order, matching the deterministic ordering
// `NewRuntimeBalances` already imposes on the in-memory balance table.
func ComputeChangeOutputs(vm *Interpreter) []ChangeOutput {
	balances := vm.Balances.All()
	out := make([]ChangeOutput, 0, len(balances))
	for asset, amount := range balances {
		if amount == 0 {
			continue
		}
		out = append(out, ChangeOutput{AssetID: asset, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		return lessBytes(out[i].AssetID.Bytes(), out[j].AssetID.Bytes())
	})
	return out
}
