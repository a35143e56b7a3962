package fuelvm

import (
	"fmt"

	"github.com/fuellabs/fuelvm/fuelcrypto"
	"github.com/fuellabs/fuelvm/fueltypes"
)

// ReceiptKind tags which fields of a Receipt are meaningful, per spec.md
// §3's "tagged record" description of the receipt set.
type ReceiptKind uint8

const (
	ReceiptCall ReceiptKind = iota
	ReceiptReturn
	ReceiptReturnData
	ReceiptPanic
	ReceiptRevert
	ReceiptLog
	ReceiptLogData
	ReceiptTransfer
	ReceiptTransferOut
	ReceiptScriptResult
	ReceiptMessageOut
	ReceiptMint
	ReceiptBurn
)

var receiptKindNames = [...]string{
	ReceiptCall:         "Call",
	ReceiptReturn:       "Return",
	ReceiptReturnData:   "ReturnData",
	ReceiptPanic:        "Panic",
	ReceiptRevert:       "Revert",
	ReceiptLog:          "Log",
	ReceiptLogData:      "LogData",
	ReceiptTransfer:     "Transfer",
	ReceiptTransferOut:  "TransferOut",
	ReceiptScriptResult: "ScriptResult",
	ReceiptMessageOut:   "MessageOut",
	ReceiptMint:         "Mint",
	ReceiptBurn:         "Burn",
}

// String implements fmt.Stringer.
func (k ReceiptKind) String() string {
	if int(k) < len(receiptKindNames) && receiptKindNames[k] != "" {
		return receiptKindNames[k]
	}
	return fmt.Sprintf("ReceiptKind(%d)", uint8(k))
}

// Receipt is a tagged event record. Every receipt carries the common tail
// (producing contract id, $pc, $is at production) plus whichever
// kind-specific fields its Kind uses; unused fields are left zero rather
// than split across per-kind types, matching the flat-struct style the
// teacher uses for its own EVM log/trace records.
type Receipt struct {
	Kind ReceiptKind
	ID   fueltypes.ContractId // 0 (zero ContractId) for external/script-level receipts
	PC   Word
	IS   Word

	// Call
	To       fueltypes.ContractId
	Asset    fueltypes.AssetId
	Amount   Word
	GasLimit Word

	// Return / Revert / ScriptResult
	Val Word

	// ReturnData / LogData / MessageOut
	DataHash   fueltypes.Bytes32
	DataLength Word

	// Panic
	Reason PanicReason

	// Log
	RA, RB, RC, RD Word

	// Transfer / TransferOut
	RecipientContract fueltypes.ContractId
	OutputIndex       Word

	// MessageOut (recipient address)
	SubID fueltypes.Bytes32
}

// Receipts is the bounded, append-only receipt log described in spec.md
// §4.7: capacity MAX_RECEIPTS, with the Merkle root maintained
// incrementally on every successful push. Capacity reserves exactly one
// slot so that a script which fills the log can still record the
// terminating TooManyReceipts panic (or ScriptResult) as its very last
// entry.
type Receipts struct {
	entries  []Receipt
	capacity Word
	merkle   MerkleAccumulator
}

// NewReceipts returns an empty log with the given capacity.
func NewReceipts(capacity Word) *Receipts {
	return &Receipts{capacity: capacity}
}

// Push appends r and folds its encoding into the running Merkle root,
// failing if the log is already at capacity. The dispatcher is
// responsible for converting a failed Push into a TooManyReceipts Panic
// receipt, which itself must still fit (spec.md §4.7's capacity-reserves-
// a-slot invariant holds because the dispatcher never lets the log reach
// capacity-1 without already having room for one more entry).
func (r *Receipts) Push(rec Receipt) error {
	if Word(len(r.entries)) >= r.capacity {
		return errTooManyReceipts
	}
	r.entries = append(r.entries, rec)
	r.merkle.Push(receiptLeaf(rec))
	return nil
}

// Root returns the current incremental Merkle root over all pushed
// receipts.
func (r *Receipts) Root() fueltypes.Bytes32 { return r.merkle.Root() }

// Len reports how many receipts have been recorded.
func (r *Receipts) Len() int { return len(r.entries) }

// All returns the recorded receipts in push order.
func (r *Receipts) All() []Receipt { return r.entries }

// errTooManyReceipts is a sentinel the dispatcher checks for by identity;
// it is never surfaced to a caller as-is, only translated into a
// PanicTooManyReceipts VMError.
var errTooManyReceipts = &receiptsCapacityError{}

type receiptsCapacityError struct{}

func (*receiptsCapacityError) Error() string { return "fuelvm: receipts capacity exceeded" }

// receiptLeaf encodes a receipt into the 32-byte digest folded into the
// Merkle accumulator. Kind-specific fields are hashed alongside the common
// tail so that two receipts differing only in, say, Val still produce
// distinct leaves.
func receiptLeaf(r Receipt) fueltypes.Bytes32 {
	buf := make([]byte, 0, 256)
	buf = append(buf, byte(r.Kind))
	buf = append(buf, r.ID.Bytes()...)
	buf = appendWordBE(buf, r.PC)
	buf = appendWordBE(buf, r.IS)
	buf = append(buf, r.To.Bytes()...)
	buf = append(buf, r.Asset.Bytes()...)
	buf = appendWordBE(buf, r.Amount)
	buf = appendWordBE(buf, r.GasLimit)
	buf = appendWordBE(buf, r.Val)
	buf = append(buf, r.DataHash.Bytes()...)
	buf = appendWordBE(buf, r.DataLength)
	buf = appendWordBE(buf, Word(r.Reason))
	buf = appendWordBE(buf, r.RA)
	buf = appendWordBE(buf, r.RB)
	buf = appendWordBE(buf, r.RC)
	buf = appendWordBE(buf, r.RD)
	buf = append(buf, r.RecipientContract.Bytes()...)
	buf = appendWordBE(buf, r.OutputIndex)
	buf = append(buf, r.SubID.Bytes()...)
	return fuelcrypto.SHA256Bytes32(buf)
}

func appendWordBE(buf []byte, w Word) []byte {
	var tmp [WordSize]byte
	putWordBE(tmp[:], w)
	return append(buf, tmp[:]...)
}
