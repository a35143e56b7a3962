package fuelvm

import (
	"github.com/fuellabs/fuelvm/fuelcrypto"
	"github.com/fuellabs/fuelvm/fueltypes"
)

// merkleHash combines two sibling digests into their parent, per the
// receipts accumulator's hashing rule (spec.md §4.7: "the receipts' Merkle
// root is maintained incrementally").
func merkleHash(left, right fueltypes.Bytes32) fueltypes.Bytes32 {
	return fuelcrypto.SHA256Bytes32(left.Bytes(), right.Bytes())
}

// MerkleAccumulator maintains a running Merkle root over an append-only
// leaf sequence in O(log n) space, the same shape as a Merkle Mountain
// Range: peaks[i], when present, covers exactly 2^i consecutive leaves.
// Appending a leaf folds it into existing same-height peaks exactly the
// way binary addition carries, which is what lets the root be recomputed
// after every push without rehashing the whole history.
type MerkleAccumulator struct {
	peaks   []fueltypes.Bytes32
	present []bool
	count   Word
}

// Push appends one leaf digest and returns the updated root.
func (m *MerkleAccumulator) Push(leaf fueltypes.Bytes32) fueltypes.Bytes32 {
	cur := leaf
	i := 0
	for i < len(m.peaks) && m.present[i] {
		cur = merkleHash(m.peaks[i], cur)
		m.present[i] = false
		i++
	}
	if i == len(m.peaks) {
		m.peaks = append(m.peaks, cur)
		m.present = append(m.present, true)
	} else {
		m.peaks[i] = cur
		m.present[i] = true
	}
	m.count++
	return m.Root()
}

// Root returns the current accumulated root; EmptyReceiptsMerkleRoot for
// an empty accumulator.
func (m *MerkleAccumulator) Root() fueltypes.Bytes32 {
	root := EmptyReceiptsMerkleRoot
	first := true
	for i := len(m.peaks) - 1; i >= 0; i-- {
		if !m.present[i] {
			continue
		}
		if first {
			root = m.peaks[i]
			first = false
			continue
		}
		root = merkleHash(root, m.peaks[i])
	}
	return root
}

// Len reports how many leaves have been pushed.
func (m *MerkleAccumulator) Len() Word { return m.count }
