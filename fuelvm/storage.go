package fuelvm

import (
	"bytes"
	"sort"

	"github.com/fuellabs/fuelvm/fueltypes"
)

// Storage is the only persistence boundary the engine talks to; every
// storage-touching opcode (SRW/SWW/SRWQ/SWWQ/SCWQ/LDC/CROO/CSIZ/BAL/BHEI/
// BHSH/TIME/CB/...) goes through this interface instead of reaching into a
// concrete database. Modeled on core/vm's StateDB split between account
// code/storage access and block-context accessors, narrowed to FuelVM's
// contract-K/V + per-asset-balance model instead of an account/trie model.
type Storage interface {
	// Contract bytecode.
	StorageContract(id fueltypes.ContractId) ([]byte, bool)
	StorageContractSize(id fueltypes.ContractId) (Word, bool)
	StorageContractInsert(id fueltypes.ContractId, code []byte)
	StorageContractExists(id fueltypes.ContractId) bool

	// Contract code Merkle root, alongside the salt recorded at deployment.
	StorageContractRoot(id fueltypes.ContractId) (fueltypes.Salt, fueltypes.Bytes32, bool)
	StorageContractRootInsert(id fueltypes.ContractId, salt fueltypes.Salt, root fueltypes.Bytes32)

	// Per-contract key/value state.
	ContractState(id fueltypes.ContractId, key fueltypes.Bytes32) (fueltypes.Bytes32, bool)
	ContractStateInsert(id fueltypes.ContractId, key fueltypes.Bytes32, value fueltypes.Bytes32) (previouslySet bool)
	ContractStateRemove(id fueltypes.ContractId, key fueltypes.Bytes32) (previouslySet bool)

	// ContractStateRange returns n entries starting at startKey, keys
	// stepping by big-endian +1 with carry; a step past 2^256 truncates the
	// returned range. Unset slots report ok=false.
	ContractStateRange(id fueltypes.ContractId, startKey fueltypes.Bytes32, n Word) []StateSlot
	// ContractStateInsertRange writes len(values) consecutive slots
	// starting at startKey and returns how many were previously unset.
	ContractStateInsertRange(id fueltypes.ContractId, startKey fueltypes.Bytes32, values []fueltypes.Bytes32) Word
	// ContractStateRemoveRange removes n consecutive slots starting at
	// startKey; ok is true iff every slot was previously set (removal still
	// happens regardless).
	ContractStateRemoveRange(id fueltypes.ContractId, startKey fueltypes.Bytes32, n Word) (ok bool)

	// Per-(contract,asset) balances.
	MerkleContractAssetIDBalance(id fueltypes.ContractId, asset fueltypes.AssetId) Word
	MerkleContractAssetIDBalanceInsert(id fueltypes.ContractId, asset fueltypes.AssetId, value Word)

	// Block context.
	BlockHeight() uint32
	BlockHash(height uint32) fueltypes.Bytes32
	Timestamp(height uint32) Word
	Coinbase() fueltypes.ContractId
}

// StateSlot is one entry in a ContractStateRange result; Ok is false for
// slots that were never set.
type StateSlot struct {
	Value fueltypes.Bytes32
	Ok    bool
}

// nextKey advances a 32-byte big-endian key by one, reporting whether the
// increment carried out past 2^256 (the range-truncation case in spec.md
// §4.5's key-ordering rule).
func nextKey(k fueltypes.Bytes32) (next fueltypes.Bytes32, carried bool) {
	next = k
	for i := len(next) - 1; i >= 0; i-- {
		next[i]++
		if next[i] != 0 {
			return next, false
		}
	}
	return next, true
}

type contractAsset struct {
	contract fueltypes.ContractId
	asset    fueltypes.AssetId
}

type contractKey struct {
	contract fueltypes.ContractId
	key      fueltypes.Bytes32
}

// MemStorage is an in-memory reference Storage implementation, the
// counterpart of the teacher's in-memory StateDB used in tests; it backs
// fuelvm-run and the engine's own unit tests.
type MemStorage struct {
	code      map[fueltypes.ContractId][]byte
	roots     map[fueltypes.ContractId]contractRoot
	state     map[contractKey]fueltypes.Bytes32
	balances  map[contractAsset]Word
	heights   []fueltypes.Bytes32 // block hash by height, append-only
	times     map[uint32]Word
	coinbase  fueltypes.ContractId
	curHeight uint32
}

type contractRoot struct {
	salt fueltypes.Salt
	root fueltypes.Bytes32
}

// NewMemStorage returns an empty in-memory Storage rooted at the given
// block height, coinbase and timestamp.
func NewMemStorage(height uint32, coinbase fueltypes.ContractId, now Word) *MemStorage {
	s := &MemStorage{
		code:      make(map[fueltypes.ContractId][]byte),
		roots:     make(map[fueltypes.ContractId]contractRoot),
		state:     make(map[contractKey]fueltypes.Bytes32),
		balances:  make(map[contractAsset]Word),
		times:     make(map[uint32]Word),
		coinbase:  coinbase,
		curHeight: height,
	}
	s.times[height] = now
	s.heights = make([]fueltypes.Bytes32, height+1)
	return s
}

func (s *MemStorage) StorageContract(id fueltypes.ContractId) ([]byte, bool) {
	b, ok := s.code[id]
	return b, ok
}

func (s *MemStorage) StorageContractSize(id fueltypes.ContractId) (Word, bool) {
	b, ok := s.code[id]
	if !ok {
		return 0, false
	}
	return Word(len(b)), true
}

func (s *MemStorage) StorageContractInsert(id fueltypes.ContractId, code []byte) {
	cp := make([]byte, len(code))
	copy(cp, code)
	s.code[id] = cp
}

func (s *MemStorage) StorageContractExists(id fueltypes.ContractId) bool {
	_, ok := s.code[id]
	return ok
}

func (s *MemStorage) StorageContractRoot(id fueltypes.ContractId) (fueltypes.Salt, fueltypes.Bytes32, bool) {
	r, ok := s.roots[id]
	return r.salt, r.root, ok
}

func (s *MemStorage) StorageContractRootInsert(id fueltypes.ContractId, salt fueltypes.Salt, root fueltypes.Bytes32) {
	s.roots[id] = contractRoot{salt: salt, root: root}
}

func (s *MemStorage) ContractState(id fueltypes.ContractId, key fueltypes.Bytes32) (fueltypes.Bytes32, bool) {
	v, ok := s.state[contractKey{id, key}]
	return v, ok
}

func (s *MemStorage) ContractStateInsert(id fueltypes.ContractId, key, value fueltypes.Bytes32) bool {
	ck := contractKey{id, key}
	_, existed := s.state[ck]
	s.state[ck] = value
	return existed
}

func (s *MemStorage) ContractStateRemove(id fueltypes.ContractId, key fueltypes.Bytes32) bool {
	ck := contractKey{id, key}
	_, existed := s.state[ck]
	delete(s.state, ck)
	return existed
}

func (s *MemStorage) ContractStateRange(id fueltypes.ContractId, startKey fueltypes.Bytes32, n Word) []StateSlot {
	out := make([]StateSlot, 0, n)
	k := startKey
	for i := Word(0); i < n; i++ {
		v, ok := s.state[contractKey{id, k}]
		out = append(out, StateSlot{Value: v, Ok: ok})
		next, carried := nextKey(k)
		if carried {
			break
		}
		k = next
	}
	return out
}

func (s *MemStorage) ContractStateInsertRange(id fueltypes.ContractId, startKey fueltypes.Bytes32, values []fueltypes.Bytes32) Word {
	var previouslyUnset Word
	k := startKey
	for i, v := range values {
		ck := contractKey{id, k}
		if _, existed := s.state[ck]; !existed {
			previouslyUnset++
		}
		s.state[ck] = v
		if i == len(values)-1 {
			break
		}
		next, carried := nextKey(k)
		if carried {
			break
		}
		k = next
	}
	return previouslyUnset
}

func (s *MemStorage) ContractStateRemoveRange(id fueltypes.ContractId, startKey fueltypes.Bytes32, n Word) bool {
	allSet := true
	k := startKey
	for i := Word(0); i < n; i++ {
		ck := contractKey{id, k}
		if _, existed := s.state[ck]; !existed {
			allSet = false
		}
		delete(s.state, ck)
		next, carried := nextKey(k)
		if carried {
			break
		}
		k = next
	}
	return allSet
}

func (s *MemStorage) MerkleContractAssetIDBalance(id fueltypes.ContractId, asset fueltypes.AssetId) Word {
	return s.balances[contractAsset{id, asset}]
}

func (s *MemStorage) MerkleContractAssetIDBalanceInsert(id fueltypes.ContractId, asset fueltypes.AssetId, value Word) {
	s.balances[contractAsset{id, asset}] = value
}

func (s *MemStorage) BlockHeight() uint32 { return s.curHeight }

func (s *MemStorage) BlockHash(height uint32) fueltypes.Bytes32 {
	if int(height) >= len(s.heights) {
		return fueltypes.Bytes32{}
	}
	return s.heights[height]
}

func (s *MemStorage) Timestamp(height uint32) Word { return s.times[height] }

func (s *MemStorage) Coinbase() fueltypes.ContractId { return s.coinbase }

// StorageDelta records one mutation observed by RecordingStorage, carrying
// enough of the previous value to undo it.
type StorageDelta struct {
	Kind         DeltaKind
	Contract     fueltypes.ContractId
	Asset        fueltypes.AssetId
	Key          fueltypes.Bytes32
	PrevState    fueltypes.Bytes32
	HadState     bool
	PrevBalance  Word
	PrevCode     []byte
	HadCode      bool
	PrevRootSalt fueltypes.Salt
	PrevRoot     fueltypes.Bytes32
	HadRoot      bool
}

// DeltaKind identifies which field of a StorageDelta is meaningful.
type DeltaKind int

const (
	DeltaContractState DeltaKind = iota
	DeltaBalance
	DeltaContractCode
	DeltaContractRoot
)

// RecordingStorage wraps a Storage and records every mutation so the
// engine can roll back writes made inside a frame that ends in RVRT or a
// Panic, per spec.md §4.8's "the outer collaborator is expected to roll
// back storage writes" rule. Grounded on
// original_source/src/interpreter/diff/storage.rs's Record<S> wrapper,
// adapted from its trait-object delta log (one enum variant per Mappable
// type) to a single flat []StorageDelta slice, since Go has no equivalent
// of the original's per-table trait dispatch and a flat log with explicit
// undo logic is simpler to get right without being able to run tests.
type RecordingStorage struct {
	Storage
	deltas []StorageDelta
}

// NewRecordingStorage wraps s for diff tracking.
func NewRecordingStorage(s Storage) *RecordingStorage {
	return &RecordingStorage{Storage: s}
}

// Mark returns the current length of the delta log; pass it to Rollback to
// undo everything recorded since.
func (r *RecordingStorage) Mark() int { return len(r.deltas) }

// Rollback undoes every delta recorded since mark, in reverse order. A
// state slot that was unset before is removed again; contract code or a
// code root inserted where none existed is left in place, since Storage
// has no method to remove either.
func (r *RecordingStorage) Rollback(mark int) {
	for i := len(r.deltas) - 1; i >= mark; i-- {
		d := r.deltas[i]
		switch d.Kind {
		case DeltaContractState:
			if d.HadState {
				r.Storage.ContractStateInsert(d.Contract, d.Key, d.PrevState)
			} else {
				r.Storage.ContractStateRemove(d.Contract, d.Key)
			}
		case DeltaBalance:
			r.Storage.MerkleContractAssetIDBalanceInsert(d.Contract, d.Asset, d.PrevBalance)
		case DeltaContractCode:
			if d.HadCode {
				r.Storage.StorageContractInsert(d.Contract, d.PrevCode)
			}
		case DeltaContractRoot:
			if d.HadRoot {
				r.Storage.StorageContractRootInsert(d.Contract, d.PrevRootSalt, d.PrevRoot)
			}
		}
	}
	r.deltas = r.deltas[:mark]
}

func (r *RecordingStorage) ContractStateInsert(id fueltypes.ContractId, key, value fueltypes.Bytes32) bool {
	prev, had := r.Storage.ContractState(id, key)
	existed := r.Storage.ContractStateInsert(id, key, value)
	r.deltas = append(r.deltas, StorageDelta{Kind: DeltaContractState, Contract: id, Key: key, PrevState: prev, HadState: had})
	return existed
}

func (r *RecordingStorage) ContractStateRemove(id fueltypes.ContractId, key fueltypes.Bytes32) bool {
	prev, had := r.Storage.ContractState(id, key)
	existed := r.Storage.ContractStateRemove(id, key)
	if had {
		r.deltas = append(r.deltas, StorageDelta{Kind: DeltaContractState, Contract: id, Key: key, PrevState: prev, HadState: had})
	}
	return existed
}

func (r *RecordingStorage) ContractStateInsertRange(id fueltypes.ContractId, startKey fueltypes.Bytes32, values []fueltypes.Bytes32) Word {
	var previouslyUnset Word
	k := startKey
	for i, v := range values {
		prev, had := r.Storage.ContractState(id, k)
		r.Storage.ContractStateInsert(id, k, v)
		r.deltas = append(r.deltas, StorageDelta{Kind: DeltaContractState, Contract: id, Key: k, PrevState: prev, HadState: had})
		if !had {
			previouslyUnset++
		}
		if i == len(values)-1 {
			break
		}
		next, carried := nextKey(k)
		if carried {
			break
		}
		k = next
	}
	return previouslyUnset
}

func (r *RecordingStorage) ContractStateRemoveRange(id fueltypes.ContractId, startKey fueltypes.Bytes32, n Word) bool {
	allSet := true
	k := startKey
	for i := Word(0); i < n; i++ {
		prev, had := r.Storage.ContractState(id, k)
		r.Storage.ContractStateRemove(id, k)
		if had {
			r.deltas = append(r.deltas, StorageDelta{Kind: DeltaContractState, Contract: id, Key: k, PrevState: prev, HadState: had})
		} else {
			allSet = false
		}
		next, carried := nextKey(k)
		if carried {
			break
		}
		k = next
	}
	return allSet
}

func (r *RecordingStorage) MerkleContractAssetIDBalanceInsert(id fueltypes.ContractId, asset fueltypes.AssetId, value Word) {
	prev := r.Storage.MerkleContractAssetIDBalance(id, asset)
	r.Storage.MerkleContractAssetIDBalanceInsert(id, asset, value)
	r.deltas = append(r.deltas, StorageDelta{Kind: DeltaBalance, Contract: id, Asset: asset, PrevBalance: prev})
}

func (r *RecordingStorage) StorageContractInsert(id fueltypes.ContractId, code []byte) {
	prev, had := r.Storage.StorageContract(id)
	r.Storage.StorageContractInsert(id, code)
	r.deltas = append(r.deltas, StorageDelta{Kind: DeltaContractCode, Contract: id, PrevCode: bytesOrNil(prev), HadCode: had})
}

func (r *RecordingStorage) StorageContractRootInsert(id fueltypes.ContractId, salt fueltypes.Salt, root fueltypes.Bytes32) {
	prevSalt, prevRoot, had := r.Storage.StorageContractRoot(id)
	r.Storage.StorageContractRootInsert(id, salt, root)
	r.deltas = append(r.deltas, StorageDelta{Kind: DeltaContractRoot, Contract: id, PrevRootSalt: prevSalt, PrevRoot: prevRoot, HadRoot: had})
}

func bytesOrNil(b []byte) []byte {
	if b == nil {
		return nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}

// sortedContractKeys is a small helper used by tests to assert deterministic
// iteration order over a MemStorage's state map.
func sortedContractKeys(m map[contractKey]fueltypes.Bytes32) []contractKey {
	keys := make([]contractKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := keys[i].contract, keys[j].contract
		if !bytes.Equal(ci[:], cj[:]) {
			return bytes.Compare(ci[:], cj[:]) < 0
		}
		return bytes.Compare(keys[i].key[:], keys[j].key[:]) < 0
	})
	return keys
}
