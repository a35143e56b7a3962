package fuelvm

import "github.com/fuellabs/fuelvm/fueltypes"

// Memory is the VM's single fixed-size byte array (VM_MAX_RAM long), page
// allocated on demand as SP grows down from the bottom and HP grows up from
// the top. Unlike a simple byte-slice memory model, reads, writes and
// copies are checked against the caller's ownership region so that a
// contract can never reach into another context's stack or heap frame.
type Memory struct {
	buf            []byte
	allocatedPages Word
}

// NewMemory allocates a zeroed buffer of exactly size bytes. size must
// already be a power of two; the dispatcher is responsible for enforcing
// VM_MAX_RAM at configuration time.
func NewMemory(size Word) *Memory {
	return &Memory{buf: make([]byte, size)}
}

// Len returns the total addressable size, in bytes.
func (m *Memory) Len() Word { return Word(len(m.buf)) }

// OwnershipRegisters is a snapshot of the registers that define the current
// context's readable and writable regions, taken once per access so that
// checks never race a concurrent register mutation.
type OwnershipRegisters struct {
	SP       Word
	SSP      Word
	HP       Word
	PrevHP   Word
	External bool
}

// readableRange reports whether [addr, addr+length) lies entirely within
// the stack region [0, SP) or the current context's heap region
// [HP, VM_MAX_RAM).
func readableRange(addr, length Word, regs OwnershipRegisters, memLen Word) bool {
	if length == 0 {
		return addr <= memLen
	}
	end, ok := addWord(addr, length)
	if !ok || end > memLen {
		return false
	}
	if end <= regs.SP {
		return true
	}
	return addr >= regs.HP
}

// ownedRange reports whether [addr, addr+length) lies entirely within the
// stack-ownership region [SSP, SP) or the current frame's heap-ownership
// region (HP, prevHP], with prevHP taken as VM_MAX_RAM in external context.
func ownedRange(addr, length Word, regs OwnershipRegisters, memLen Word) bool {
	if length == 0 {
		return addr <= memLen
	}
	end, ok := addWord(addr, length)
	if !ok || end > memLen {
		return false
	}
	if addr >= regs.SSP && end <= regs.SP {
		return true
	}
	heapTop := regs.PrevHP
	if regs.External {
		heapTop = memLen
	}
	return addr > regs.HP && end <= heapTop
}

func addWord(a, b Word) (Word, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// Read returns a copy of [addr, addr+length). It fails MemoryAccessSize if
// length exceeds MEM_MAX_ACCESS_SIZE, and MemoryAccess if the range is not
// entirely readable in the given context.
func (m *Memory) Read(addr, length Word, regs OwnershipRegisters) ([]byte, *VMError) {
	if length > MemMaxAccessSize {
		return nil, NewVMError(PanicMemoryAccessSize, 0, 0)
	}
	if !readableRange(addr, length, regs, m.Len()) {
		return nil, NewVMError(PanicMemoryAccess, 0, 0)
	}
	out := make([]byte, length)
	copy(out, m.buf[addr:addr+length])
	return out, nil
}

// Write returns a direct mutable slice over [addr, addr+length), after
// confirming the caller owns that range.
func (m *Memory) Write(addr, length Word, regs OwnershipRegisters) ([]byte, *VMError) {
	if length > MemMaxAccessSize {
		return nil, NewVMError(PanicMemoryAccessSize, 0, 0)
	}
	if !readableRange(addr, length, regs, m.Len()) {
		return nil, NewVMError(PanicMemoryAccess, 0, 0)
	}
	if !ownedRange(addr, length, regs, m.Len()) {
		return nil, NewVMError(PanicMemoryOwnership, 0, 0)
	}
	return m.buf[addr : addr+length], nil
}

// CopyWithin copies length bytes from src to dst. dst must be owned; src
// must be readable. Overlapping ranges are permitted only when dst <= src;
// any other overlap fails MemoryOverflow.
func (m *Memory) CopyWithin(dst, src, length Word, regs OwnershipRegisters) *VMError {
	if length > MemMaxAccessSize {
		return NewVMError(PanicMemoryAccessSize, 0, 0)
	}
	if !readableRange(src, length, regs, m.Len()) {
		return NewVMError(PanicMemoryAccess, 0, 0)
	}
	if !ownedRange(dst, length, regs, m.Len()) {
		return NewVMError(PanicMemoryOwnership, 0, 0)
	}
	if length == 0 {
		return nil
	}
	dstEnd, _ := addWord(dst, length)
	srcEnd, _ := addWord(src, length)
	overlaps := dst < srcEnd && src < dstEnd
	if overlaps && dst > src {
		return NewVMError(PanicMemoryOverflow, 0, 0)
	}
	copy(m.buf[dst:dst+length], m.buf[src:src+length])
	return nil
}

// pageCount returns ceil(n / MEM_PAGE_SIZE).
func pageCount(n Word) Word {
	if n == 0 {
		return 0
	}
	return (n + MemPageSize - 1) / MemPageSize
}

// UpdateAllocations reconciles the allocated-page count with the region
// [0,sp) ∪ [hp,MAX) implied by new stack/heap pointers, and returns the
// number of pages newly brought under allocation (never negative; the VM
// only grows). It fails MemoryOverflow if sp > hp, since the stack and
// heap would otherwise overlap.
func (m *Memory) UpdateAllocations(sp, hp Word) (Word, *VMError) {
	if sp > hp {
		return 0, NewVMError(PanicMemoryOverflow, 0, 0)
	}
	covered := pageCount(sp) + pageCount(m.Len()-hp)
	if covered <= m.allocatedPages {
		return 0, nil
	}
	newPages := covered - m.allocatedPages
	m.allocatedPages = covered
	return newPages, nil
}

// GrowStack advances SSP by length, provided SSP+length does not pass SP.
func GrowStack(ssp, sp, length Word) (Word, *VMError) {
	next, ok := addWord(ssp, length)
	if !ok || next > sp {
		return 0, NewVMError(PanicMemoryOverflow, 0, 0)
	}
	return next, nil
}

// ReadBytes32 reads a fixed 32-byte value, typically a ContractId, AssetId
// or generic digest.
func (m *Memory) ReadBytes32(addr Word, regs OwnershipRegisters) (fueltypes.Bytes32, *VMError) {
	raw, err := m.Read(addr, fueltypes.Bytes32Length, regs)
	if err != nil {
		return fueltypes.Bytes32{}, err
	}
	return fueltypes.BytesToBytes32(raw), nil
}

// WriteBytes32 writes a fixed 32-byte value at addr.
func (m *Memory) WriteBytes32(addr Word, v fueltypes.Bytes32, regs OwnershipRegisters) *VMError {
	dst, err := m.Write(addr, fueltypes.Bytes32Length, regs)
	if err != nil {
		return err
	}
	copy(dst, v.Bytes())
	return nil
}

// ReadWord reads a big-endian 8-byte Word at addr.
func (m *Memory) ReadWord(addr Word, regs OwnershipRegisters) (Word, *VMError) {
	raw, err := m.Read(addr, WordSize, regs)
	if err != nil {
		return 0, err
	}
	var w Word
	for _, b := range raw {
		w = w<<8 | Word(b)
	}
	return w, nil
}

// WriteWord writes a big-endian 8-byte Word at addr.
func (m *Memory) WriteWord(addr Word, value Word, regs OwnershipRegisters) *VMError {
	dst, err := m.Write(addr, WordSize, regs)
	if err != nil {
		return err
	}
	for i := 0; i < WordSize; i++ {
		dst[WordSize-1-i] = byte(value >> (8 * i))
	}
	return nil
}

// ReadByte reads a single byte at addr.
func (m *Memory) ReadByte(addr Word, regs OwnershipRegisters) (byte, *VMError) {
	raw, err := m.Read(addr, 1, regs)
	if err != nil {
		return 0, err
	}
	return raw[0], nil
}

// WriteByte writes a single byte at addr.
func (m *Memory) WriteByte(addr Word, value byte, regs OwnershipRegisters) *VMError {
	dst, err := m.Write(addr, 1, regs)
	if err != nil {
		return err
	}
	dst[0] = value
	return nil
}
