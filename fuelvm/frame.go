package fuelvm

import "github.com/fuellabs/fuelvm/fueltypes"

// FrameState tags a CallFrame's position in its lifecycle.
type FrameState uint8

const (
	FrameCreated FrameState = iota
	FrameRunning
	FrameReturned
	FrameReverted
	FramePanicked
)

func (s FrameState) String() string {
	switch s {
	case FrameCreated:
		return "Created"
	case FrameRunning:
		return "Running"
	case FrameReturned:
		return "Returned"
	case FrameReverted:
		return "Reverted"
	case FramePanicked:
		return "Panicked"
	default:
		return "Unknown"
	}
}

// CallFrame is the record pushed onto the VM's own memory stack at FP on
// CALL, serialized in exactly CallFrameSerializedSize bytes:
// ContractId(32) | AssetId(32) | Registers(64*8) | CodeSize(8) | ArgA(8) | ArgB(8).
// There is no separate host-side call stack; the frame lives in VM memory
// itself, which is why Push/Pop operate on a Memory rather than a Go slice.
type CallFrame struct {
	To        fueltypes.ContractId
	AssetID   fueltypes.AssetId
	Registers RegisterFile
	CodeSize  Word
	ArgA      Word
	ArgB      Word

	State FrameState
}

// Encode serializes the frame into exactly CallFrameSerializedSize bytes.
func (f *CallFrame) Encode() []byte {
	out := make([]byte, CallFrameSerializedSize)
	off := 0
	copy(out[off:], f.To.Bytes())
	off += fueltypes.ContractIDLen
	copy(out[off:], f.AssetID.Bytes())
	off += fueltypes.AssetIDLen
	for i := 0; i < VMRegisterCount; i++ {
		putWordBE(out[off:off+WordSize], f.Registers[i])
		off += WordSize
	}
	putWordBE(out[off:off+WordSize], f.CodeSize)
	off += WordSize
	putWordBE(out[off:off+WordSize], f.ArgA)
	off += WordSize
	putWordBE(out[off:off+WordSize], f.ArgB)
	off += WordSize
	return out
}

// DecodeCallFrame parses exactly CallFrameSerializedSize bytes back into a
// CallFrame.
func DecodeCallFrame(raw []byte) *CallFrame {
	f := &CallFrame{}
	off := 0
	f.To = fueltypes.BytesToContractId(raw[off : off+fueltypes.ContractIDLen])
	off += fueltypes.ContractIDLen
	f.AssetID = fueltypes.BytesToAssetId(raw[off : off+fueltypes.AssetIDLen])
	off += fueltypes.AssetIDLen
	for i := 0; i < VMRegisterCount; i++ {
		f.Registers[i] = getWordBE(raw[off : off+WordSize])
		off += WordSize
	}
	f.CodeSize = getWordBE(raw[off : off+WordSize])
	off += WordSize
	f.ArgA = getWordBE(raw[off : off+WordSize])
	off += WordSize
	f.ArgB = getWordBE(raw[off : off+WordSize])
	off += WordSize
	return f
}

func putWordBE(dst []byte, v Word) {
	for i := 0; i < WordSize; i++ {
		dst[WordSize-1-i] = byte(v >> (8 * i))
	}
}

func getWordBE(src []byte) Word {
	var w Word
	for _, b := range src {
		w = w<<8 | Word(b)
	}
	return w
}

// PreservedOnReturn are the system registers restored from the frame on
// RET/RETD/RVRT; GGAS and CGAS are excluded since gas accounting happens
// through the transfer rules in gas.go instead of a raw restore.
func PreservedOnReturn(frame *CallFrame, sys *SystemRegisters) {
	fsys, _ := frame.Registers.Split()
	*sys.Zero = *fsys.Zero
	*sys.One = *fsys.One
	*sys.OF = *fsys.OF
	*sys.PC = *fsys.PC
	*sys.IS = *fsys.IS
	*sys.SSP = *fsys.SSP
	*sys.SP = *fsys.SP
	*sys.FP = *fsys.FP
	*sys.HP = *fsys.HP
	*sys.ERR = *fsys.ERR
	*sys.BAL = *fsys.BAL
	*sys.RET = *fsys.RET
	*sys.RETL = *fsys.RETL
	*sys.FLAG = *fsys.FLAG
}

// CallFrameStack tracks nesting depth against MaxCallFrames; the frames
// themselves live in VM memory (see CallFrame.Encode), this only counts
// how many are currently pushed so CALL can enforce the depth limit.
type CallFrameStack struct {
	depth int
}

// Push increments the nesting depth, failing if it would exceed
// MaxCallFrames.
func (s *CallFrameStack) Push() *VMError {
	if s.depth >= MaxCallFrames {
		return NewVMError(PanicMemoryOverflow, 0, 0)
	}
	s.depth++
	return nil
}

// Pop decrements the nesting depth; it is a Bug (not a Panic) to pop past
// zero, since the dispatcher should never call Pop without a matching Push.
func (s *CallFrameStack) Pop() *VMBug {
	if s.depth == 0 {
		return NewVMBug(BugFrameStackUnderflow)
	}
	s.depth--
	return nil
}

// Depth returns the current nesting depth.
func (s *CallFrameStack) Depth() int { return s.depth }
