package fuelvm

import (
	"testing"

	"github.com/fuellabs/fuelvm/fueltypes"
)

func TestCallFrameEncodeDecodeRoundTrip(t *testing.T) {
	var contractBytes, assetBytes [32]byte
	for i := range contractBytes {
		contractBytes[i] = byte(i)
		assetBytes[i] = byte(64 - i)
	}
	f := &CallFrame{
		To:      fueltypes.BytesToContractId(contractBytes[:]),
		AssetID: fueltypes.BytesToAssetId(assetBytes[:]),
		CodeSize: 1024,
		ArgA:     7,
		ArgB:     9,
	}
	f.Registers = NewRegisterFile(VMMaxRAM)
	f.Registers[20] = 0xdeadbeef

	encoded := f.Encode()
	if len(encoded) != CallFrameSerializedSize {
		t.Fatalf("expected %d bytes, got %d", CallFrameSerializedSize, len(encoded))
	}

	decoded := DecodeCallFrame(encoded)
	if decoded.To != f.To {
		t.Fatal("ContractId did not round-trip")
	}
	if decoded.AssetID != f.AssetID {
		t.Fatal("AssetId did not round-trip")
	}
	if decoded.CodeSize != 1024 || decoded.ArgA != 7 || decoded.ArgB != 9 {
		t.Fatalf("scalar fields did not round-trip: %+v", decoded)
	}
	if decoded.Registers[20] != 0xdeadbeef {
		t.Fatalf("register snapshot did not round-trip: %x", decoded.Registers[20])
	}
}

func TestPreservedOnReturnRestoresSystemRegistersExceptGas(t *testing.T) {
	frame := &CallFrame{Registers: NewRegisterFile(VMMaxRAM)}
	fsys, _ := frame.Registers.Split()
	*fsys.PC = 400
	*fsys.SP = 800
	*fsys.GGAS = 111 // must NOT be restored
	*fsys.CGAS = 222 // must NOT be restored

	rf := NewRegisterFile(VMMaxRAM)
	sys, _ := rf.Split()
	*sys.GGAS = 999
	*sys.CGAS = 999

	PreservedOnReturn(frame, sys)

	if *sys.PC != 400 || *sys.SP != 800 {
		t.Fatalf("expected restored PC/SP, got pc=%d sp=%d", *sys.PC, *sys.SP)
	}
	if *sys.GGAS != 999 || *sys.CGAS != 999 {
		t.Fatalf("GGAS/CGAS must be untouched by frame restore, got ggas=%d cgas=%d", *sys.GGAS, *sys.CGAS)
	}
}

func TestCallFrameStackDepthLimit(t *testing.T) {
	var s CallFrameStack
	for i := 0; i < MaxCallFrames; i++ {
		if err := s.Push(); err != nil {
			t.Fatalf("unexpected error at depth %d: %v", i, err)
		}
	}
	if err := s.Push(); err == nil {
		t.Fatal("expected failure exceeding MaxCallFrames")
	}
}

func TestCallFrameStackPopUnderflowIsBug(t *testing.T) {
	var s CallFrameStack
	if bug := s.Pop(); bug == nil {
		t.Fatal("expected a bug popping an empty frame stack")
	}
}
