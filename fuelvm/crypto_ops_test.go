package fuelvm

import (
	"testing"

	"github.com/fuellabs/fuelvm/fuelcrypto"
)

func TestS256HashesReferencedMemory(t *testing.T) {
	vm := newStandaloneVM(t, NewMemStorage(0, testContractID(0), 0))
	sys, _ := vm.sys()
	if err := vm.growStack(sys, 64); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base := *sys.SP - 64
	srcAddr, dstAddr := base, base+32

	ownership := vm.ownership(*sys.HP)
	src, werr := vm.Memory.Write(srcAddr, 8, ownership)
	if werr != nil {
		t.Fatalf("unexpected error: %v", werr)
	}
	copy(src, []byte("fuelvm!!"))

	vm.Registers.SetUser(16, dstAddr)
	vm.Registers.SetUser(17, srcAddr)
	vm.Registers.SetUser(18, 8)
	if err := vm.execCrypto(Instruction{Op: OpS256, RA: 16, RB: 17, RC: 18}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, rerr := vm.Memory.Read(dstAddr, 32, ownership)
	if rerr != nil {
		t.Fatalf("unexpected error: %v", rerr)
	}
	want := fuelcrypto.SHA256([]byte("fuelvm!!"))
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("expected sha256 digest %x, got %x", want, out)
		}
	}
}

func TestK256AndS256ProduceDifferentDigests(t *testing.T) {
	vm := newStandaloneVM(t, NewMemStorage(0, testContractID(0), 0))
	sys, _ := vm.sys()
	if err := vm.growStack(sys, 96); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base := *sys.SP - 96
	srcAddr, dstA, dstB := base, base+32, base+64

	ownership := vm.ownership(*sys.HP)
	src, werr := vm.Memory.Write(srcAddr, 4, ownership)
	if werr != nil {
		t.Fatalf("unexpected error: %v", werr)
	}
	copy(src, []byte("test"))

	vm.Registers.SetUser(16, dstA)
	vm.Registers.SetUser(17, srcAddr)
	vm.Registers.SetUser(18, 4)
	if err := vm.execCrypto(Instruction{Op: OpS256, RA: 16, RB: 17, RC: 18}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vm.Registers.SetUser(16, dstB)
	if err := vm.execCrypto(Instruction{Op: OpK256, RA: 16, RB: 17, RC: 18}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := vm.Memory.Read(dstA, 32, ownership)
	b, _ := vm.Memory.Read(dstB, 32, ownership)
	if bytesEqual(a, b) {
		t.Fatalf("expected sha256 and keccak256 digests to differ")
	}
}
