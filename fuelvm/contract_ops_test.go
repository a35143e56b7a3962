package fuelvm

import (
	"testing"

	"github.com/fuellabs/fuelvm/fueltypes"
)

func TestBheiReadsStorageBlockHeight(t *testing.T) {
	vm := newStandaloneVM(t, NewMemStorage(77, testContractID(0), 0))
	if err := vm.execContract(Instruction{Op: OpBHEI, RA: 16}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vm.Registers.Get(16) != 77 {
		t.Fatalf("expected block height 77, got %d", vm.Registers.Get(16))
	}
}

func TestCbReadsCoinbase(t *testing.T) {
	coinbase := testContractID(0x5)
	vm := newStandaloneVM(t, NewMemStorage(0, coinbase, 0))
	sys, _ := vm.sys()
	if err := vm.growStack(sys, 32); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	addr := *sys.SP - 32
	vm.Registers.SetUser(16, addr)

	if err := vm.execCb(sys, Instruction{RA: 16}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ownership := vm.ownership(*sys.HP)
	out, rerr := vm.Memory.Read(addr, fueltypes.ContractIDLen, ownership)
	if rerr != nil {
		t.Fatalf("unexpected read error: %v", rerr)
	}
	if fueltypes.BytesToContractId(out) != coinbase {
		t.Fatalf("expected coinbase to round-trip through memory")
	}
}

func TestMintThenBalReflectsMintedAsset(t *testing.T) {
	vm := newStandaloneVM(t, NewMemStorage(0, testContractID(0), 0))
	vm.InputContracts = []fueltypes.ContractId{{}}
	sys, _ := vm.sys()
	if err := vm.growStack(sys, 96); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base := *sys.SP - 96
	subIDAddr, assetAddr, contractAddr := base, base+32, base+64

	ownership := vm.ownership(*sys.HP)
	if _, werr := vm.Memory.Write(subIDAddr, 32, ownership); werr != nil {
		t.Fatalf("unexpected error: %v", werr)
	}

	vm.Registers.SetUser(16, 500) // amount
	vm.Registers.SetUser(17, subIDAddr)
	if err := vm.execMintBurn(sys, Instruction{RA: 16, RB: 17}, true); err != nil {
		t.Fatalf("unexpected mint error: %v", err)
	}
	if vm.Receipts.All()[0].Kind != ReceiptMint || vm.Receipts.All()[0].Amount != 500 {
		t.Fatalf("unexpected mint receipt: %+v", vm.Receipts.All()[0])
	}
	mintedAsset := vm.Receipts.All()[0].Asset

	assetBuf, werr := vm.Memory.Write(assetAddr, 32, ownership)
	if werr != nil {
		t.Fatalf("unexpected error: %v", werr)
	}
	copy(assetBuf, mintedAsset.Bytes())
	contractBuf, werr := vm.Memory.Write(contractAddr, fueltypes.ContractIDLen, ownership)
	if werr != nil {
		t.Fatalf("unexpected error: %v", werr)
	}
	copy(contractBuf, fueltypes.ContractId{}.Bytes())

	vm.Registers.SetUser(18, assetAddr)
	vm.Registers.SetUser(19, contractAddr)
	if err := vm.execBal(sys, Instruction{RA: 16, RB: 18, RC: 19}); err != nil {
		t.Fatalf("unexpected bal error: %v", err)
	}
	if vm.Registers.Get(16) != 500 {
		t.Fatalf("expected minted balance 500, got %d", vm.Registers.Get(16))
	}
}

func TestBurnMoreThanMintedFailsWithNotEnoughBalance(t *testing.T) {
	vm := newStandaloneVM(t, NewMemStorage(0, testContractID(0), 0))
	sys, _ := vm.sys()
	if err := vm.growStack(sys, 32); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	subIDAddr := *sys.SP - 32

	vm.Registers.SetUser(16, 10)
	vm.Registers.SetUser(17, subIDAddr)
	err := vm.execMintBurn(sys, Instruction{RA: 16, RB: 17}, false)
	if err == nil || err.Reason != PanicNotEnoughBalance {
		t.Fatalf("expected PanicNotEnoughBalance, got %v", err)
	}
}

func TestTrRejectsZeroAmount(t *testing.T) {
	vm := newStandaloneVM(t, NewMemStorage(0, testContractID(0), 0))
	vm.InputContracts = []fueltypes.ContractId{{}}
	sys, _ := vm.sys()
	if err := vm.growStack(sys, 32); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	addr := *sys.SP - 32
	vm.Registers.SetUser(16, addr)
	vm.Registers.SetUser(17, 0)

	err := vm.execTr(sys, Instruction{RA: 16, RB: 17, RC: 16})
	if err == nil || err.Reason != PanicTransferAmountCannotBeZero {
		t.Fatalf("expected PanicTransferAmountCannotBeZero, got %v", err)
	}
}
