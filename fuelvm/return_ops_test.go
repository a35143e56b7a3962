package fuelvm

import (
	"testing"

	"github.com/fuellabs/fuelvm/fueltypes"
)

func TestCallLoadsCalleeCodeAndReturnUnwindsToCaller(t *testing.T) {
	storage := NewMemStorage(0, testContractID(0), 0)
	callee := testContractID(0x42)
	calleeCode := make([]byte, InstructionSize)
	writeWord(calleeCode, 0, asmReg1Imm18(OpRET, RegOne, 0))
	storage.StorageContractInsert(callee, calleeCode)

	vm := newStandaloneVM(t, storage)
	vm.InputContracts = []fueltypes.ContractId{callee}
	sys, _ := vm.sys()
	if err := vm.growStack(sys, 64); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base := *sys.SP - 64
	contractAddr, assetAddr := base, base+32

	ownership := vm.ownership(*sys.HP)
	contractBuf, werr := vm.Memory.Write(contractAddr, fueltypes.ContractIDLen, ownership)
	if werr != nil {
		t.Fatalf("unexpected error: %v", werr)
	}
	copy(contractBuf, callee.Bytes())
	assetBuf, werr := vm.Memory.Write(assetAddr, fueltypes.AssetIDLen, ownership)
	if werr != nil {
		t.Fatalf("unexpected error: %v", werr)
	}
	copy(assetBuf, fueltypes.AssetId{}.Bytes())

	vm.Registers.SetUser(16, contractAddr)
	vm.Registers.SetUser(17, 0) // amount to forward
	vm.Registers.SetUser(18, assetAddr)
	vm.Registers.SetUser(19, *sys.CGAS) // forward all remaining CGAS

	if err := vm.execCall(Instruction{Op: OpCALL, RA: 16, RB: 17, RC: 18, RD: 19}); err != nil {
		t.Fatalf("unexpected call error: %v", err)
	}
	if sys.IsExternal() {
		t.Fatalf("expected an active call frame after CALL")
	}
	codeStart := *sys.PC
	if *sys.IS != codeStart {
		t.Fatalf("expected IS == PC after CALL, IS=%d PC=%d", *sys.IS, codeStart)
	}
	loaded, rerr := vm.Memory.Read(codeStart, Word(len(calleeCode)), vm.ownership(*sys.HP))
	if rerr != nil {
		t.Fatalf("unexpected error reading loaded code: %v", rerr)
	}
	for i := range calleeCode {
		if loaded[i] != calleeCode[i] {
			t.Fatalf("expected callee code to be copied into memory at PC, got %x want %x", loaded, calleeCode)
		}
	}
	if vm.Receipts.All()[len(vm.Receipts.All())-1].Kind != ReceiptCall {
		t.Fatalf("expected a Call receipt")
	}

	// Execute the loaded RET instruction and confirm it unwinds back to the
	// caller's (external) context instead of halting the interpreter.
	if err := vm.step(); err != nil {
		t.Fatalf("unexpected step error: %v", err)
	}
	if !sys.IsExternal() {
		t.Fatalf("expected RET to unwind back to the external (no-frame) context")
	}
	if vm.Halted() {
		t.Fatalf("expected RET from a nested call to unwind rather than halt the interpreter")
	}
	receipts := vm.Receipts.All()
	if receipts[len(receipts)-1].Kind != ReceiptReturn {
		t.Fatalf("expected a trailing Return receipt, got %v", receipts[len(receipts)-1].Kind)
	}
}

func TestRetdHaltsWithDataRangeAtOutermostFrame(t *testing.T) {
	vm := newScriptVM(t, 1_000_000, nil, []uint32{
		asmReg2Imm12(OpADDI, 16, RegZero, 0),  // data pointer: tx id at address 0
		asmReg2Imm12(OpADDI, 17, RegZero, 8),  // data length: 8 bytes
		asmReg3(OpRETD, 16, 17, 0),
	})

	state := vm.Run()
	if state.Kind != StateReturnData {
		t.Fatalf("expected StateReturnData, got kind=%d", state.Kind)
	}
	if state.DataRange[0] != 0 || state.DataRange[1] != 8 {
		t.Fatalf("unexpected data range: %+v", state.DataRange)
	}
	if vm.Receipts.All()[0].Kind != ReceiptReturnData || vm.Receipts.All()[0].DataLength != 8 {
		t.Fatalf("unexpected receipt: %+v", vm.Receipts.All()[0])
	}
}

func TestSplitCallGasClampsToCallerBudget(t *testing.T) {
	forward, retained := SplitCallGas(100, 250)
	if forward != 100 || retained != 0 {
		t.Fatalf("expected a request above the caller's budget to clamp to it, got forward=%d retained=%d", forward, retained)
	}

	forward, retained = SplitCallGas(100, 40)
	if forward != 40 || retained != 60 {
		t.Fatalf("expected forward=40 retained=60, got forward=%d retained=%d", forward, retained)
	}
}

func TestMergeReturnGasSaturatesOnOverflow(t *testing.T) {
	sum := MergeReturnGas(^Word(0), 1)
	if sum != ^Word(0) {
		t.Fatalf("expected saturation to the max Word on overflow, got %d", sum)
	}
}
