package fuelvm

import (
	"testing"

	"github.com/fuellabs/fuelvm/fueltypes"
)

func runSingleInstruction(t *testing.T, cfg *Config, ctx Context, words []uint32, ra uint8) (Word, *Receipt) {
	t.Helper()
	script := make([]byte, len(words)*InstructionSize)
	for i, w := range words {
		writeWord(script, Word(i*InstructionSize), w)
	}
	txBytes := EncodeScriptTransaction(7, 11, 0, 0, 0, script, nil)

	storage := NewMemStorage(0, fueltypes.ContractId{}, 0)
	vm := NewInterpreter(cfg, storage, VMMaxRAM)
	if ctx.Kind == ContextPredicate {
		ctx.PredicateProgramStart = Word(fueltypes.Bytes32Length+WordSize) + txHeaderSize
		ctx.PredicateProgramLength = Word(len(script))
	} else {
		ctx = Context{Kind: ctx.Kind, BlockHeight: storage.BlockHeight()}
	}
	vm.Init(InitParams{
		TxID:     TxIDFromBytes(txBytes),
		TxBytes:  txBytes,
		Context:  ctx,
		GasLimit: 1_000_000,
	})
	vm.step()
	var last *Receipt
	if n := vm.Receipts.Len(); n > 0 {
		r := vm.Receipts.All()[n-1]
		last = &r
	}
	return vm.Registers.Get(ra), last
}

func TestGmIsCallerExternalAtOutermostFrame(t *testing.T) {
	val, _ := runSingleInstruction(t, NewConfig(), Context{Kind: ContextScript},
		[]uint32{asmReg1Imm18(OpGM, 16, uint32(GMIsCallerExternal))}, 16)
	if val != 1 {
		t.Fatalf("expected the outermost script frame to report itself external, got %d", val)
	}
}

func TestGmGetChainID(t *testing.T) {
	cfg := NewConfig()
	cfg.ChainID = 42
	val, _ := runSingleInstruction(t, cfg, Context{Kind: ContextScript},
		[]uint32{asmReg1Imm18(OpGM, 16, uint32(GMGetChainID))}, 16)
	if val != 42 {
		t.Fatalf("expected chain id 42, got %d", val)
	}
}

func TestGmGetVerifyingPredicateRejectedOutsidePredicateContext(t *testing.T) {
	_, receipt := runSingleInstruction(t, NewConfig(), Context{Kind: ContextScript},
		[]uint32{asmReg1Imm18(OpGM, 16, uint32(GMGetVerifyingPredicate))}, 16)
	if receipt == nil || receipt.Kind != ReceiptPanic || receipt.Reason != PanicExpectedInternalContext {
		t.Fatalf("expected a PanicExpectedInternalContext receipt, got %+v", receipt)
	}
}

func TestGmGetVerifyingPredicateReturnsInputIndex(t *testing.T) {
	val, _ := runSingleInstruction(t, NewConfig(), Context{Kind: ContextPredicate, InputIndex: 3},
		[]uint32{asmReg1Imm18(OpGM, 16, uint32(GMGetVerifyingPredicate))}, 16)
	if val != 3 {
		t.Fatalf("expected the predicate's input index (3), got %d", val)
	}
}

func TestGmRejectsSystemRegisterDestination(t *testing.T) {
	_, receipt := runSingleInstruction(t, NewConfig(), Context{Kind: ContextScript},
		[]uint32{asmReg1Imm18(OpGM, RegPC, uint32(GMIsCallerExternal))}, RegPC)
	if receipt == nil || receipt.Kind != ReceiptPanic || receipt.Reason != PanicReservedRegisterNotWritable {
		t.Fatalf("expected PanicReservedRegisterNotWritable, got %+v", receipt)
	}
}

func TestGtfReadsScalarFields(t *testing.T) {
	val, receipt := runSingleInstruction(t, NewConfig(), Context{Kind: ContextScript},
		[]uint32{asmReg2Imm12(OpGTF, 16, 0, uint32(GTFGasPrice))}, 16)
	if receipt != nil && receipt.Kind == ReceiptPanic {
		t.Fatalf("unexpected panic: %v", receipt.Reason)
	}
	if val != 7 {
		t.Fatalf("expected the gas price field (7), got %d", val)
	}
}

func TestGtfUnknownSelectorPanics(t *testing.T) {
	_, receipt := runSingleInstruction(t, NewConfig(), Context{Kind: ContextScript},
		[]uint32{asmReg2Imm12(OpGTF, 16, 0, 0xfff)}, 16)
	if receipt == nil || receipt.Kind != ReceiptPanic || receipt.Reason != PanicInvalidMetadataIdentifier {
		t.Fatalf("expected PanicInvalidMetadataIdentifier, got %+v", receipt)
	}
}

func TestGtfScriptLengthMatchesEncodedScript(t *testing.T) {
	words := []uint32{
		asmReg2Imm12(OpGTF, 16, 0, uint32(GTFScriptLength)),
		asmReg1Imm18(OpRET, 16, 0),
	}
	val, _ := runSingleInstruction(t, NewConfig(), Context{Kind: ContextScript}, words, 16)
	if val != Word(len(words)*InstructionSize) {
		t.Fatalf("expected script length %d, got %d", len(words)*InstructionSize, val)
	}
}
