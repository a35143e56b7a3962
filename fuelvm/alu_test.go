package fuelvm

import "testing"

func freshSys() (*RegisterFile, *SystemRegisters, *Word) {
	rf := NewRegisterFile(VMMaxRAM)
	sys, user := rf.Split()
	return &rf, sys, &user[0]
}

func TestALUSetClearsOFAndERR(t *testing.T) {
	var alu ALU
	_, sys, dest := freshSys()
	*sys.OF = 7
	*sys.ERR = 1
	alu.Set(sys, dest, 42)
	if *dest != 42 || *sys.OF != 0 || *sys.ERR != 0 {
		t.Fatalf("unexpected state: dest=%d of=%d err=%d", *dest, *sys.OF, *sys.ERR)
	}
}

func TestALUCaptureOverflowNoOverflow(t *testing.T) {
	var alu ALU
	_, sys, dest := freshSys()
	if err := alu.CaptureOverflow(sys, dest, AddOp, 2, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *dest != 5 || *sys.OF != 0 {
		t.Fatalf("expected dest=5 of=0, got dest=%d of=%d", *dest, *sys.OF)
	}
}

func TestALUCaptureOverflowPanicsWithoutWrapping(t *testing.T) {
	var alu ALU
	_, sys, dest := freshSys()
	err := alu.CaptureOverflow(sys, dest, AddOp, ^Word(0), 1)
	if err == nil || err.Reason != PanicArithmeticOverflow {
		t.Fatalf("expected PanicArithmeticOverflow, got %v", err)
	}
	if *sys.OF == 0 {
		t.Fatal("OF should record the overflow even though the op panics")
	}
}

func TestALUCaptureOverflowWrappingSuppressesPanic(t *testing.T) {
	var alu ALU
	_, sys, dest := freshSys()
	*sys.FLAG = FlagWrapping
	if err := alu.CaptureOverflow(sys, dest, AddOp, ^Word(0), 1); err != nil {
		t.Fatalf("wrapping should suppress the panic: %v", err)
	}
	if *dest != 0 {
		t.Fatalf("expected wrapped low bits of 0, got %d", *dest)
	}
}

func TestALUBooleanOverflowShiftSaturatesToZero(t *testing.T) {
	var alu ALU
	_, sys, dest := freshSys()
	if err := alu.BooleanOverflow(sys, dest, ShlOp, 1, 64); err != nil {
		t.Fatalf("shift out of range should not panic: %v", err)
	}
	if *dest != 0 {
		t.Fatalf("expected saturate-to-zero, got %d", *dest)
	}
}

func TestALUBooleanOverflowShiftOverflowsPanics(t *testing.T) {
	var alu ALU
	_, sys, dest := freshSys()
	err := alu.BooleanOverflow(sys, dest, ShlOp, 1<<63, 1)
	if err == nil || err.Reason != PanicArithmeticOverflow {
		t.Fatalf("expected PanicArithmeticOverflow, got %v", err)
	}
}

func TestALUErrorOpDivByZeroPanicsWithoutUnsafe(t *testing.T) {
	var alu ALU
	_, sys, dest := freshSys()
	err := alu.ErrorOp(sys, dest, DivOp, 10, 0)
	if err == nil || err.Reason != PanicArithmeticError {
		t.Fatalf("expected PanicArithmeticError, got %v", err)
	}
	if *dest != 0 || *sys.ERR != 1 {
		t.Fatalf("expected dest=0 err=1, got dest=%d err=%d", *dest, *sys.ERR)
	}
}

func TestALUErrorOpDivByZeroUnsafeSuppressesPanic(t *testing.T) {
	var alu ALU
	_, sys, dest := freshSys()
	*sys.FLAG = FlagUnsafeMath
	if err := alu.ErrorOp(sys, dest, DivOp, 10, 0); err != nil {
		t.Fatalf("unsafe math should suppress the panic: %v", err)
	}
	if *dest != 0 || *sys.ERR != 1 {
		t.Fatalf("expected dest=0 err=1, got dest=%d err=%d", *dest, *sys.ERR)
	}
}

func TestALUErrorOpSuccessClearsERR(t *testing.T) {
	var alu ALU
	_, sys, dest := freshSys()
	*sys.ERR = 1
	if err := alu.ErrorOp(sys, dest, DivOp, 10, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *dest != 5 || *sys.ERR != 0 {
		t.Fatalf("expected dest=5 err=0, got dest=%d err=%d", *dest, *sys.ERR)
	}
}

func TestExpOpSmall(t *testing.T) {
	lo, hi := ExpOp(2, 10)
	if lo != 1024 || hi != 0 {
		t.Fatalf("expected 2**10=1024 no overflow, got lo=%d hi=%d", lo, hi)
	}
}

func TestExpOpOverflow(t *testing.T) {
	_, hi := ExpOp(2, 100)
	if hi == 0 {
		t.Fatal("expected overflow flag for 2**100")
	}
}

func TestMlogOp(t *testing.T) {
	if r, errCond := MlogOp(1000, 10); errCond || r != 3 {
		t.Fatalf("expected floor(log10(1000))=3, got %d err=%v", r, errCond)
	}
	if _, errCond := MlogOp(0, 10); !errCond {
		t.Fatal("expected error for log of zero")
	}
	if _, errCond := MlogOp(10, 1); !errCond {
		t.Fatal("expected error for base <= 1")
	}
}

func TestMrooOp(t *testing.T) {
	if r, errCond := MrooOp(27, 3); errCond || r != 3 {
		t.Fatalf("expected cube root of 27 = 3, got %d err=%v", r, errCond)
	}
	if r, errCond := MrooOp(30, 3); errCond || r != 3 {
		t.Fatalf("expected floor(cube root of 30) = 3, got %d err=%v", r, errCond)
	}
	if _, errCond := MrooOp(10, 0); !errCond {
		t.Fatal("expected error for root index 0")
	}
}

func TestBitwiseOps(t *testing.T) {
	if r, _ := AndOp(0b1100, 0b1010); r != 0b1000 {
		t.Fatalf("unexpected AND result: %b", r)
	}
	if r, _ := OrOp(0b1100, 0b1010); r != 0b1110 {
		t.Fatalf("unexpected OR result: %b", r)
	}
	if r, _ := XorOp(0b1100, 0b1010); r != 0b0110 {
		t.Fatalf("unexpected XOR result: %b", r)
	}
	if r, _ := NotOp(0, 0); r != ^Word(0) {
		t.Fatalf("unexpected NOT result: %d", r)
	}
}

func TestComparisonOps(t *testing.T) {
	if r, _ := EqOp(5, 5); r != 1 {
		t.Fatal("expected EqOp(5,5)=1")
	}
	if r, _ := LtOp(3, 5); r != 1 {
		t.Fatal("expected LtOp(3,5)=1")
	}
	if r, _ := GtOp(5, 3); r != 1 {
		t.Fatal("expected GtOp(5,3)=1")
	}
}
