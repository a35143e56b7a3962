package fuelvm

import "testing"

func encodeWord(op Opcode, operand uint32) uint32 {
	return uint32(op)<<24 | (operand & 0x00ffffff)
}

func TestDecodeReg3Form(t *testing.T) {
	operand := uint32(5)<<18 | uint32(10)<<12 | uint32(20)<<6
	in, err := Decode(encodeWord(OpADD, operand), 0, 0)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if in.Op != OpADD || in.RA != 5 || in.RB != 10 || in.RC != 20 {
		t.Fatalf("unexpected decode: %+v", in)
	}
}

func TestDecodeReg2Imm12Form(t *testing.T) {
	operand := uint32(7)<<18 | uint32(3)<<12 | uint32(0xabc)
	in, err := Decode(encodeWord(OpADDI, operand), 0, 0)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if in.RA != 7 || in.RB != 3 || in.Imm != 0xabc {
		t.Fatalf("unexpected decode: %+v", in)
	}
}

func TestDecodeReg1Imm18Form(t *testing.T) {
	operand := uint32(9)<<18 | uint32(0x3ffff)
	in, err := Decode(encodeWord(OpMOVI, operand), 0, 0)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if in.RA != 9 || in.Imm != 0x3ffff {
		t.Fatalf("unexpected decode: %+v", in)
	}
}

func TestDecodeImm24Form(t *testing.T) {
	in, err := Decode(encodeWord(OpJI, 0x123456), 0, 0)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if in.Imm != 0x123456 {
		t.Fatalf("unexpected decode: %+v", in)
	}
}

func TestDecodeReg4Form(t *testing.T) {
	operand := uint32(1)<<18 | uint32(2)<<12 | uint32(3)<<6 | uint32(4)
	in, err := Decode(encodeWord(OpMEQ, operand), 0, 0)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if in.RA != 1 || in.RB != 2 || in.RC != 3 || in.RD != 4 {
		t.Fatalf("unexpected decode: %+v", in)
	}
}

func TestDecodeUnknownOpcodePanics(t *testing.T) {
	_, err := Decode(uint32(0xff)<<24, 0, 0)
	if err == nil {
		t.Fatal("expected an error for an unrecognized opcode byte")
	}
	if err.Reason != PanicInvalidImmediateValue {
		t.Fatalf("expected PanicInvalidImmediateValue, got %v", err.Reason)
	}
}
