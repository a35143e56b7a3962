package fuelvm

import "testing"

func newSys(cgas, ggas Word) (*RegisterFile, *SystemRegisters) {
	rf := NewRegisterFile(VMMaxRAM)
	sys, _ := rf.Split()
	*sys.CGAS = cgas
	*sys.GGAS = ggas
	return &rf, sys
}

func TestChargeFlatSufficientGas(t *testing.T) {
	_, sys := newSys(100, 500)
	var meter GasMeter
	if err := meter.ChargeFlat(sys, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *sys.CGAS != 90 || *sys.GGAS != 490 {
		t.Fatalf("expected cgas=90 ggas=490, got cgas=%d ggas=%d", *sys.CGAS, *sys.GGAS)
	}
}

func TestChargeFlatOutOfGas(t *testing.T) {
	_, sys := newSys(5, 500)
	var meter GasMeter
	err := meter.ChargeFlat(sys, 10)
	if err == nil || err.Reason != PanicOutOfGas {
		t.Fatalf("expected PanicOutOfGas, got %v", err)
	}
	if *sys.CGAS != 0 {
		t.Fatalf("CGAS should be zeroed, got %d", *sys.CGAS)
	}
	if *sys.GGAS != 495 {
		t.Fatalf("GGAS should be reduced by the spent CGAS (5), got %d", *sys.GGAS)
	}
}

func TestChargeDependentSaturates(t *testing.T) {
	_, sys := newSys(^Word(0), ^Word(0))
	var meter GasMeter
	cost := DependentCost{Base: 1, PerUnit: ^Word(0)}
	if err := meter.ChargeDependent(sys, cost, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The charge itself should have saturated rather than silently wrapped,
	// so CGAS should be reduced to exactly 0 (it started at max).
	if *sys.CGAS != 0 {
		t.Fatalf("expected saturated charge to exhaust all gas, got %d", *sys.CGAS)
	}
}

func TestChargeMemoryPagesZeroIsNoop(t *testing.T) {
	_, sys := newSys(100, 100)
	var meter GasMeter
	if err := meter.ChargeMemoryPages(sys, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *sys.CGAS != 100 {
		t.Fatalf("expected no charge, got cgas=%d", *sys.CGAS)
	}
}

func TestChargeMemoryPagesCharges(t *testing.T) {
	_, sys := newSys(100, 100)
	var meter GasMeter
	if err := meter.ChargeMemoryPages(sys, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *sys.CGAS != 100-3*GasMemoryPage {
		t.Fatalf("unexpected cgas after page charge: %d", *sys.CGAS)
	}
}

func TestSplitCallGasClampsToAvailable(t *testing.T) {
	forward, retained := SplitCallGas(100, 1000)
	if forward != 100 || retained != 0 {
		t.Fatalf("expected forward=100 retained=0, got forward=%d retained=%d", forward, retained)
	}
}

func TestSplitCallGasSplitsNormally(t *testing.T) {
	forward, retained := SplitCallGas(100, 40)
	if forward != 40 || retained != 60 {
		t.Fatalf("expected forward=40 retained=60, got forward=%d retained=%d", forward, retained)
	}
}

func TestMergeReturnGasAddsBack(t *testing.T) {
	if got := MergeReturnGas(60, 25); got != 85 {
		t.Fatalf("expected 85, got %d", got)
	}
}

func TestDependentCostChargeZeroUnits(t *testing.T) {
	c := DependentCost{Base: 7, PerUnit: 5}
	if got := c.Charge(0); got != 7 {
		t.Fatalf("expected base-only charge of 7, got %d", got)
	}
}

func TestDependentCostChargeScalesWithUnits(t *testing.T) {
	c := DependentCost{Base: 7, PerUnit: 5}
	if got := c.Charge(3); got != 22 {
		t.Fatalf("expected 7+5*3=22, got %d", got)
	}
}
