package fuelvm

// Gas cost tiers. Flat costs are a constant charge per opcode; dependent
// costs scale with a register-supplied unit count (memory clears/copies,
// log data, contract loads and code copies, storage range ops, message
// output). Values follow the same order of magnitude as the reference cost
// table: single-digit base costs for ALU ops, tens for storage, balance and
// transfer ops, low hundreds for CALL and the curve-point op, and thousands
// for signature verification and the pairing check.
const (
	GasAdd  Word = 2
	GasAnd  Word = 2
	GasDiv  Word = 2
	GasEq   Word = 2
	GasExp  Word = 6
	GasGt   Word = 2
	GasLt   Word = 2
	GasMlog Word = 3
	GasMod  Word = 2
	GasMove Word = 1
	GasMroo Word = 5
	GasMul  Word = 3
	GasNoop Word = 1
	GasNot  Word = 1
	GasOr   Word = 2
	GasSll  Word = 2
	GasSrl  Word = 2
	GasSub  Word = 2
	GasXor  Word = 2

	GasJi   Word = 6
	GasJnei Word = 7
	GasJnzi Word = 7
	GasJmp  Word = 6
	GasJne  Word = 7
	GasRet  Word = 13
	GasRetd Word = 29
	GasRvrt Word = 13

	GasWdcm Word = 18
	GasWqcm Word = 18
	GasWdop Word = 3
	GasWqop Word = 4
	GasWdml Word = 4
	GasWqml Word = 5
	GasWddv Word = 5
	GasWqdv Word = 6
	GasWdmd Word = 7
	GasWqmd Word = 8
	GasWdam Word = 9
	GasWqam Word = 10
	GasWdmm Word = 9
	GasWqmm Word = 10

	GasLog  Word = 9
	GasTime Word = 2
	GasEcal Word = 11

	GasAloc Word = 2
	GasCfei Word = 2
	GasCfsi Word = 2
	GasLb   Word = 3
	GasLw   Word = 3
	GasMeq  Word = 3
	GasSb   Word = 3
	GasSw   Word = 3

	GasBal  Word = 26
	GasBhei Word = 2
	GasBhsh Word = 3
	GasBurn Word = 33
	GasCall Word = 162
	GasCb   Word = 2
	GasCroo Word = 16
	GasCsiz Word = 17
	GasMint Word = 35

	GasSrw  Word = 53
	GasSww  Word = 67
	GasFlag Word = 1
	GasGm   Word = 2
	GasGtf  Word = 2
	GasTr   Word = 33
	GasTro  Word = 33

	GasEcr1  Word = 3000
	GasEck1  Word = 3350
	GasEd19  Word = 3000
	GasK256  Word = 11
	GasS256  Word = 10
	GasEcop  Word = 600
	GasEpar  Word = 14000

	// MemoryPage is charged per newly-allocated page after an SP/HP change.
	GasMemoryPage Word = 1
)

// DependentCost models a cost of the shape base + per_unit*units, used for
// instructions whose work scales with an explicit register operand:
// MCL/MCLI/MCP/MCPI (memory clear/copy), LDC (contract load), logs,
// SCWQ/SRWQ/SWWQ/SMO (storage and message ranges).
type DependentCost struct {
	Base    Word
	PerUnit Word
}

// Charge computes base + per_unit*units, saturating at Word's maximum
// value instead of overflowing.
func (d DependentCost) Charge(units Word) Word {
	if units == 0 {
		return d.Base
	}
	product, ok := mulWordSat(d.PerUnit, units)
	if !ok {
		return ^Word(0)
	}
	sum, ok := addWord(d.Base, product)
	if !ok {
		return ^Word(0)
	}
	return sum
}

func mulWordSat(a, b Word) (Word, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/a != b {
		return ^Word(0), false
	}
	return p, true
}

var (
	GasMcl  = DependentCost{Base: 2, PerUnit: 1}
	GasMcli = DependentCost{Base: 2, PerUnit: 1}
	GasMcp  = DependentCost{Base: 3, PerUnit: 1}
	GasMcpi = DependentCost{Base: 3, PerUnit: 1}
	GasLdc  = DependentCost{Base: 40, PerUnit: 1}
	GasLogd = DependentCost{Base: 40, PerUnit: 1}
	GasScwq = DependentCost{Base: 30, PerUnit: 60}
	GasSrwq = DependentCost{Base: 40, PerUnit: 60}
	GasSwwq = DependentCost{Base: 50, PerUnit: 60}
	GasSmo  = DependentCost{Base: 64, PerUnit: 1}
	GasCcp  = DependentCost{Base: 20, PerUnit: 1}
)

// GasMeter enforces CGAS <= GGAS and converts instruction costs and
// memory-page growth into register deductions.
type GasMeter struct{}

// ChargeFlat deducts a constant cost from CGAS. If CGAS is insufficient,
// GGAS is reduced by CGAS's pre-charge value, CGAS is zeroed (so the
// caller spends exactly what it could afford, and the global total
// reflects the same deduction) and OutOfGas is reported.
func (GasMeter) ChargeFlat(sys *SystemRegisters, cost Word) *VMError {
	return chargeGas(sys, cost)
}

// ChargeDependent deducts a DependentCost computed over units.
func (GasMeter) ChargeDependent(sys *SystemRegisters, cost DependentCost, units Word) *VMError {
	return chargeGas(sys, cost.Charge(units))
}

func chargeGas(sys *SystemRegisters, cost Word) *VMError {
	if *sys.CGAS >= cost {
		*sys.CGAS -= cost
		*sys.GGAS -= cost
		return nil
	}
	*sys.GGAS -= *sys.CGAS
	*sys.CGAS = 0
	return NewVMError(PanicOutOfGas, *sys.PC, *sys.IS)
}

// ChargeMemoryPages charges newPages*gas_costs.memory_page against CGAS,
// using the same insufficient-gas behavior as ChargeFlat.
func (m GasMeter) ChargeMemoryPages(sys *SystemRegisters, newPages Word) *VMError {
	if newPages == 0 {
		return nil
	}
	cost, ok := mulWordSat(newPages, GasMemoryPage)
	if !ok {
		cost = ^Word(0)
	}
	return chargeGas(sys, cost)
}

// SplitCallGas computes the CGAS forwarded to a callee and the CGAS the
// caller retains, per the CALL gas-transfer rule: the caller nominates a
// forward amount (clamped to its own CGAS); the remainder stays behind and
// is preserved across the call. GGAS is untouched since it is shared by
// both sides of the call.
func SplitCallGas(callerCGAS, requestedForward Word) (forward, retained Word) {
	if requestedForward > callerCGAS {
		requestedForward = callerCGAS
	}
	return requestedForward, callerCGAS - requestedForward
}

// MergeReturnGas adds the callee's unused CGAS back into the caller's CGAS
// on RET. GGAS is not touched since it was never transferred.
func MergeReturnGas(callerCGAS, calleeUnusedCGAS Word) Word {
	sum, ok := addWord(callerCGAS, calleeUnusedCGAS)
	if !ok {
		return ^Word(0)
	}
	return sum
}
