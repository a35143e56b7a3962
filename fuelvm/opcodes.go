package fuelvm

import "fmt"

// Opcode identifies one instruction. The top 8 bits of every 32-bit
// instruction word are the opcode; the remaining 24 bits are sliced into
// operand fields per the instruction's Form (spec.md §6).
type Opcode uint8

const (
	OpNOOP Opcode = iota

	// ALU
	OpADD
	OpADDI
	OpSUB
	OpSUBI
	OpMUL
	OpMULI
	OpDIV
	OpDIVI
	OpMOD
	OpMODI
	OpEXP
	OpEXPI
	OpMLOG
	OpMROO
	OpSLL
	OpSLLI
	OpSRL
	OpSRLI
	OpAND
	OpANDI
	OpOR
	OpORI
	OpXOR
	OpXORI
	OpNOT
	OpEQ
	OpLT
	OpGT
	OpMOVE
	OpMOVI

	// Wide ALU
	OpWDCM
	OpWQCM
	OpWDOP
	OpWQOP
	OpWDML
	OpWQML
	OpWDDV
	OpWQDV
	OpWDMD
	OpWQMD
	OpWDAM
	OpWQAM
	OpWDMM
	OpWQMM

	// Control
	OpJI
	OpJNEI
	OpJNZI
	OpJMP
	OpJNE
	OpJNEF
	OpJNEB
	OpJMPF
	OpJMPB
	OpJNZF
	OpJNZB

	// Stack/Memory
	OpALOC
	OpCFEI
	OpCFE
	OpCFSI
	OpCFS
	OpMCL
	OpMCLI
	OpMCP
	OpMCPI
	OpMEQ
	OpLB
	OpLW
	OpSB
	OpSW
	OpPSHL
	OpPSHH
	OpPOPL
	OpPOPH

	// Return
	OpRET
	OpRETD
	OpRVRT

	// Crypto
	OpECK1
	OpECR1
	OpED19
	OpK256
	OpS256
	OpECOP
	OpEPAR

	// Contract
	OpBAL
	OpBHEI
	OpBHSH
	OpBURN
	OpMINT
	OpCALL
	OpCB
	OpCCP
	OpCROO
	OpCSIZ
	OpLDC
	OpTIME
	OpTR
	OpTRO

	// Contract state
	OpSRW
	OpSWW
	OpSRWQ
	OpSWWQ
	OpSCWQ

	// Transaction
	OpGM
	OpGTF

	// Messaging
	OpSMO

	// Flags
	OpFLAG

	// Logs
	OpLOG
	OpLOGD

	// Blob
	OpBSIZ
	OpBLDD

	// ECAL
	OpECAL

	opcodeCount
)

// InstructionForm selects which of the five canonical operand layouts an
// opcode's 24-bit operand field uses (spec.md §6).
type InstructionForm uint8

const (
	FormReg3      InstructionForm = iota // RA(6) RB(6) RC(6), 6 bits reserved
	FormReg2Imm12                        // RA(6) RB(6) Imm12(12)
	FormReg1Imm18                        // RA(6) Imm18(18)
	FormImm24                            // Imm24(24)
	FormReg4                             // RA(6) RB(6) RC(6) RD(6)
)

var opcodeForms = [opcodeCount]InstructionForm{
	OpNOOP: FormImm24,

	OpADD: FormReg3, OpSUB: FormReg3, OpMUL: FormReg3, OpDIV: FormReg3, OpMOD: FormReg3,
	OpEXP: FormReg3, OpMLOG: FormReg3, OpMROO: FormReg3, OpSLL: FormReg3, OpSRL: FormReg3,
	OpAND: FormReg3, OpOR: FormReg3, OpXOR: FormReg3, OpNOT: FormReg3, OpEQ: FormReg3,
	OpLT: FormReg3, OpGT: FormReg3, OpMOVE: FormReg3,

	OpADDI: FormReg2Imm12, OpSUBI: FormReg2Imm12, OpMULI: FormReg2Imm12, OpDIVI: FormReg2Imm12,
	OpMODI: FormReg2Imm12, OpEXPI: FormReg2Imm12, OpSLLI: FormReg2Imm12, OpSRLI: FormReg2Imm12,
	OpANDI: FormReg2Imm12, OpORI: FormReg2Imm12, OpXORI: FormReg2Imm12,

	OpMOVI: FormReg1Imm18,

	OpWDCM: FormReg2Imm12, OpWQCM: FormReg2Imm12, OpWDOP: FormReg2Imm12, OpWQOP: FormReg2Imm12,
	OpWDML: FormReg2Imm12, OpWQML: FormReg2Imm12, OpWDDV: FormReg2Imm12, OpWQDV: FormReg2Imm12,
	OpWDMD: FormReg4, OpWQMD: FormReg4, OpWDAM: FormReg4, OpWQAM: FormReg4,
	OpWDMM: FormReg4, OpWQMM: FormReg4,

	OpJI: FormImm24, OpJNEI: FormReg2Imm12, OpJNZI: FormReg1Imm18, OpJMP: FormReg1Imm18,
	OpJNE: FormReg3, OpJNEF: FormReg2Imm12, OpJNEB: FormReg2Imm12,
	OpJMPF: FormReg1Imm18, OpJMPB: FormReg1Imm18, OpJNZF: FormReg1Imm18, OpJNZB: FormReg1Imm18,

	OpALOC: FormReg1Imm18, OpCFEI: FormImm24, OpCFE: FormReg1Imm18, OpCFSI: FormImm24, OpCFS: FormReg1Imm18,
	OpMCL: FormReg3, OpMCLI: FormReg2Imm12, OpMCP: FormReg3, OpMCPI: FormReg2Imm12,
	OpMEQ: FormReg4, OpLB: FormReg2Imm12, OpLW: FormReg2Imm12, OpSB: FormReg2Imm12, OpSW: FormReg2Imm12,
	OpPSHL: FormImm24, OpPSHH: FormImm24, OpPOPL: FormImm24, OpPOPH: FormImm24,

	OpRET: FormReg1Imm18, OpRETD: FormReg3, OpRVRT: FormReg1Imm18,

	OpECK1: FormReg3, OpECR1: FormReg3, OpED19: FormReg4, OpK256: FormReg3, OpS256: FormReg3,
	OpECOP: FormReg4, OpEPAR: FormReg3,

	OpBAL: FormReg3, OpBHEI: FormReg1Imm18, OpBHSH: FormReg3, OpBURN: FormReg3, OpMINT: FormReg3,
	OpCALL: FormReg3, OpCB: FormReg1Imm18, OpCCP: FormReg4, OpCROO: FormReg3, OpCSIZ: FormReg3,
	OpLDC: FormReg3, OpTIME: FormReg3, OpTR: FormReg3, OpTRO: FormReg4,

	OpSRW: FormReg3, OpSWW: FormReg3, OpSRWQ: FormReg4, OpSWWQ: FormReg4, OpSCWQ: FormReg3,

	OpGM: FormReg1Imm18, OpGTF: FormReg2Imm12,

	OpSMO: FormReg4,

	OpFLAG: FormReg1Imm18,

	OpLOG: FormReg4, OpLOGD: FormReg4,

	OpBSIZ: FormReg3, OpBLDD: FormReg4,

	OpECAL: FormReg4,
}

var opcodeNames = [opcodeCount]string{
	OpNOOP: "NOOP",

	OpADD: "ADD", OpADDI: "ADDI", OpSUB: "SUB", OpSUBI: "SUBI", OpMUL: "MUL", OpMULI: "MULI",
	OpDIV: "DIV", OpDIVI: "DIVI", OpMOD: "MOD", OpMODI: "MODI", OpEXP: "EXP", OpEXPI: "EXPI",
	OpMLOG: "MLOG", OpMROO: "MROO", OpSLL: "SLL", OpSLLI: "SLLI", OpSRL: "SRL", OpSRLI: "SRLI",
	OpAND: "AND", OpANDI: "ANDI", OpOR: "OR", OpORI: "ORI", OpXOR: "XOR", OpXORI: "XORI",
	OpNOT: "NOT", OpEQ: "EQ", OpLT: "LT", OpGT: "GT", OpMOVE: "MOVE", OpMOVI: "MOVI",

	OpWDCM: "WDCM", OpWQCM: "WQCM", OpWDOP: "WDOP", OpWQOP: "WQOP", OpWDML: "WDML", OpWQML: "WQML",
	OpWDDV: "WDDV", OpWQDV: "WQDV", OpWDMD: "WDMD", OpWQMD: "WQMD", OpWDAM: "WDAM", OpWQAM: "WQAM",
	OpWDMM: "WDMM", OpWQMM: "WQMM",

	OpJI: "JI", OpJNEI: "JNEI", OpJNZI: "JNZI", OpJMP: "JMP", OpJNE: "JNE",
	OpJNEF: "JNEF", OpJNEB: "JNEB", OpJMPF: "JMPF", OpJMPB: "JMPB", OpJNZF: "JNZF", OpJNZB: "JNZB",

	OpALOC: "ALOC", OpCFEI: "CFEI", OpCFE: "CFE", OpCFSI: "CFSI", OpCFS: "CFS",
	OpMCL: "MCL", OpMCLI: "MCLI", OpMCP: "MCP", OpMCPI: "MCPI", OpMEQ: "MEQ",
	OpLB: "LB", OpLW: "LW", OpSB: "SB", OpSW: "SW",
	OpPSHL: "PSHL", OpPSHH: "PSHH", OpPOPL: "POPL", OpPOPH: "POPH",

	OpRET: "RET", OpRETD: "RETD", OpRVRT: "RVRT",

	OpECK1: "ECK1", OpECR1: "ECR1", OpED19: "ED19", OpK256: "K256", OpS256: "S256",
	OpECOP: "ECOP", OpEPAR: "EPAR",

	OpBAL: "BAL", OpBHEI: "BHEI", OpBHSH: "BHSH", OpBURN: "BURN", OpMINT: "MINT",
	OpCALL: "CALL", OpCB: "CB", OpCCP: "CCP", OpCROO: "CROO", OpCSIZ: "CSIZ",
	OpLDC: "LDC", OpTIME: "TIME", OpTR: "TR", OpTRO: "TRO",

	OpSRW: "SRW", OpSWW: "SWW", OpSRWQ: "SRWQ", OpSWWQ: "SWWQ", OpSCWQ: "SCWQ",

	OpGM: "GM", OpGTF: "GTF",

	OpSMO: "SMO",

	OpFLAG: "FLAG",

	OpLOG: "LOG", OpLOGD: "LOGD",

	OpBSIZ: "BSIZ", OpBLDD: "BLDD",

	OpECAL: "ECAL",
}

// String returns the opcode's mnemonic, or a hex fallback for an opcode
// value past the known table (see core/vm/opcodes.go's own OpCode.String).
func (op Opcode) String() string {
	if op < opcodeCount && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode 0x%02x", uint8(op))
}

// Instruction is one decoded 32-bit instruction word. Fields unused by the
// opcode's form are zero. RA..RD are 6-bit register indices (0..63);
// ImmN is whichever width (12/18/24) the form calls for.
type Instruction struct {
	Op           Opcode
	RA, RB, RC, RD uint8
	Imm          uint32
	Form         InstructionForm
}

// Decode parses a raw 32-bit instruction word. An opcode value past the
// known table reports PanicInvalidImmediateValue, since an unrecognized
// opcode byte is, per spec.md §6, malformed instruction data rather than a
// distinct panic class of its own.
func Decode(word uint32, pc, is Word) (Instruction, *VMError) {
	opByte := uint8(word >> 24)
	if Opcode(opByte) >= opcodeCount {
		return Instruction{}, NewVMError(PanicInvalidImmediateValue, pc, is)
	}
	op := Opcode(opByte)
	operand := word & 0x00ffffff
	form := opcodeForms[op]

	in := Instruction{Op: op, Form: form}
	switch form {
	case FormReg3:
		in.RA = uint8((operand >> 18) & 0x3f)
		in.RB = uint8((operand >> 12) & 0x3f)
		in.RC = uint8((operand >> 6) & 0x3f)
	case FormReg2Imm12:
		in.RA = uint8((operand >> 18) & 0x3f)
		in.RB = uint8((operand >> 12) & 0x3f)
		in.Imm = operand & 0xfff
	case FormReg1Imm18:
		in.RA = uint8((operand >> 18) & 0x3f)
		in.Imm = operand & 0x3ffff
	case FormImm24:
		in.Imm = operand
	case FormReg4:
		in.RA = uint8((operand >> 18) & 0x3f)
		in.RB = uint8((operand >> 12) & 0x3f)
		in.RC = uint8((operand >> 6) & 0x3f)
		in.RD = uint8(operand & 0x3f)
	}
	return in, nil
}
