package fuelvm

import "fmt"

// PanicReason tags a fault attributable to the running program: an
// out-of-bounds access, an arithmetic overflow with wrapping off, gas
// exhaustion, an ownership violation, a missing contract input, and so on.
// The dispatcher converts any PanicReason into a Panic receipt and halts
// execution; the outer collaborator is expected to revert storage.
type PanicReason uint32

const (
	PanicSuccess PanicReason = iota
	PanicRevert
	PanicOutOfGas
	PanicTransactionValidity
	PanicMemoryOverflow
	PanicMemoryOwnership
	PanicMemoryAccess
	PanicArithmeticOverflow
	PanicContractNotFound
	PanicMemoryAccessSize
	PanicContractNotInInputs
	PanicNotEnoughBalance
	PanicExpectedInternalContext
	PanicAssetIdNotFound
	PanicInputNotFound
	PanicOutputNotFound
	PanicWitnessNotFound
	PanicTransactionMaturity
	PanicInvalidMetadataIdentifier
	PanicMalformedCallStructure
	PanicReservedRegisterNotWritable
	PanicInvalidFlags
	PanicInvalidImmediateValue
	PanicExpectedCoinInput
	PanicMaxMemoryAccess
	PanicMemoryWriteOverlap
	PanicArithmeticError
	PanicContractMaxSize
	PanicExpectedUnallocatedStack
	PanicMaxStaticContractsReached
	PanicTransferAmountCannotBeZero
	PanicExpectedOutputVariable
	PanicExpectedParentInternalContext
	PanicPredicateReturnedNonOne
	PanicContractIdAlreadyDeployed
	PanicContractMismatch
	PanicMessageDataTooLong
	PanicTooManyReceipts
	PanicOverridingStateTransactionBytecode
	PanicOverridingConsensusParameters
	PanicUnknownStateTransactionBytecodeRoot
	PanicPredicateFailure
	PanicGasMismatch
	PanicContractInstructionNotAllowed
)

var panicReasonNames = [...]string{
	PanicSuccess:                              "Success",
	PanicRevert:                               "Revert",
	PanicOutOfGas:                              "OutOfGas",
	PanicTransactionValidity:                   "TransactionValidity",
	PanicMemoryOverflow:                        "MemoryOverflow",
	PanicMemoryOwnership:                       "MemoryOwnership",
	PanicMemoryAccess:                          "MemoryAccess",
	PanicArithmeticOverflow:                    "ArithmeticOverflow",
	PanicContractNotFound:                      "ContractNotFound",
	PanicMemoryAccessSize:                      "MemoryAccessSize",
	PanicContractNotInInputs:                   "ContractNotInInputs",
	PanicNotEnoughBalance:                      "NotEnoughBalance",
	PanicExpectedInternalContext:               "ExpectedInternalContext",
	PanicAssetIdNotFound:                       "AssetIdNotFound",
	PanicInputNotFound:                         "InputNotFound",
	PanicOutputNotFound:                        "OutputNotFound",
	PanicWitnessNotFound:                       "WitnessNotFound",
	PanicTransactionMaturity:                   "TransactionMaturity",
	PanicInvalidMetadataIdentifier:             "InvalidMetadataIdentifier",
	PanicMalformedCallStructure:                "MalformedCallStructure",
	PanicReservedRegisterNotWritable:           "ReservedRegisterNotWritable",
	PanicInvalidFlags:                          "InvalidFlags",
	PanicInvalidImmediateValue:                 "InvalidImmediateValue",
	PanicExpectedCoinInput:                     "ExpectedCoinInput",
	PanicMaxMemoryAccess:                       "MaxMemoryAccess",
	PanicMemoryWriteOverlap:                    "MemoryWriteOverlap",
	PanicArithmeticError:                       "ArithmeticError",
	PanicContractMaxSize:                       "ContractMaxSize",
	PanicExpectedUnallocatedStack:              "ExpectedUnallocatedStack",
	PanicMaxStaticContractsReached:             "MaxStaticContractsReached",
	PanicTransferAmountCannotBeZero:            "TransferAmountCannotBeZero",
	PanicExpectedOutputVariable:                "ExpectedOutputVariable",
	PanicExpectedParentInternalContext:         "ExpectedParentInternalContext",
	PanicPredicateReturnedNonOne:               "PredicateReturnedNonOne",
	PanicContractIdAlreadyDeployed:             "ContractIdAlreadyDeployed",
	PanicContractMismatch:                      "ContractMismatch",
	PanicMessageDataTooLong:                    "MessageDataTooLong",
	PanicTooManyReceipts:                       "TooManyReceipts",
	PanicOverridingStateTransactionBytecode:    "OverridingStateTransactionBytecode",
	PanicOverridingConsensusParameters:         "OverridingConsensusParameters",
	PanicUnknownStateTransactionBytecodeRoot:   "UnknownStateTransactionBytecodeRoot",
	PanicPredicateFailure:                      "PredicateFailure",
	PanicGasMismatch:                           "GasMismatch",
	PanicContractInstructionNotAllowed:         "ContractInstructionNotAllowed",
}

// String implements fmt.Stringer.
func (p PanicReason) String() string {
	if int(p) < len(panicReasonNames) && panicReasonNames[p] != "" {
		return panicReasonNames[p]
	}
	return fmt.Sprintf("PanicReason(%d)", uint32(p))
}

// VMError wraps a PanicReason with the instruction context that produced
// it, so callers can errors.As to the reason code while still getting a
// human-readable message.
type VMError struct {
	Reason PanicReason
	PC     Word
	IS     Word
}

func (e *VMError) Error() string {
	return fmt.Sprintf("fuelvm: panic %s at pc=0x%x is=0x%x", e.Reason, e.PC, e.IS)
}

// NewVMError builds a VMError for the given reason at the current
// instruction pointer.
func NewVMError(reason PanicReason, pc, is Word) *VMError {
	return &VMError{Reason: reason, PC: pc, IS: is}
}

// BugReason tags an internal consistency violation -- a broken register
// invariant, a double-pop of an empty frame stack, and so on. A Bug should
// never happen under a correct implementation and is never produced by a
// user program; it is not part of normal observable behavior and is never
// conflated with a PanicReason.
type BugReason string

const (
	BugRegisterInvariantViolated BugReason = "register invariant violated"
	BugFrameStackUnderflow       BugReason = "frame stack underflow"
	BugFrameStackCorrupt         BugReason = "frame stack corrupt"
	BugReceiptsCapacityExceeded  BugReason = "receipts capacity exceeded despite reserved slot"
	BugStorageInvariantViolated  BugReason = "storage invariant violated"
)

// VMBug is the error type raised for a BugReason; it bubbles all the way
// out to the caller rather than being converted into a receipt.
type VMBug struct {
	Reason BugReason
}

func (b *VMBug) Error() string {
	return fmt.Sprintf("fuelvm: bug: %s", b.Reason)
}

// NewVMBug constructs a VMBug for the given reason.
func NewVMBug(reason BugReason) *VMBug {
	return &VMBug{Reason: reason}
}
