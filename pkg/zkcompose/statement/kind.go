package statement

import "strconv"

// Kind tags a statement or witness variant. The numeric values appear in
// transcripts and proofs and must not change.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDiscreteLog
	KindPedersenCommitment
	KindBBSSignature
	KindAccumulatorMembership
	KindAccumulatorNonMembership
	KindVerifiableEncryption
	KindCompressedVectorOpening
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDiscreteLog:
		return "DiscreteLog"
	case KindPedersenCommitment:
		return "PedersenCommitment"
	case KindBBSSignature:
		return "BBSSignature"
	case KindAccumulatorMembership:
		return "AccumulatorMembership"
	case KindAccumulatorNonMembership:
		return "AccumulatorNonMembership"
	case KindVerifiableEncryption:
		return "VerifiableEncryption"
	case KindCompressedVectorOpening:
		return "CompressedVectorOpening"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Valid reports whether k names a known variant.
func (k Kind) Valid() bool {
	return k >= KindDiscreteLog && k <= KindCompressedVectorOpening
}
