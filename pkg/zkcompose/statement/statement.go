package statement

import (
	"errors"
	"fmt"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

var (
	// ErrKindMismatch is returned by Check when the witness variant differs
	// from the statement variant.
	ErrKindMismatch = errors.New("statement: witness kind does not match statement kind")
	// ErrShape is returned by Check when a witness has the right kind but the
	// wrong size or curve.
	ErrShape = errors.New("statement: witness shape does not match statement")
	// ErrInvalid is returned by Validate for malformed public data.
	ErrInvalid = errors.New("statement: invalid public data")
)

// Statement is a public fact to be proven. The set of implementations is
// closed.
type Statement interface {
	// Kind returns the variant tag.
	Kind() Kind
	// Curve returns the scalar domain all of the statement's witnesses live in.
	Curve() curve.Curve
	// SlotCount returns the number of witness positions, including positions
	// that are not linkable (such as revealed messages).
	SlotCount() int
	// IsSlot reports whether i is a hidden witness slot that equality
	// constraints may refer to.
	IsSlot(i int) bool
	// Validate checks the public data for structural soundness.
	Validate() error
	// Bytes returns the canonical encoding of the public data, which is what
	// the transcript absorbs.
	Bytes() []byte

	isStatement()
}

// Witness is the secret data satisfying a Statement of the same Kind.
type Witness interface {
	Kind() Kind
	// Zeroize clears all secret material held by the witness.
	Zeroize()

	isWitness()
}

// Check validates that w has the variant and shape st expects. It does not
// check that w actually satisfies st; an unsatisfying witness simply yields a
// proof that fails verification.
func Check(st Statement, w Witness) error {
	if st == nil || w == nil {
		return fmt.Errorf("%w: nil statement or witness", ErrShape)
	}
	if st.Kind() != w.Kind() {
		return fmt.Errorf("%w: statement %s, witness %s", ErrKindMismatch, st.Kind(), w.Kind())
	}
	switch s := st.(type) {
	case *DiscreteLog:
		dw, err := concrete[DiscreteLogWitness](w)
		if err != nil {
			return err
		}
		return scalarsOn(s.Curve(), dw.X)
	case *PedersenCommitment:
		pw, err := concrete[PedersenWitness](w)
		if err != nil {
			return err
		}
		x := pw.Openings
		if len(x) != len(s.Bases) {
			return fmt.Errorf("%w: %d openings for %d bases", ErrShape, len(x), len(s.Bases))
		}
		return scalarsOn(s.Curve(), x...)
	case *BBSSignature:
		bw, err := concrete[BBSSignatureWitness](w)
		if err != nil {
			return err
		}
		if bw.Signature == nil {
			return fmt.Errorf("%w: nil signature", ErrShape)
		}
		if len(bw.Messages) != s.Params.MessageCount() {
			return fmt.Errorf("%w: %d messages for %d supported", ErrShape, len(bw.Messages), s.Params.MessageCount())
		}
		if bw.Signature.A.Curve() != curve.BLS12381 {
			return fmt.Errorf("%w: signature point on %s", ErrShape, bw.Signature.A.Curve())
		}
		return scalarsOn(curve.BLS12381, append([]curve.Scalar{bw.Signature.E, bw.Signature.S}, bw.Messages...)...)
	case *AccumulatorMembership:
		aw, err := concrete[AccumulatorMembershipWitness](w)
		if err != nil {
			return err
		}
		if aw.Witness == nil || aw.Witness.C.Curve() != curve.BLS12381 {
			return fmt.Errorf("%w: missing membership witness", ErrShape)
		}
		return scalarsOn(curve.BLS12381, aw.Element)
	case *AccumulatorNonMembership:
		aw, err := concrete[AccumulatorNonMembershipWitness](w)
		if err != nil {
			return err
		}
		if aw.Witness == nil || aw.Witness.C.Curve() != curve.BLS12381 {
			return fmt.Errorf("%w: missing non-membership witness", ErrShape)
		}
		return scalarsOn(curve.BLS12381, aw.Element, aw.Witness.D)
	case *VerifiableEncryption:
		ew, err := concrete[VerifiableEncryptionWitness](w)
		if err != nil {
			return err
		}
		return scalarsOn(s.Curve(), ew.Message, ew.Randomness)
	case *CompressedVectorOpening:
		vw, err := concrete[CompressedVectorWitness](w)
		if err != nil {
			return err
		}
		x := vw.Openings
		if len(x) != len(s.Bases) {
			return fmt.Errorf("%w: %d openings for %d bases", ErrShape, len(x), len(s.Bases))
		}
		return scalarsOn(s.Curve(), x...)
	default:
		return fmt.Errorf("%w: unsupported statement %T", ErrShape, st)
	}
}

// concrete unwraps w to its variant, rejecting typed nil pointers.
func concrete[W any](w Witness) (*W, error) {
	cw, ok := any(w).(*W)
	if !ok || cw == nil {
		return nil, fmt.Errorf("%w: nil or foreign %T witness", ErrShape, w)
	}
	return cw, nil
}

func scalarsOn(c curve.Curve, xs ...curve.Scalar) error {
	for i, x := range xs {
		if x.Curve() != c {
			return fmt.Errorf("%w: scalar %d on %s, want %s", ErrShape, i, x.Curve(), c)
		}
	}
	return nil
}

func pointsOn(c curve.Curve, ps ...curve.Point) error {
	if !c.Valid() {
		return fmt.Errorf("%w: unknown curve", ErrInvalid)
	}
	for i, p := range ps {
		if p.Curve() != c {
			return fmt.Errorf("%w: point %d on %s, want %s", ErrInvalid, i, p.Curve(), c)
		}
	}
	return nil
}

func nonIdentity(what string, ps ...curve.Point) error {
	for i, p := range ps {
		if p.IsIdentity() {
			return fmt.Errorf("%w: %s %d is the identity", ErrInvalid, what, i)
		}
	}
	return nil
}
