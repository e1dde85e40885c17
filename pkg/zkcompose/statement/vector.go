package statement

import (
	"fmt"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

// CompressedVectorOpening states knowledge of x_0..x_{n-1} with
// Commitment = Σ Bases[i]·x_i, proven with a logarithmic-size argument.
// It suits long vectors where a linear-size response would dominate the proof.
type CompressedVectorOpening struct {
	Bases      []curve.Point
	Commitment curve.Point
}

// CompressedVectorWitness is the opening vector.
type CompressedVectorWitness struct {
	Openings []curve.Scalar
}

func (*CompressedVectorOpening) isStatement() {}
func (*CompressedVectorOpening) Kind() Kind { return KindCompressedVectorOpening }
func (s *CompressedVectorOpening) SlotCount() int { return len(s.Bases) }
func (s *CompressedVectorOpening) IsSlot(i int) bool { return i >= 0 && i < len(s.Bases) }
func (*CompressedVectorWitness) isWitness() {}
func (*CompressedVectorWitness) Kind() Kind { return KindCompressedVectorOpening }
func (w *CompressedVectorWitness) Zeroize() { curve.ZeroizeScalars(w.Openings) }

// Curve returns the curve of the commitment.
func (s *CompressedVectorOpening) Curve() curve.Curve {
	return s.Commitment.Curve()
}

// Validate checks base count and curve consistency.
func (s *CompressedVectorOpening) Validate() error {
	if len(s.Bases) == 0 {
		return fmt.Errorf("%w: no bases", ErrInvalid)
	}
	if err := pointsOn(s.Curve(), append([]curve.Point{s.Commitment}, s.Bases...)...); err != nil {
		return err
	}
	return nonIdentity("base", s.Bases...)
}

// Bytes returns the canonical public encoding.
func (s *CompressedVectorOpening) Bytes() []byte {
	return newEncoder(KindCompressedVectorOpening, s.Curve()).points(s.Bases).point(s.Commitment).finish()
}
