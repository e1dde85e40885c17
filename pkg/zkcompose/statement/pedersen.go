package statement

import (
	"fmt"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

// PedersenCommitment states knowledge of an opening x_0..x_{n-1} with
// Commitment = Σ Bases[i]·x_i.
type PedersenCommitment struct {
	Bases      []curve.Point
	Commitment curve.Point
}

// PedersenWitness is the opening vector.
type PedersenWitness struct {
	Openings []curve.Scalar
}

func (*PedersenCommitment) isStatement() {}
func (*PedersenCommitment) Kind() Kind { return KindPedersenCommitment }
func (s *PedersenCommitment) SlotCount() int { return len(s.Bases) }
func (s *PedersenCommitment) IsSlot(i int) bool { return i >= 0 && i < len(s.Bases) }
func (*PedersenWitness) isWitness() {}
func (*PedersenWitness) Kind() Kind { return KindPedersenCommitment }
func (w *PedersenWitness) Zeroize() { curve.ZeroizeScalars(w.Openings) }

// Curve returns the curve of the commitment.
func (s *PedersenCommitment) Curve() curve.Curve {
	return s.Commitment.Curve()
}

// Validate checks base count and curve consistency.
func (s *PedersenCommitment) Validate() error {
	if len(s.Bases) == 0 {
		return fmt.Errorf("%w: no bases", ErrInvalid)
	}
	if err := pointsOn(s.Curve(), append([]curve.Point{s.Commitment}, s.Bases...)...); err != nil {
		return err
	}
	return nonIdentity("base", s.Bases...)
}

// Bytes returns the canonical public encoding.
func (s *PedersenCommitment) Bytes() []byte {
	return newEncoder(KindPedersenCommitment, s.Curve()).points(s.Bases).point(s.Commitment).finish()
}
