package statement

import "github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"

// DiscreteLog states knowledge of x with Public = x·Base.
type DiscreteLog struct {
	Base   curve.Point
	Public curve.Point
}

// DiscreteLogWitness is the exponent x.
type DiscreteLogWitness struct {
	X curve.Scalar
}

func (*DiscreteLog) isStatement() {}
func (*DiscreteLog) Kind() Kind { return KindDiscreteLog }
func (s *DiscreteLog) Curve() curve.Curve { return s.Base.Curve() }
func (*DiscreteLog) SlotCount() int { return 1 }
func (*DiscreteLog) IsSlot(i int) bool { return i == 0 }
func (*DiscreteLogWitness) isWitness() {}
func (*DiscreteLogWitness) Kind() Kind { return KindDiscreteLog }
func (w *DiscreteLogWitness) Zeroize() { w.X.Zeroize() }

// Validate checks that both points share a curve and the base is not the identity.
func (s *DiscreteLog) Validate() error {
	if err := pointsOn(s.Base.Curve(), s.Base, s.Public); err != nil {
		return err
	}
	return nonIdentity("base", s.Base)
}

// Bytes returns the canonical public encoding.
func (s *DiscreteLog) Bytes() []byte {
	return newEncoder(KindDiscreteLog, s.Curve()).point(s.Base).point(s.Public).finish()
}
