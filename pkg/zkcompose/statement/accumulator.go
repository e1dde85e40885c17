package statement

import (
	"fmt"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/accumulator"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

// AccumulatorMembership states that a hidden element is in the accumulator
// with the given Value.
type AccumulatorMembership struct {
	Params    *accumulator.Params
	PublicKey *accumulator.PublicKey
	Value     curve.Point
}

// AccumulatorMembershipWitness is the element and its membership witness.
type AccumulatorMembershipWitness struct {
	Element curve.Scalar
	Witness *accumulator.MembershipWitness
}

func (*AccumulatorMembership) isStatement() {}
func (*AccumulatorMembership) Kind() Kind { return KindAccumulatorMembership }
func (*AccumulatorMembership) Curve() curve.Curve { return curve.BLS12381 }
func (*AccumulatorMembership) SlotCount() int { return 1 }
func (*AccumulatorMembership) IsSlot(i int) bool { return i == 0 }
func (*AccumulatorMembershipWitness) isWitness() {}
func (*AccumulatorMembershipWitness) Kind() Kind { return KindAccumulatorMembership }

// Validate checks params, key and value.
func (s *AccumulatorMembership) Validate() error {
	return validateAccumulator(s.Params, s.PublicKey, s.Value)
}

// Bytes returns the canonical public encoding.
func (s *AccumulatorMembership) Bytes() []byte {
	return newEncoder(KindAccumulatorMembership, curve.BLS12381).
		bytes(s.Params.Bytes()).
		bytes(s.PublicKey.Bytes()).
		point(s.Value).
		finish()
}

// Zeroize clears the element and witness.
func (w *AccumulatorMembershipWitness) Zeroize() {
	w.Element.Zeroize()
	w.Witness.Zeroize()
}

// AccumulatorNonMembership states that a hidden element is not in the
// accumulator with the given Value.
type AccumulatorNonMembership struct {
	Params    *accumulator.Params
	PublicKey *accumulator.PublicKey
	Value     curve.Point
}

// AccumulatorNonMembershipWitness is the element and its non-membership witness.
type AccumulatorNonMembershipWitness struct {
	Element curve.Scalar
	Witness *accumulator.NonMembershipWitness
}

func (*AccumulatorNonMembership) isStatement() {}
func (*AccumulatorNonMembership) Kind() Kind { return KindAccumulatorNonMembership }
func (*AccumulatorNonMembership) Curve() curve.Curve { return curve.BLS12381 }
func (*AccumulatorNonMembership) SlotCount() int { return 1 }
func (*AccumulatorNonMembership) IsSlot(i int) bool { return i == 0 }
func (*AccumulatorNonMembershipWitness) isWitness() {}
func (*AccumulatorNonMembershipWitness) Kind() Kind { return KindAccumulatorNonMembership }

// Validate checks params, key and value.
func (s *AccumulatorNonMembership) Validate() error {
	return validateAccumulator(s.Params, s.PublicKey, s.Value)
}

// Bytes returns the canonical public encoding.
func (s *AccumulatorNonMembership) Bytes() []byte {
	return newEncoder(KindAccumulatorNonMembership, curve.BLS12381).
		bytes(s.Params.Bytes()).
		bytes(s.PublicKey.Bytes()).
		point(s.Value).
		finish()
}

// Zeroize clears the element and witness.
func (w *AccumulatorNonMembershipWitness) Zeroize() {
	w.Element.Zeroize()
	w.Witness.Zeroize()
}

func validateAccumulator(params *accumulator.Params, pk *accumulator.PublicKey, value curve.Point) error {
	if !params.IsValid() {
		return fmt.Errorf("%w: invalid accumulator params", ErrInvalid)
	}
	if !pk.IsValid() {
		return fmt.Errorf("%w: invalid accumulator public key", ErrInvalid)
	}
	if err := pointsOn(curve.BLS12381, value); err != nil {
		return err
	}
	return nonIdentity("accumulator value", value)
}
