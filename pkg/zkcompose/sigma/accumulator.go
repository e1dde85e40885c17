package sigma

import (
	"fmt"
	"io"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/accumulator"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// Accumulator membership: the prover randomizes the witness C with r,
//
//	C' = r·C
//	C̄  = r·V − y·C'          (so C̄ = α·C')
//
// and proves V·r + (−C')·y = C̄. The verifier checks C' ≠ 0 and
// e(C', Q) = e(C̄, P̃).
//
// Non-membership adds U = (r·d)·P. Then C̄ = r·V − y·C' − U, the prover shows
// V·r + (−C')·y = C̄ + U and knowledge of u = r·d with U = P·u, and the
// verifier requires U ≠ 0, which rules out d = 0.

const (
	accVarY = iota
	accVarR
	accVarU
)

var accSlots = map[int]int{0: accVarY}

func membershipSystem(v, cPrime, cBar curve.Point) *linearSystem {
	return &linearSystem{
		c:     curve.BLS12381,
		nvars: 2,
		relations: []relation{
			{terms: []term{{base: v, v: accVarR}, {base: cPrime.Neg(), v: accVarY}}, target: cBar},
		},
	}
}

func nonMembershipSystem(p, v, cPrime, cBar, u curve.Point) *linearSystem {
	return &linearSystem{
		c:     curve.BLS12381,
		nvars: 3,
		relations: []relation{
			{terms: []term{{base: v, v: accVarR}, {base: cPrime.Neg(), v: accVarY}}, target: cBar.Add(u)},
			{terms: []term{{base: p, v: accVarU}}, target: u},
		},
	}
}

func initMembership(s *statement.AccumulatorMembership, w *statement.AccumulatorMembershipWitness, injected Blindings, rng io.Reader) (proverState, []byte, error) {
	r, err := curve.RandomNonZeroScalar(curve.BLS12381, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	cPrime := w.Witness.C.Mul(r)
	cBar := s.Value.Mul(r).Sub(cPrime.Mul(w.Element))

	wit := []curve.Scalar{accVarY: w.Element, accVarR: r}
	return proveLinear(membershipSystem(s.Value, cPrime, cBar), []curve.Point{cPrime, cBar}, wit, accSlots, injected, rng)
}

func verifyMembership(s *statement.AccumulatorMembership, commitment []byte, c transcript.Challenge, response []byte, linked []int) (SlotResponses, error) {
	dec := newDecoder(curve.BLS12381, commitment)
	cPrime, cBar := dec.point(), dec.point()
	t := dec.points(1)
	if err := dec.finish(); err != nil {
		return nil, err
	}
	if err := accumulatorPairing(s.Params, s.PublicKey, cPrime, cBar); err != nil {
		return nil, err
	}
	return verifyLinear(membershipSystem(s.Value, cPrime, cBar), t, c, response, accSlots, linked)
}

func initNonMembership(s *statement.AccumulatorNonMembership, w *statement.AccumulatorNonMembershipWitness, injected Blindings, rng io.Reader) (proverState, []byte, error) {
	r, err := curve.RandomNonZeroScalar(curve.BLS12381, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	u := r.Mul(w.Witness.D)
	uPoint := s.Params.P.Mul(u)
	cPrime := w.Witness.C.Mul(r)
	cBar := s.Value.Mul(r).Sub(cPrime.Mul(w.Element)).Sub(uPoint)

	wit := []curve.Scalar{accVarY: w.Element, accVarR: r, accVarU: u}
	ls := nonMembershipSystem(s.Params.P, s.Value, cPrime, cBar, uPoint)
	return proveLinear(ls, []curve.Point{cPrime, cBar, uPoint}, wit, accSlots, injected, rng)
}

func verifyNonMembership(s *statement.AccumulatorNonMembership, commitment []byte, c transcript.Challenge, response []byte, linked []int) (SlotResponses, error) {
	dec := newDecoder(curve.BLS12381, commitment)
	cPrime, cBar, uPoint := dec.point(), dec.point(), dec.point()
	t := dec.points(2)
	if err := dec.finish(); err != nil {
		return nil, err
	}
	if uPoint.IsIdentity() {
		return nil, fmt.Errorf("%w: non-membership blinding point is the identity", ErrRelation)
	}
	if err := accumulatorPairing(s.Params, s.PublicKey, cPrime, cBar); err != nil {
		return nil, err
	}
	ls := nonMembershipSystem(s.Params.P, s.Value, cPrime, cBar, uPoint)
	return verifyLinear(ls, t, c, response, accSlots, linked)
}

func accumulatorPairing(params *accumulator.Params, pk *accumulator.PublicKey, cPrime, cBar curve.Point) error {
	if cPrime.IsIdentity() {
		return fmt.Errorf("%w: randomized witness is the identity", ErrRelation)
	}
	ok, err := curve.PairingCheck(
		[]curve.Point{cPrime, cBar.Neg()},
		[]curve.G2Point{pk.Q, params.P2},
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRelation, err)
	}
	if !ok {
		return fmt.Errorf("%w: accumulator pairing check failed", ErrRelation)
	}
	return nil
}
