package sigma

import (
	"fmt"
	"io"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// Proof of knowledge of a BBS+ signature (A, e, s) with hidden messages, after
// Camenisch, Drijvers and Lehmann. The prover randomizes the signature:
//
//	A' = r1·A
//	Ā  = r1·b − e·A'        (so Ā = x·A')
//	d  = r1·b − r2·h0
//	r3 = 1/r1, s' = s − r2·r3
//
// and proves two linear relations:
//
//	Ā − d                 = A'·(−e) + h0·r2
//	g1 + Σ_rev h_i·m_i    = d·r3 + h0·(−s') + Σ_hid (−h_j)·m_j
//
// The hidden-message bases are negated so message responses take the usual
// b + c·m form and can be compared with other statements. The verifier also
// checks A' ≠ 0 and e(A', w) = e(Ā, g2).

const (
	bbsVarNegE = iota
	bbsVarR2
	bbsVarR3
	bbsVarNegSPrime
	bbsVarMessages
)

func bbsSlots(s *statement.BBSSignature) map[int]int {
	hidden := s.HiddenIndices()
	m := make(map[int]int, len(hidden))
	for k, j := range hidden {
		m[j] = bbsVarMessages + k
	}
	return m
}

func bbsSystem(s *statement.BBSSignature, aPrime, aBar, d curve.Point) *linearSystem {
	p := s.Params
	hidden := s.HiddenIndices()

	target := p.G1
	for _, i := range s.RevealedIndices() {
		target = target.Add(p.H[i].Mul(s.Revealed[i]))
	}
	second := []term{{base: d, v: bbsVarR3}, {base: p.H0, v: bbsVarNegSPrime}}
	for k, j := range hidden {
		second = append(second, term{base: p.H[j].Neg(), v: bbsVarMessages + k})
	}
	return &linearSystem{
		c:     curve.BLS12381,
		nvars: bbsVarMessages + len(hidden),
		relations: []relation{
			{terms: []term{{base: aPrime, v: bbsVarNegE}, {base: p.H0, v: bbsVarR2}}, target: aBar.Sub(d)},
			{terms: second, target: target},
		},
	}
}

func initBBS(s *statement.BBSSignature, w *statement.BBSSignatureWitness, injected Blindings, rng io.Reader) (proverState, []byte, error) {
	sig := w.Signature
	msgs := make(map[int]curve.Scalar, len(w.Messages))
	for i, m := range w.Messages {
		msgs[i] = m
	}
	b, err := s.Params.B(msgs, sig.S)
	if err != nil {
		return nil, nil, err
	}

	r1, err := curve.RandomNonZeroScalar(curve.BLS12381, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	defer r1.Zeroize()
	r2, err := curve.RandomScalar(curve.BLS12381, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}

	aPrime := sig.A.Mul(r1)
	aBar := b.Mul(r1).Sub(aPrime.Mul(sig.E))
	d := b.Mul(r1).Sub(s.Params.H0.Mul(r2))
	r3 := r1.Inverse()
	sPrime := sig.S.Sub(r2.Mul(r3))

	hidden := s.HiddenIndices()
	wit := make([]curve.Scalar, bbsVarMessages+len(hidden))
	wit[bbsVarNegE] = sig.E.Neg()
	wit[bbsVarR2] = r2
	wit[bbsVarR3] = r3
	wit[bbsVarNegSPrime] = sPrime.Neg()
	sPrime.Zeroize()
	for k, j := range hidden {
		wit[bbsVarMessages+k] = w.Messages[j]
	}

	ls := bbsSystem(s, aPrime, aBar, d)
	return proveLinear(ls, []curve.Point{aPrime, aBar, d}, wit, bbsSlots(s), injected, rng)
}

func verifyBBS(s *statement.BBSSignature, commitment []byte, c transcript.Challenge, response []byte, linked []int) (SlotResponses, error) {
	dec := newDecoder(curve.BLS12381, commitment)
	aPrime, aBar, d := dec.point(), dec.point(), dec.point()
	t := dec.points(2)
	if err := dec.finish(); err != nil {
		return nil, err
	}
	if aPrime.IsIdentity() {
		return nil, fmt.Errorf("%w: randomized signature is the identity", ErrRelation)
	}
	ok, err := curve.PairingCheck(
		[]curve.Point{aPrime, aBar.Neg()},
		[]curve.G2Point{s.PublicKey.W, s.Params.G2},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelation, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: signature pairing check failed", ErrRelation)
	}
	return verifyLinear(bbsSystem(s, aPrime, aBar, d), t, c, response, bbsSlots(s), linked)
}
