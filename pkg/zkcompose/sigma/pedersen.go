package sigma

import (
	"io"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// Proof of knowledge of an opening of Commitment = Σ Bases[i]·x_i.

func pedersenSystem(s *statement.PedersenCommitment) *linearSystem {
	terms := make([]term, len(s.Bases))
	for i, g := range s.Bases {
		terms[i] = term{base: g, v: i}
	}
	return &linearSystem{
		c:         s.Curve(),
		nvars:     len(s.Bases),
		relations: []relation{{terms: terms, target: s.Commitment}},
	}
}

func initPedersen(s *statement.PedersenCommitment, w *statement.PedersenWitness, injected Blindings, rng io.Reader) (proverState, []byte, error) {
	return proveLinear(pedersenSystem(s), nil, copyScalars(w.Openings), identitySlots(len(s.Bases)), injected, rng)
}

func verifyPedersen(s *statement.PedersenCommitment, commitment []byte, c transcript.Challenge, response []byte, linked []int) (SlotResponses, error) {
	d := newDecoder(s.Curve(), commitment)
	t := d.points(1)
	if err := d.finish(); err != nil {
		return nil, err
	}
	return verifyLinear(pedersenSystem(s), t, c, response, identitySlots(len(s.Bases)), linked)
}
