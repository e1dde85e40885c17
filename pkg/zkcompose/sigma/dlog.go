package sigma

import (
	"io"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// Schnorr proof of Public = x·Base.

func dlogSystem(s *statement.DiscreteLog) *linearSystem {
	return &linearSystem{
		c:     s.Curve(),
		nvars: 1,
		relations: []relation{
			{terms: []term{{base: s.Base, v: 0}}, target: s.Public},
		},
	}
}

func initDiscreteLog(s *statement.DiscreteLog, w *statement.DiscreteLogWitness, injected Blindings, rng io.Reader) (proverState, []byte, error) {
	return proveLinear(dlogSystem(s), nil, []curve.Scalar{w.X}, identitySlots(1), injected, rng)
}

func verifyDiscreteLog(s *statement.DiscreteLog, commitment []byte, c transcript.Challenge, response []byte, linked []int) (SlotResponses, error) {
	d := newDecoder(s.Curve(), commitment)
	t := d.points(1)
	if err := d.finish(); err != nil {
		return nil, err
	}
	return verifyLinear(dlogSystem(s), t, c, response, identitySlots(1), linked)
}
