package sigma

import (
	"io"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// Well-formedness of an exponential ElGamal ciphertext:
//
//	C1 = G·r
//	C2 = H·m + PK·r
//
// with variables 0 = m and 1 = r, matching the statement's slots.

func encryptionSystem(s *statement.VerifiableEncryption) *linearSystem {
	const m, r = statement.EncryptionMessageSlot, statement.EncryptionRandomnessSlot
	return &linearSystem{
		c:     s.Curve(),
		nvars: 2,
		relations: []relation{
			{terms: []term{{base: curve.Generator(s.Curve()), v: r}}, target: s.Ciphertext.C1},
			{terms: []term{{base: s.MessageBase, v: m}, {base: s.EncryptionKey, v: r}}, target: s.Ciphertext.C2},
		},
	}
}

func initEncryption(s *statement.VerifiableEncryption, w *statement.VerifiableEncryptionWitness, injected Blindings, rng io.Reader) (proverState, []byte, error) {
	return proveLinear(encryptionSystem(s), nil, []curve.Scalar{w.Message, w.Randomness}, identitySlots(2), injected, rng)
}

func verifyEncryption(s *statement.VerifiableEncryption, commitment []byte, c transcript.Challenge, response []byte, linked []int) (SlotResponses, error) {
	d := newDecoder(s.Curve(), commitment)
	t := d.points(2)
	if err := d.finish(); err != nil {
		return nil, err
	}
	return verifyLinear(encryptionSystem(s), t, c, response, identitySlots(2), linked)
}
