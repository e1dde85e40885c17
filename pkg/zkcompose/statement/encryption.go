package statement

import "github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"

// VerifiableEncryption states that Ciphertext is a well-formed exponential
// ElGamal encryption under EncryptionKey of a hidden message m with base
// MessageBase:
//
//	C1 = r·G
//	C2 = m·MessageBase + r·EncryptionKey
type VerifiableEncryption struct {
	EncryptionKey curve.Point
	MessageBase   curve.Point
	Ciphertext    curve.ElGamalCiphertext
}

// VerifiableEncryptionWitness holds the plaintext and encryption randomness.
type VerifiableEncryptionWitness struct {
	Message    curve.Scalar
	Randomness curve.Scalar
}

// Slots of a VerifiableEncryption statement.
const (
	EncryptionMessageSlot    = 0
	EncryptionRandomnessSlot = 1
)

func (*VerifiableEncryption) isStatement() {}
func (*VerifiableEncryption) Kind() Kind { return KindVerifiableEncryption }
func (s *VerifiableEncryption) Curve() curve.Curve { return s.EncryptionKey.Curve() }
func (*VerifiableEncryption) SlotCount() int { return 2 }
func (*VerifiableEncryption) IsSlot(i int) bool { return i == 0 || i == 1 }
func (*VerifiableEncryptionWitness) isWitness() {}
func (*VerifiableEncryptionWitness) Kind() Kind { return KindVerifiableEncryption }

// Validate checks that all points share a curve and the key and base are not
// the identity.
func (s *VerifiableEncryption) Validate() error {
	if err := pointsOn(s.Curve(), s.EncryptionKey, s.MessageBase, s.Ciphertext.C1, s.Ciphertext.C2); err != nil {
		return err
	}
	return nonIdentity("encryption key or message base", s.EncryptionKey, s.MessageBase)
}

// Bytes returns the canonical public encoding.
func (s *VerifiableEncryption) Bytes() []byte {
	return newEncoder(KindVerifiableEncryption, s.Curve()).
		point(s.EncryptionKey).
		point(s.MessageBase).
		bytes(s.Ciphertext.Bytes()).
		finish()
}

// Zeroize clears the message and randomness.
func (w *VerifiableEncryptionWitness) Zeroize() {
	w.Message.Zeroize()
	w.Randomness.Zeroize()
}
