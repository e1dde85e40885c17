package bbs

import (
	"errors"
	"fmt"
	"io"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

// Signature is a BBS+ signature (A, e, s).
type Signature struct {
	A curve.Point
	E curve.Scalar
	S curve.Scalar
}

// Sign signs all messages. len(messages) must equal params.MessageCount().
func Sign(rng io.Reader, messages []curve.Scalar, sk *SecretKey, params *Params) (*Signature, error) {
	if sk == nil || params == nil {
		return nil, errors.New("nil params")
	}
	if len(messages) != params.MessageCount() {
		return nil, fmt.Errorf("bbs: got %d messages, params support %d", len(messages), params.MessageCount())
	}
	e, err := curve.RandomScalar(curve.BLS12381, rng)
	if err != nil {
		return nil, err
	}
	s, err := curve.RandomScalar(curve.BLS12381, rng)
	if err != nil {
		return nil, err
	}
	denom := e.Add(sk.x)
	if denom.IsZero() {
		return nil, errors.New("bbs: degenerate signing randomness")
	}
	b, err := params.B(messageMap(messages), s)
	if err != nil {
		return nil, err
	}
	inv := denom.Inverse()
	defer inv.Zeroize()
	defer denom.Zeroize()
	return &Signature{A: b.Mul(inv), E: e, S: s}, nil
}

// Verify checks e(A, w + e·g2) = e(B, g2).
func (sig *Signature) Verify(messages []curve.Scalar, pk *PublicKey, params *Params) error {
	if sig == nil || pk == nil || params == nil {
		return errors.New("nil params")
	}
	if !pk.IsValid() || !params.IsValid() {
		return ErrInvalidSignature
	}
	if len(messages) != params.MessageCount() {
		return fmt.Errorf("%w: got %d messages, params support %d", ErrInvalidSignature, len(messages), params.MessageCount())
	}
	if sig.A.Curve() != curve.BLS12381 || sig.A.IsIdentity() {
		return ErrInvalidSignature
	}
	b, err := params.B(messageMap(messages), sig.S)
	if err != nil {
		return err
	}
	ok, err := curve.PairingCheck(
		[]curve.Point{sig.A, b.Neg()},
		[]curve.G2Point{pk.W.Add(params.G2.Mul(sig.E)), params.G2},
	)
	if err != nil {
		return fmt.Errorf("bbs: pairing: %w", err)
	}
	if !ok {
		return ErrInvalidSignature
	}
	return nil
}

// Zeroize clears the signature. A signature is a witness when proving
// knowledge of it.
func (sig *Signature) Zeroize() {
	if sig == nil {
		return
	}
	sig.A = curve.Identity(curve.BLS12381)
	sig.E.Zeroize()
	sig.S.Zeroize()
}

// Bytes encodes the signature as A ‖ e ‖ s.
func (sig *Signature) Bytes() []byte {
	out := make([]byte, 0, 48+2*curve.ScalarSize)
	out = append(out, sig.A.Bytes()...)
	out = append(out, sig.E.Bytes()...)
	return append(out, sig.S.Bytes()...)
}

// SignatureFromBytes decodes a signature produced by Bytes.
func SignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != 48+2*curve.ScalarSize {
		return nil, fmt.Errorf("bbs: signature must be %d bytes", 48+2*curve.ScalarSize)
	}
	a, err := curve.PointFromBytes(curve.BLS12381, b[:48])
	if err != nil {
		return nil, err
	}
	e, err := curve.ScalarFromBytes(curve.BLS12381, b[48:80])
	if err != nil {
		return nil, err
	}
	s, err := curve.ScalarFromBytes(curve.BLS12381, b[80:])
	if err != nil {
		return nil, err
	}
	return &Signature{A: a, E: e, S: s}, nil
}

func messageMap(messages []curve.Scalar) map[int]curve.Scalar {
	m := make(map[int]curve.Scalar, len(messages))
	for i, v := range messages {
		m[i] = v
	}
	return m
}
