package curve

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// ElGamalCiphertext is an exponential ElGamal ciphertext (C1, C2) with
// C1 = r·G and C2 = m·H + r·PK.
//
// H is a public message base chosen by the caller, which lets the same
// ciphertext shape serve both curves and both encrypted values and blinded
// commitments.
type ElGamalCiphertext struct {
	C1 Point
	C2 Point
}

// EncryptElGamal encrypts m under pk with message base h. The randomness r is
// returned so the caller can later prove well-formedness; the caller owns it
// and should Zeroize it when done.
func EncryptElGamal(rng io.Reader, pk, h Point, m Scalar) (ElGamalCiphertext, Scalar, error) {
	if !pk.c.Valid() || pk.c != h.c || pk.c != m.c {
		return ElGamalCiphertext{}, Scalar{}, errors.New("curve: elgamal inputs span different curves")
	}
	if pk.IsIdentity() {
		return ElGamalCiphertext{}, Scalar{}, errors.New("curve: elgamal public key is the identity")
	}
	r, err := RandomNonZeroScalar(pk.c, rng)
	if err != nil {
		return ElGamalCiphertext{}, Scalar{}, err
	}
	return MakeElGamal(pk, h, m, r), r, nil
}

// MakeElGamal builds the ciphertext for explicit randomness r.
func MakeElGamal(pk, h Point, m, r Scalar) ElGamalCiphertext {
	g := Generator(pk.c)
	return ElGamalCiphertext{
		C1: g.Mul(r),
		C2: h.Mul(m).Add(pk.Mul(r)),
	}
}

// DecryptElGamal returns m·H. Recovering m itself requires a discrete log and
// is left to callers with small message spaces.
func DecryptElGamal(sk Scalar, ct ElGamalCiphertext) (Point, error) {
	if sk.c != ct.C1.c || sk.c != ct.C2.c {
		return Point{}, errors.New("curve: elgamal inputs span different curves")
	}
	return ct.C2.Sub(ct.C1.Mul(sk)), nil
}

// Curve returns the ciphertext's domain.
func (ct ElGamalCiphertext) Curve() Curve {
	return ct.C1.c
}

// Bytes serializes the ciphertext as C1 ‖ C2.
func (ct ElGamalCiphertext) Bytes() []byte {
	out := make([]byte, 0, 2*ct.C1.c.PointSize())
	out = append(out, ct.C1.Bytes()...)
	return append(out, ct.C2.Bytes()...)
}

// ElGamalFromBytes deserializes a ciphertext produced by Bytes.
func ElGamalFromBytes(c Curve, b []byte) (ElGamalCiphertext, error) {
	n := c.PointSize()
	if n == 0 {
		return ElGamalCiphertext{}, ErrUnknownCurve
	}
	if len(b) != 2*n {
		return ElGamalCiphertext{}, fmt.Errorf("curve: elgamal ciphertext: want %d bytes, got %d", 2*n, len(b))
	}
	c1, err := PointFromBytes(c, b[:n])
	if err != nil {
		return ElGamalCiphertext{}, fmt.Errorf("curve: elgamal C1: %w", err)
	}
	c2, err := PointFromBytes(c, b[n:])
	if err != nil {
		return ElGamalCiphertext{}, fmt.Errorf("curve: elgamal C2: %w", err)
	}
	return ElGamalCiphertext{C1: c1, C2: c2}, nil
}

// String returns a short identifier that is safe for logging.
func (ct ElGamalCiphertext) String() string {
	b := ct.Bytes()
	if len(b) < 4 {
		return "ElGamalCiphertext(" + hex.EncodeToString(b) + ")"
	}
	return "ElGamalCiphertext(" + hex.EncodeToString(b[:4]) + ")"
}
