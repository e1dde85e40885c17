package curve

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// wideSize is the number of random bytes reduced into one scalar. Reducing 512
// bits modulo a 256-bit order leaves a statistically negligible bias.
const wideSize = 64

var (
	// ErrInvalidScalar is returned when decoding a non-canonical scalar.
	ErrInvalidScalar = errors.New("curve: invalid scalar encoding")
	// ErrUnknownCurve is returned for operations on an unsupported curve.
	ErrUnknownCurve = errors.New("curve: unknown curve")
)

// Scalar is an element of a curve's scalar field.
//
// Scalar is a value type: arithmetic methods return new values and never
// modify the receiver. Only Zeroize mutates.
type Scalar struct {
	c  Curve
	fr fr.Element
	k  btcec.ModNScalar
}

// NewScalar returns the zero scalar of the given curve.
func NewScalar(c Curve) Scalar {
	return Scalar{c: c}
}

// ScalarFromUint64 returns v as a scalar of the given curve.
func ScalarFromUint64(c Curve, v uint64) Scalar {
	s := Scalar{c: c}
	switch c {
	case BLS12381:
		s.fr.SetUint64(v)
	case Secp256k1:
		var buf [32]byte
		for i := 0; i < 8; i++ {
			buf[31-i] = byte(v >> (8 * i))
		}
		s.k.SetBytes(&buf)
	}
	return s
}

// ScalarFromBytes decodes a canonical 32-byte big-endian scalar.
func ScalarFromBytes(c Curve, b []byte) (Scalar, error) {
	if len(b) != ScalarSize {
		return Scalar{}, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidScalar, ScalarSize, len(b))
	}
	s := Scalar{c: c}
	switch c {
	case BLS12381:
		if err := s.fr.SetBytesCanonical(b); err != nil {
			return Scalar{}, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
		}
	case Secp256k1:
		if overflow := s.k.SetByteSlice(b); overflow {
			return Scalar{}, fmt.Errorf("%w: value exceeds group order", ErrInvalidScalar)
		}
	default:
		return Scalar{}, ErrUnknownCurve
	}
	return s, nil
}

// ScalarFromWideBytes reduces an arbitrary-length big-endian integer modulo
// the group order. It is used to map hash outputs onto the scalar field.
func ScalarFromWideBytes(c Curve, b []byte) Scalar {
	s := Scalar{c: c}
	switch c {
	case BLS12381:
		s.fr.SetBytes(b)
	case Secp256k1:
		v := new(big.Int).SetBytes(b)
		v.Mod(v, c.Order())
		var buf [32]byte
		v.FillBytes(buf[:])
		s.k.SetBytes(&buf)
		zeroizeBytes(buf[:])
		v.SetInt64(0)
	}
	return s
}

// RandomScalar draws a uniformly distributed scalar from rng.
func RandomScalar(c Curve, rng io.Reader) (Scalar, error) {
	if !c.Valid() {
		return Scalar{}, ErrUnknownCurve
	}
	if rng == nil {
		return Scalar{}, errors.New("curve: nil randomness source")
	}
	var buf [wideSize]byte
	defer zeroizeBytes(buf[:])
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return Scalar{}, fmt.Errorf("curve: read randomness: %w", err)
	}
	return ScalarFromWideBytes(c, buf[:]), nil
}

// RandomNonZeroScalar draws a uniformly distributed non-zero scalar.
func RandomNonZeroScalar(c Curve, rng io.Reader) (Scalar, error) {
	for {
		s, err := RandomScalar(c, rng)
		if err != nil {
			return Scalar{}, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

// Curve returns the scalar's domain.
func (s Scalar) Curve() Curve {
	return s.c
}

// Bytes returns the canonical 32-byte big-endian encoding.
func (s Scalar) Bytes() []byte {
	out := make([]byte, ScalarSize)
	switch s.c {
	case BLS12381:
		b := s.fr.Bytes()
		copy(out, b[:])
	case Secp256k1:
		b := s.k.Bytes()
		copy(out, b[:])
	}
	return out
}

// Add returns s + t.
func (s Scalar) Add(t Scalar) Scalar {
	mustMatch(s.c, t.c)
	r := Scalar{c: s.c}
	switch s.c {
	case BLS12381:
		r.fr.Add(&s.fr, &t.fr)
	case Secp256k1:
		r.k.Add2(&s.k, &t.k)
	}
	return r
}

// Sub returns s - t.
func (s Scalar) Sub(t Scalar) Scalar {
	return s.Add(t.Neg())
}

// Mul returns s * t.
func (s Scalar) Mul(t Scalar) Scalar {
	mustMatch(s.c, t.c)
	r := Scalar{c: s.c}
	switch s.c {
	case BLS12381:
		r.fr.Mul(&s.fr, &t.fr)
	case Secp256k1:
		r.k.Mul2(&s.k, &t.k)
	}
	return r
}

// MulAdd returns s + c*w, the shape of every sigma-protocol response.
func (s Scalar) MulAdd(c, w Scalar) Scalar {
	return s.Add(c.Mul(w))
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	r := Scalar{c: s.c}
	switch s.c {
	case BLS12381:
		r.fr.Neg(&s.fr)
	case Secp256k1:
		r.k.NegateVal(&s.k)
	}
	return r
}

// Inverse returns 1/s. The inverse of zero is zero; callers that need a
// non-zero result must check IsZero first.
func (s Scalar) Inverse() Scalar {
	r := Scalar{c: s.c}
	switch s.c {
	case BLS12381:
		r.fr.Inverse(&s.fr)
	case Secp256k1:
		r.k.InverseValNonConst(&s.k)
	}
	return r
}

// IsZero reports whether s is zero.
func (s Scalar) IsZero() bool {
	switch s.c {
	case BLS12381:
		return s.fr.IsZero()
	case Secp256k1:
		return s.k.IsZero()
	default:
		return true
	}
}

// Equal reports whether s and t are the same element of the same domain.
func (s Scalar) Equal(t Scalar) bool {
	if s.c != t.c {
		return false
	}
	return subtle.ConstantTimeCompare(s.Bytes(), t.Bytes()) == 1
}

// Zeroize clears the scalar in place.
func (s *Scalar) Zeroize() {
	if s == nil {
		return
	}
	s.fr.SetZero()
	s.k.Zero()
}

// String never prints the value; scalars are frequently secret.
func (s Scalar) String() string {
	return "Scalar(" + s.c.String() + ")"
}

func (s Scalar) bigInt() *big.Int {
	switch s.c {
	case BLS12381:
		return s.fr.BigInt(new(big.Int))
	case Secp256k1:
		b := s.k.Bytes()
		return new(big.Int).SetBytes(b[:])
	default:
		return new(big.Int)
	}
}

// ZeroizeScalars clears every scalar in the slice.
func ZeroizeScalars(ss []Scalar) {
	for i := range ss {
		ss[i].Zeroize()
	}
}
