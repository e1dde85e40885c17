package curve

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ErrInvalidPoint is returned when decoding a point that is not a canonical
// encoding of a group element.
var ErrInvalidPoint = errors.New("curve: invalid point encoding")

// Point is a group element of a curve. Secp256k1 points are kept in affine
// form (Z = 1) or as the all-zero identity, so field comparisons are exact.
type Point struct {
	c  Curve
	g1 bls12381.G1Affine
	k  btcec.JacobianPoint
}

// Identity returns the neutral element of the curve's group.
func Identity(c Curve) Point {
	return Point{c: c}
}

// Generator returns the standard generator of the curve's group.
func Generator(c Curve) Point {
	p := Point{c: c}
	switch c {
	case BLS12381:
		_, _, g1, _ := bls12381.Generators()
		p.g1 = g1
	case Secp256k1:
		btcec.GeneratorJacobian(&p.k)
		p.normalize()
	}
	return p
}

// PointFromBytes decodes a canonical compressed point.
func PointFromBytes(c Curve, b []byte) (Point, error) {
	if !c.Valid() {
		return Point{}, ErrUnknownCurve
	}
	if len(b) != c.PointSize() {
		return Point{}, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPoint, c.PointSize(), len(b))
	}
	p := Point{c: c}
	switch c {
	case BLS12381:
		if _, err := p.g1.SetBytes(b); err != nil {
			return Point{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
		}
	case Secp256k1:
		if isZeroed(b) {
			return p, nil
		}
		k, err := btcec.ParseJacobian(b)
		if err != nil {
			return Point{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
		}
		p.k = k
		p.normalize()
	}
	if !bytes.Equal(p.Bytes(), b) {
		return Point{}, fmt.Errorf("%w: non-canonical encoding", ErrInvalidPoint)
	}
	return p, nil
}

// Curve returns the point's domain.
func (p Point) Curve() Curve {
	return p.c
}

// Bytes returns the canonical compressed encoding.
func (p Point) Bytes() []byte {
	switch p.c {
	case BLS12381:
		b := p.g1.Bytes()
		return b[:]
	case Secp256k1:
		if p.IsIdentity() {
			return make([]byte, 33)
		}
		return btcec.JacobianToByteSlice(p.k)
	default:
		return nil
	}
}

// IsIdentity reports whether p is the neutral element.
func (p Point) IsIdentity() bool {
	switch p.c {
	case BLS12381:
		return p.g1.IsInfinity()
	case Secp256k1:
		return secpInfinity(&p.k)
	default:
		return true
	}
}

// Equal reports whether p and q are the same group element.
func (p Point) Equal(q Point) bool {
	if p.c != q.c {
		return false
	}
	switch p.c {
	case BLS12381:
		return p.g1.Equal(&q.g1)
	case Secp256k1:
		if p.IsIdentity() || q.IsIdentity() {
			return p.IsIdentity() && q.IsIdentity()
		}
		return p.k.X.Equals(&q.k.X) && p.k.Y.Equals(&q.k.Y)
	default:
		return true
	}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	mustMatch(p.c, q.c)
	r := Point{c: p.c}
	switch p.c {
	case BLS12381:
		r.g1.Add(&p.g1, &q.g1)
	case Secp256k1:
		btcec.AddNonConst(&p.k, &q.k, &r.k)
		r.normalize()
	}
	return r
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return p.Add(q.Neg())
}

// Neg returns -p.
func (p Point) Neg() Point {
	r := Point{c: p.c}
	switch p.c {
	case BLS12381:
		r.g1.Neg(&p.g1)
	case Secp256k1:
		if p.IsIdentity() {
			return r
		}
		r.k.Set(&p.k)
		r.k.Y.Negate(1).Normalize()
	}
	return r
}

// Mul returns s·p.
func (p Point) Mul(s Scalar) Point {
	mustMatch(p.c, s.c)
	r := Point{c: p.c}
	switch p.c {
	case BLS12381:
		var e big.Int
		s.fr.BigInt(&e)
		r.g1.ScalarMultiplication(&p.g1, &e)
		e.SetInt64(0)
	case Secp256k1:
		if p.IsIdentity() || s.IsZero() {
			return r
		}
		btcec.ScalarMultNonConst(&s.k, &p.k, &r.k)
		r.normalize()
	}
	return r
}

// MultiScalarMul returns Σ scalars[i]·points[i]. It panics if the slices have
// different lengths or mix curves.
func MultiScalarMul(points []Point, scalars []Scalar) Point {
	if len(points) != len(scalars) {
		panic("curve: MultiScalarMul length mismatch")
	}
	if len(points) == 0 {
		panic("curve: MultiScalarMul on empty input")
	}
	c := points[0].c
	for i := range points {
		mustMatch(c, points[i].c)
		mustMatch(c, scalars[i].c)
	}
	if c == BLS12381 {
		bases := make([]bls12381.G1Affine, len(points))
		exps := make([]fr.Element, len(scalars))
		for i := range points {
			bases[i] = points[i].g1
			exps[i] = scalars[i].fr
		}
		r := Point{c: c}
		if _, err := r.g1.MultiExp(bases, exps, ecc.MultiExpConfig{NbTasks: 1}); err == nil {
			for i := range exps {
				exps[i].SetZero()
			}
			return r
		}
		for i := range exps {
			exps[i].SetZero()
		}
	}
	acc := Identity(c)
	for i := range points {
		acc = acc.Add(points[i].Mul(scalars[i]))
	}
	return acc
}

// String returns the curve and the first bytes of the encoding.
func (p Point) String() string {
	b := p.Bytes()
	if len(b) < 4 {
		return "Point(" + p.c.String() + ")"
	}
	return "Point(" + p.c.String() + ", " + hex.EncodeToString(b[:4]) + ")"
}

func (p *Point) normalize() {
	if secpInfinity(&p.k) {
		p.k = btcec.JacobianPoint{}
		return
	}
	p.k.ToAffine()
}

func secpInfinity(k *btcec.JacobianPoint) bool {
	return (k.X.IsZero() && k.Y.IsZero()) || k.Z.IsZero()
}

func isZeroed(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
