package curve

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// G2Size is the compressed encoding size of a G2 point.
const G2Size = bls12381.SizeOfG2AffineCompressed

// G2Point is an element of the BLS12-381 G2 group. It only appears in public
// keys and parameters and takes part in pairing checks.
type G2Point struct {
	p bls12381.G2Affine
}

// G2Generator returns the standard G2 generator.
func G2Generator() G2Point {
	_, _, _, g2 := bls12381.Generators()
	return G2Point{p: g2}
}

// HashToG2 deterministically maps msg to a G2 element.
func HashToG2(dst, msg []byte) (G2Point, error) {
	p, err := bls12381.HashToG2(msg, dst)
	if err != nil {
		return G2Point{}, fmt.Errorf("curve: hash to G2: %w", err)
	}
	return G2Point{p: p}, nil
}

// G2FromBytes decodes a canonical compressed G2 point.
func G2FromBytes(b []byte) (G2Point, error) {
	if len(b) != G2Size {
		return G2Point{}, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidPoint, G2Size, len(b))
	}
	var g G2Point
	if _, err := g.p.SetBytes(b); err != nil {
		return G2Point{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if !bytes.Equal(g.Bytes(), b) {
		return G2Point{}, fmt.Errorf("%w: non-canonical encoding", ErrInvalidPoint)
	}
	return g, nil
}

// Bytes returns the compressed encoding.
func (g G2Point) Bytes() []byte {
	b := g.p.Bytes()
	return b[:]
}

// Mul returns s·g. s must be a BLS12-381 scalar.
func (g G2Point) Mul(s Scalar) G2Point {
	mustMatch(s.c, BLS12381)
	var e big.Int
	s.fr.BigInt(&e)
	var r G2Point
	r.p.ScalarMultiplication(&g.p, &e)
	e.SetInt64(0)
	return r
}

// Add returns g + h.
func (g G2Point) Add(h G2Point) G2Point {
	var r G2Point
	r.p.Add(&g.p, &h.p)
	return r
}

// IsIdentity reports whether g is the point at infinity.
func (g G2Point) IsIdentity() bool {
	return g.p.IsInfinity()
}

// Equal reports whether g and h are the same element.
func (g G2Point) Equal(h G2Point) bool {
	return g.p.Equal(&h.p)
}

// PairingCheck reports whether Π e(a[i], b[i]) is the identity of GT.
// Every G1 point must be a BLS12-381 point.
func PairingCheck(a []Point, b []G2Point) (bool, error) {
	if len(a) != len(b) || len(a) == 0 {
		return false, errors.New("curve: pairing check needs equal, non-empty inputs")
	}
	g1 := make([]bls12381.G1Affine, len(a))
	g2 := make([]bls12381.G2Affine, len(b))
	for i := range a {
		if !a[i].c.Pairing() {
			return false, fmt.Errorf("curve: pairing input %d is a %s point", i, a[i].c)
		}
		g1[i] = a[i].g1
		g2[i] = b[i].p
	}
	return bls12381.PairingCheck(g1, g2)
}
