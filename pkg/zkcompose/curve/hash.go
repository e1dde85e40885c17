package curve

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"golang.org/x/crypto/blake2b"
)

// HashToPoint deterministically maps msg to a group element whose discrete
// log relative to the generator is unknown. dst separates independent uses.
//
// BLS12-381 uses the RFC 9380 suite from gnark-crypto. Secp256k1 uses
// BLAKE2b try-and-increment over x coordinates.
func HashToPoint(c Curve, dst, msg []byte) (Point, error) {
	switch c {
	case BLS12381:
		g1, err := bls12381.HashToG1(msg, dst)
		if err != nil {
			return Point{}, fmt.Errorf("curve: hash to G1: %w", err)
		}
		return Point{c: c, g1: g1}, nil
	case Secp256k1:
		return hashToSecp256k1(dst, msg)
	default:
		return Point{}, ErrUnknownCurve
	}
}

// HashToScalar maps msg onto the scalar field with a 64-byte BLAKE2b output.
func HashToScalar(c Curve, dst, msg []byte) Scalar {
	h, _ := blake2b.New512(nil)
	writeLenPrefixed(h, dst)
	writeLenPrefixed(h, msg)
	sum := h.Sum(nil)
	return ScalarFromWideBytes(c, sum)
}

func hashToSecp256k1(dst, msg []byte) (Point, error) {
	var ctr [4]byte
	for i := uint32(0); i < 1<<16; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		h, _ := blake2b.New256(nil)
		writeLenPrefixed(h, dst)
		writeLenPrefixed(h, msg)
		_, _ = h.Write(ctr[:])
		sum := h.Sum(nil)

		var x, y btcec.FieldVal
		if overflow := x.SetByteSlice(sum); overflow {
			continue
		}
		if !btcec.DecompressY(&x, false, &y) {
			continue
		}
		var one btcec.FieldVal
		one.SetInt(1)
		p := Point{c: Secp256k1, k: btcec.MakeJacobianPoint(&x, &y, &one)}
		p.normalize()
		return p, nil
	}
	return Point{}, fmt.Errorf("curve: hash to secp256k1 did not converge")
}

func writeLenPrefixed(w io.Writer, b []byte) {
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(b)))
	_, _ = w.Write(l[:])
	_, _ = w.Write(b)
}
