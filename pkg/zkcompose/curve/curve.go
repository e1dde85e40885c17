package curve

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Curve identifies a scalar domain.
type Curve struct {
	id uint8
}

// Supported curves.
var (
	Unknown   = Curve{id: 0}
	BLS12381  = Curve{id: 1}
	Secp256k1 = Curve{id: 2}
)

// ScalarSize is the encoded size of a scalar in every supported domain.
const ScalarSize = 32

// ID returns the numeric identifier written into transcripts.
func (c Curve) ID() uint8 {
	return c.id
}

// String returns a human-readable name for the curve.
func (c Curve) String() string {
	switch c {
	case BLS12381:
		return "BLS12-381"
	case Secp256k1:
		return "secp256k1"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the supported curves.
func (c Curve) Valid() bool {
	return c == BLS12381 || c == Secp256k1
}

// Pairing reports whether the curve is pairing-friendly.
func (c Curve) Pairing() bool {
	return c == BLS12381
}

// PointSize returns the size of a compressed point encoding.
func (c Curve) PointSize() int {
	switch c {
	case BLS12381:
		return 48
	case Secp256k1:
		return 33
	default:
		return 0
	}
}

// Order returns a copy of the group order.
func (c Curve) Order() *big.Int {
	switch c {
	case BLS12381:
		return fr.Modulus()
	case Secp256k1:
		return new(big.Int).Set(btcec.S256().Params().N)
	default:
		return big.NewInt(0)
	}
}

func mustMatch(a, b Curve) {
	if a != b {
		panic("curve: mismatched domains " + a.String() + " and " + b.String())
	}
}
