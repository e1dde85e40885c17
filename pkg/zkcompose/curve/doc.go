// Package curve provides the scalar and point algebra used by the proof engine.
//
// Two scalar domains are supported:
//
//   - BLS12381: the G1 group of BLS12-381 (via gnark-crypto). This is the only
//     domain with a pairing, so signature and accumulator statements live here.
//   - Secp256k1: the Bitcoin curve (via btcec). Discrete-log, Pedersen and
//     ElGamal statements may use it.
//
// # Key Types
//
//   - Curve: enum naming a scalar domain
//   - Scalar: an element of the domain's scalar field
//   - Point: a group element of the domain
//   - G2Point: a BLS12-381 G2 element, used only for pairing checks
//   - ElGamalCiphertext: an exponential ElGamal ciphertext (C1, C2)
//
// Scalars and points are small value types tagged with their curve. Mixing
// curves in one arithmetic operation is a programming error and panics; the
// statement layer guarantees all values of one statement share a curve.
//
// # Encodings
//
// Encodings are canonical: re-encoding a decoded value reproduces the input
// bytes exactly.
//
//	Scalar             32 bytes, big-endian, rejected if >= group order
//	Point (BLS12381)   48 bytes, compressed
//	Point (Secp256k1)  33 bytes, compressed; identity is 33 zero bytes
//	G2Point            96 bytes, compressed
//
// # Common Operations
//
//	x, err := curve.RandomScalar(curve.BLS12381, rand.Reader)
//	y := curve.Generator(curve.BLS12381).Mul(x)
//	h, err := curve.HashToPoint(curve.BLS12381, []byte("my-app"), []byte("h"))
//
// Secret scalars should be cleared with Zeroize once no longer needed.
package curve
