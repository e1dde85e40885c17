package bbs

import (
	"errors"
	"io"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

const keygenSalt = "BBS-SIG-KEYGEN-SALT-"

// SecretKey is a BBS+ signing key.
type SecretKey struct {
	x curve.Scalar
}

// PublicKey is w = x·g2.
type PublicKey struct {
	W curve.G2Point
}

// Keypair bundles a secret key with its public key.
type Keypair struct {
	SecretKey *SecretKey
	PublicKey *PublicKey
}

// GenerateKeypair draws a fresh keypair from rng.
func GenerateKeypair(rng io.Reader, params *Params) (*Keypair, error) {
	if params == nil {
		return nil, errors.New("nil params")
	}
	x, err := curve.RandomNonZeroScalar(curve.BLS12381, rng)
	if err != nil {
		return nil, err
	}
	sk := &SecretKey{x: x}
	return &Keypair{SecretKey: sk, PublicKey: PublicKeyFromSecret(sk, params)}, nil
}

// KeypairFromSeed derives a keypair deterministically from seed.
func KeypairFromSeed(seed []byte, params *Params) (*Keypair, error) {
	if params == nil {
		return nil, errors.New("nil params")
	}
	sk, err := SecretKeyFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return &Keypair{SecretKey: sk, PublicKey: PublicKeyFromSecret(sk, params)}, nil
}

// SecretKeyFromSeed derives a secret key from seed with a fixed salt.
func SecretKeyFromSeed(seed []byte) (*SecretKey, error) {
	if len(seed) == 0 {
		return nil, errors.New("bbs: empty seed")
	}
	x := curve.HashToScalar(curve.BLS12381, []byte(keygenSalt), seed)
	if x.IsZero() {
		return nil, errors.New("bbs: seed maps to zero key")
	}
	return &SecretKey{x: x}, nil
}

// PublicKeyFromSecret computes w = x·g2.
func PublicKeyFromSecret(sk *SecretKey, params *Params) *PublicKey {
	return &PublicKey{W: params.G2.Mul(sk.x)}
}

// Equal reports whether two secret keys hold the same value.
func (sk *SecretKey) Equal(other *SecretKey) bool {
	return sk.x.Equal(other.x)
}

// Zeroize clears the key.
func (sk *SecretKey) Zeroize() {
	if sk == nil {
		return
	}
	sk.x.Zeroize()
}

// IsValid reports whether the public key is not the identity.
func (pk *PublicKey) IsValid() bool {
	return pk != nil && !pk.W.IsIdentity()
}

// Bytes returns the compressed encoding of w.
func (pk *PublicKey) Bytes() []byte {
	return pk.W.Bytes()
}

// PublicKeyFromBytes decodes a public key.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	w, err := curve.G2FromBytes(b)
	if err != nil {
		return nil, err
	}
	return &PublicKey{W: w}, nil
}
