package testutil

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/accumulator"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/bbs"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

// Scalars draws n scalars of curve c from rng.
func Scalars(t testing.TB, rng io.Reader, c curve.Curve, n int) []curve.Scalar {
	t.Helper()
	out := make([]curve.Scalar, n)
	for i := range out {
		var err error
		out[i], err = curve.RandomScalar(c, rng)
		require.NoError(t, err)
	}
	return out
}

// Bases returns n independent hash-derived generators of curve c.
func Bases(t testing.TB, label string, c curve.Curve, n int) []curve.Point {
	t.Helper()
	out := make([]curve.Point, n)
	for i := range out {
		var idx [8]byte
		binary.BigEndian.PutUint64(idx[:], uint64(i))
		var err error
		out[i], err = curve.HashToPoint(c, []byte("zkcompose-testutil:"+label), idx[:])
		require.NoError(t, err)
	}
	return out
}

// Credential is a BBS+ signature with its keys and messages.
type Credential struct {
	Params    *bbs.Params
	Keypair   *bbs.Keypair
	Messages  []curve.Scalar
	Signature *bbs.Signature
}

// NewCredential signs n random messages under a fresh key.
func NewCredential(t testing.TB, seed string, n int) *Credential {
	t.Helper()
	rng := NewRand(seed)
	params, err := bbs.NewParams([]byte("zkcompose-testutil:"+seed), n)
	require.NoError(t, err)
	kp, err := bbs.GenerateKeypair(rng, params)
	require.NoError(t, err)
	msgs := Scalars(t, rng, curve.BLS12381, n)
	sig, err := bbs.Sign(rng, msgs, kp.SecretKey, params)
	require.NoError(t, err)
	return &Credential{Params: params, Keypair: kp, Messages: msgs, Signature: sig}
}

// AccumulatorSet is an accumulator holding a known member list.
type AccumulatorSet struct {
	Params  *accumulator.Params
	Keypair *accumulator.Keypair
	Acc     *accumulator.Accumulator
	Members []curve.Scalar
}

// NewAccumulatorSet accumulates members plus n random fillers.
func NewAccumulatorSet(t testing.TB, seed string, members []curve.Scalar, fillers int) *AccumulatorSet {
	t.Helper()
	rng := NewRand(seed)
	params, err := accumulator.NewParams([]byte("zkcompose-testutil:" + seed))
	require.NoError(t, err)
	kp, err := accumulator.GenerateKeypair(rng, params)
	require.NoError(t, err)
	acc, err := accumulator.New(params, kp)
	require.NoError(t, err)

	all := append(append([]curve.Scalar(nil), members...), Scalars(t, rng, curve.BLS12381, fillers)...)
	for _, y := range all {
		require.NoError(t, acc.Add(y))
	}
	return &AccumulatorSet{Params: params, Keypair: kp, Acc: acc, Members: all}
}
