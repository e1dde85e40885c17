package sigma_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/internal/testutil"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/sigma"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

type fixture struct {
	name   string
	st     statement.Statement
	w      statement.Witness
	linked []int
}

func challengeFor(label string, commitment []byte) transcript.Challenge {
	tr := transcript.New("sigma-test")
	tr.Append("label", []byte(label))
	tr.Append("commitment", commitment)
	return tr.Challenge("c")
}

func fixtures(t *testing.T) []fixture {
	t.Helper()
	rng := testutil.NewRand("sigma-fixtures")
	var out []fixture

	for _, c := range []curve.Curve{curve.BLS12381, curve.Secp256k1} {
		x := testutil.Scalars(t, rng, c, 1)[0]
		g := curve.Generator(c)
		out = append(out, fixture{
			name: "dlog/" + c.String(),
			st:   &statement.DiscreteLog{Base: g, Public: g.Mul(x)},
			w:    &statement.DiscreteLogWitness{X: x},
		})

		bases := testutil.Bases(t, "ped", c, 4)
		xs := testutil.Scalars(t, rng, c, 4)
		out = append(out, fixture{
			name:   "pedersen/" + c.String(),
			st:     &statement.PedersenCommitment{Bases: bases, Commitment: curve.MultiScalarMul(bases, xs)},
			w:      &statement.PedersenWitness{Openings: xs},
			linked: []int{1, 3},
		})

		sk := testutil.Scalars(t, rng, c, 1)[0]
		pk := g.Mul(sk)
		h := testutil.Bases(t, "elgamal-h", c, 1)[0]
		m := testutil.Scalars(t, rng, c, 1)[0]
		ct, r, err := curve.EncryptElGamal(rng, pk, h, m)
		require.NoError(t, err)
		out = append(out, fixture{
			name:   "encryption/" + c.String(),
			st:     &statement.VerifiableEncryption{EncryptionKey: pk, MessageBase: h, Ciphertext: ct},
			w:      &statement.VerifiableEncryptionWitness{Message: m, Randomness: r},
			linked: []int{0},
		})

		for _, n := range []int{1, 5, 8} {
			vb := testutil.Bases(t, "cvo", c, n)
			vx := testutil.Scalars(t, rng, c, n)
			out = append(out, fixture{
				name:   "compressed/" + c.String(),
				st:     &statement.CompressedVectorOpening{Bases: vb, Commitment: curve.MultiScalarMul(vb, vx)},
				w:      &statement.CompressedVectorWitness{Openings: vx},
				linked: []int{0},
			})
		}
	}

	cred := testutil.NewCredential(t, "sigma-bbs", 5)
	out = append(out, fixture{
		name: "bbs",
		st: &statement.BBSSignature{
			Params:    cred.Params,
			PublicKey: cred.Keypair.PublicKey,
			Revealed:  map[int]curve.Scalar{1: cred.Messages[1], 4: cred.Messages[4]},
		},
		w:      &statement.BBSSignatureWitness{Signature: cred.Signature, Messages: cred.Messages},
		linked: []int{0, 2},
	})

	y := testutil.Scalars(t, rng, curve.BLS12381, 1)[0]
	set := testutil.NewAccumulatorSet(t, "sigma-acc", []curve.Scalar{y}, 3)
	mw, err := set.Acc.MembershipWitness(y)
	require.NoError(t, err)
	out = append(out, fixture{
		name:   "membership",
		st:     &statement.AccumulatorMembership{Params: set.Params, PublicKey: set.Keypair.PublicKey, Value: set.Acc.Value()},
		w:      &statement.AccumulatorMembershipWitness{Element: y, Witness: mw},
		linked: []int{0},
	})

	outsider := testutil.Scalars(t, rng, curve.BLS12381, 1)[0]
	nmw, err := set.Acc.NonMembershipWitness(outsider)
	require.NoError(t, err)
	out = append(out, fixture{
		name:   "non-membership",
		st:     &statement.AccumulatorNonMembership{Params: set.Params, PublicKey: set.Keypair.PublicKey, Value: set.Acc.Value()},
		w:      &statement.AccumulatorNonMembershipWitness{Element: outsider, Witness: nmw},
		linked: []int{0},
	})
	return out
}

func prove(t *testing.T, f fixture, seed string) (commitment []byte, ch transcript.Challenge, response []byte) {
	t.Helper()
	rng := testutil.NewRand(seed)
	injected := sigma.Blindings{}
	for _, slot := range f.linked {
		b, err := curve.RandomScalar(f.st.Curve(), rng)
		require.NoError(t, err)
		injected[slot] = b
	}
	p, err := sigma.Init(f.st, f.w, injected, rng)
	require.NoError(t, err)
	defer p.Zeroize()

	commitment = p.Commitment()
	contrib, err := sigma.Contribution(f.st, commitment)
	require.NoError(t, err)
	ch = challengeFor(f.name, contrib)
	response, err = p.Respond(ch)
	require.NoError(t, err)
	return commitment, ch, response
}

// TestCompleteness checks that every adapter accepts an honest proof.
func TestCompleteness(t *testing.T) {
	for _, f := range fixtures(t) {
		t.Run(f.name, func(t *testing.T) {
			commitment, ch, response := prove(t, f, "complete-"+f.name)
			got, err := sigma.Verify(f.st, commitment, ch, response, f.linked)
			require.NoError(t, err)
			assert.Len(t, got, len(f.linked))
		})
	}
}

// TestInjectedBlindingGivesEqualResponses checks that equal witnesses with a
// shared blinding answer identically in different adapters.
func TestInjectedBlindingGivesEqualResponses(t *testing.T) {
	rng := testutil.NewRand("equal-responses")
	c := curve.Secp256k1
	x := testutil.Scalars(t, rng, c, 1)[0]
	g := curve.Generator(c)
	bases := testutil.Bases(t, "eq", c, 2)
	r := testutil.Scalars(t, rng, c, 1)[0]

	dl := &statement.DiscreteLog{Base: g, Public: g.Mul(x)}
	ped := &statement.PedersenCommitment{Bases: bases, Commitment: curve.MultiScalarMul(bases, []curve.Scalar{r, x})}

	shared := testutil.Scalars(t, rng, c, 1)[0]
	p1, err := sigma.Init(dl, &statement.DiscreteLogWitness{X: x}, sigma.Blindings{0: shared}, rng)
	require.NoError(t, err)
	p2, err := sigma.Init(ped, &statement.PedersenWitness{Openings: []curve.Scalar{r, x}}, sigma.Blindings{1: shared}, rng)
	require.NoError(t, err)

	ch := challengeFor("eq", append(p1.Commitment(), p2.Commitment()...))
	resp1, err := p1.Respond(ch)
	require.NoError(t, err)
	resp2, err := p2.Respond(ch)
	require.NoError(t, err)

	s1, err := sigma.Verify(dl, p1.Commitment(), ch, resp1, []int{0})
	require.NoError(t, err)
	s2, err := sigma.Verify(ped, p2.Commitment(), ch, resp2, []int{1})
	require.NoError(t, err)
	assert.True(t, s1[0].Equal(s2[1]))
}

// TestTamperedProofRejected flips bytes in commitments and responses.
func TestTamperedProofRejected(t *testing.T) {
	for _, f := range fixtures(t) {
		t.Run(f.name, func(t *testing.T) {
			commitment, ch, response := prove(t, f, "tamper-"+f.name)

			for _, pos := range []int{0, len(commitment) / 2, len(commitment) - 1} {
				bad := bytes.Clone(commitment)
				bad[pos] ^= 0x01
				_, err := sigma.Verify(f.st, bad, ch, response, f.linked)
				assert.Error(t, err, "commitment byte %d", pos)
			}
			for _, pos := range []int{0, len(response) / 2, len(response) - 1} {
				bad := bytes.Clone(response)
				bad[pos] ^= 0x01
				_, err := sigma.Verify(f.st, commitment, ch, bad, f.linked)
				assert.Error(t, err, "response byte %d", pos)
			}

			other := ch
			other[0] ^= 0x01
			_, err := sigma.Verify(f.st, commitment, other, response, f.linked)
			assert.Error(t, err)

			_, err = sigma.Verify(f.st, commitment, ch, append(bytes.Clone(response), 0), f.linked)
			assert.ErrorIs(t, err, sigma.ErrEncoding)
		})
	}
}

// TestFalseWitnessRejected checks soundness against a witness that does not
// satisfy the statement.
func TestFalseWitnessRejected(t *testing.T) {
	rng := testutil.NewRand("false-witness")
	c := curve.BLS12381
	bases := testutil.Bases(t, "false", c, 3)
	xs := testutil.Scalars(t, rng, c, 3)
	st := &statement.PedersenCommitment{Bases: bases, Commitment: curve.MultiScalarMul(bases, xs)}

	wrong := append([]curve.Scalar(nil), xs...)
	wrong[2] = wrong[2].Add(curve.ScalarFromUint64(c, 1))
	for i := 0; i < 16; i++ {
		p, err := sigma.Init(st, &statement.PedersenWitness{Openings: wrong}, nil, rng)
		require.NoError(t, err)
		ch := challengeFor("false", p.Commitment())
		resp, err := p.Respond(ch)
		require.NoError(t, err)
		_, err = sigma.Verify(st, p.Commitment(), ch, resp, nil)
		assert.ErrorIs(t, err, sigma.ErrRelation)
	}
}

// TestCompressedSizeIsLogarithmic checks the response grows with log n.
func TestCompressedSizeIsLogarithmic(t *testing.T) {
	rng := testutil.NewRand("cvo-size")
	c := curve.BLS12381
	for _, n := range []int{2, 16, 64} {
		bases := testutil.Bases(t, "size", c, n)
		xs := testutil.Scalars(t, rng, c, n)
		f := fixture{
			name: "size",
			st:   &statement.CompressedVectorOpening{Bases: bases, Commitment: curve.MultiScalarMul(bases, xs)},
			w:    &statement.CompressedVectorWitness{Openings: xs},
		}
		commitment, ch, response := prove(t, f, "cvo-size")
		_, err := sigma.Verify(f.st, commitment, ch, response, nil)
		require.NoError(t, err)
		assert.Equal(t, sigma.CompressedResponseSize(c, n, 0), len(response))
		if n >= 16 {
			assert.Less(t, len(response), n*curve.ScalarSize)
		}
	}
	assert.Equal(t, 2*6*48+32, sigma.CompressedResponseSize(c, 64, 0))
}

// TestCompressedAllLinked covers a vector where every slot is exposed.
func TestCompressedAllLinked(t *testing.T) {
	rng := testutil.NewRand("cvo-all")
	c := curve.Secp256k1
	bases := testutil.Bases(t, "all", c, 2)
	xs := testutil.Scalars(t, rng, c, 2)
	f := fixture{
		name:   "all",
		st:     &statement.CompressedVectorOpening{Bases: bases, Commitment: curve.MultiScalarMul(bases, xs)},
		w:      &statement.CompressedVectorWitness{Openings: xs},
		linked: []int{0, 1},
	}
	commitment, ch, response := prove(t, f, "cvo-all")
	got, err := sigma.Verify(f.st, commitment, ch, response, f.linked)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// With a narrower linked set the second scalar is read as the folded
	// final response, so slot 1 is no longer reported.
	partial, err := sigma.Verify(f.st, commitment, ch, response, []int{0})
	require.NoError(t, err)
	require.Len(t, partial, 1)
	assert.True(t, partial[0].Equal(got[0]))
	assert.NotContains(t, partial, 1)
	assert.NotEqual(t, len(got), len(partial))
}

// TestInitRejectsBadInput covers kind mismatch, bad slots and failing randomness.
func TestInitRejectsBadInput(t *testing.T) {
	c := curve.Secp256k1
	g := curve.Generator(c)
	x := curve.ScalarFromUint64(c, 3)
	st := &statement.DiscreteLog{Base: g, Public: g.Mul(x)}

	_, err := sigma.Init(st, &statement.PedersenWitness{}, nil, testutil.NewRand("bad"))
	assert.ErrorIs(t, err, statement.ErrKindMismatch)

	_, err = sigma.Init(st, &statement.DiscreteLogWitness{X: x}, sigma.Blindings{1: x}, testutil.NewRand("bad"))
	assert.ErrorIs(t, err, sigma.ErrSlot)

	_, err = sigma.Init(st, &statement.DiscreteLogWitness{X: x}, sigma.Blindings{0: curve.ScalarFromUint64(curve.BLS12381, 1)}, testutil.NewRand("bad"))
	assert.ErrorIs(t, err, sigma.ErrSlot)

	_, err = sigma.Init(st, &statement.DiscreteLogWitness{X: x}, nil, testutil.NewFailingReader("bad", 0))
	assert.ErrorIs(t, err, sigma.ErrRandomness)

	_, err = sigma.Verify(st, nil, transcript.Challenge{}, nil, []int{5})
	assert.ErrorIs(t, err, sigma.ErrSlot)
}

// TestRespondOnce checks that a prover cannot answer two challenges.
func TestRespondOnce(t *testing.T) {
	c := curve.BLS12381
	g := curve.Generator(c)
	x := curve.ScalarFromUint64(c, 11)
	p, err := sigma.Init(&statement.DiscreteLog{Base: g, Public: g.Mul(x)}, &statement.DiscreteLogWitness{X: x}, nil, testutil.NewRand("once"))
	require.NoError(t, err)

	_, err = p.Respond(challengeFor("a", nil))
	require.NoError(t, err)
	_, err = p.Respond(challengeFor("b", nil))
	assert.ErrorIs(t, err, sigma.ErrResponded)
}
