package zkcompose_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/internal/testutil"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/logging"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
)

var quiet = zkcompose.New(zkcompose.Config{Logger: logging.Nop()})

// opening returns a Pedersen commitment to (x, r) under two fresh bases.
func opening(t *testing.T, label string, x, r curve.Scalar) (*statement.PedersenCommitment, *statement.PedersenWitness) {
	t.Helper()
	bases := testutil.Bases(t, label, x.Curve(), 2)
	xs := []curve.Scalar{x, r}
	return &statement.PedersenCommitment{Bases: bases, Commitment: curve.MultiScalarMul(bases, xs)},
		&statement.PedersenWitness{Openings: xs}
}

func ref(st, slot int) zkcompose.WitnessRef {
	return zkcompose.WitnessRef{Statement: st, Slot: slot}
}

// sharedOpening builds two commitments whose first openings are x and x2.
func sharedOpening(t *testing.T, seed string, x, x2 curve.Scalar) (*zkcompose.ProofSpec, []statement.Witness) {
	t.Helper()
	rng := testutil.NewRand(seed)
	rs := testutil.Scalars(t, rng, x.Curve(), 2)
	s1, w1 := opening(t, seed+"/c1", x, rs[0])
	s2, w2 := opening(t, seed+"/c2", x2, rs[1])
	spec, err := zkcompose.NewProofSpec(
		[]statement.Statement{s1, s2},
		[]zkcompose.EqualWitnesses{zkcompose.Link(ref(0, 0), ref(1, 0))},
		[]byte("shared-opening"),
	)
	require.NoError(t, err)
	return spec, []statement.Witness{w1, w2}
}

// TestSharedOpening is the two-commitment scenario: equal openings are
// accepted, a consistent but different opening violates the class.
func TestSharedOpening(t *testing.T) {
	ctx := context.Background()
	for _, c := range []curve.Curve{curve.BLS12381, curve.Secp256k1} {
		t.Run(c.String(), func(t *testing.T) {
			rng := testutil.NewRand("shared-" + c.String())
			x := testutil.Scalars(t, rng, c, 1)[0]

			spec, ws := sharedOpening(t, "same", x, x)
			proof, err := quiet.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: ws, Rand: rng})
			require.NoError(t, err)
			require.NoError(t, quiet.Verify(ctx, &zkcompose.VerifyParams{Spec: spec, Proof: proof}))

			other := x.Add(curve.ScalarFromUint64(c, 1))
			spec, ws = sharedOpening(t, "different", x, other)
			proof, err = quiet.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: ws, Rand: rng})
			require.NoError(t, err)
			err = quiet.Verify(ctx, &zkcompose.VerifyParams{Spec: spec, Proof: proof})
			require.ErrorIs(t, err, zkcompose.ErrEqualityViolation)
			var ev *zkcompose.EqualityViolationError
			require.ErrorAs(t, err, &ev)
			assert.Equal(t, 0, ev.Class)
			assert.Equal(t, zkcompose.ReasonEqualityViolation, zkcompose.ReasonOf(err))
		})
	}
}

// composite is a proof over every statement kind with two classes: one on
// BLS12-381 tying a hidden credential attribute to accumulator membership,
// an encryption and a vector entry; one on secp256k1 tying a discrete log to
// a commitment opening.
type composite struct {
	spec      *zkcompose.ProofSpec
	witnesses []statement.Witness
}

func newComposite(t *testing.T, seed string) *composite {
	t.Helper()
	rng := testutil.NewRand(seed)

	cred := testutil.NewCredential(t, seed+"/cred", 5)
	attr := cred.Messages[2]
	outsider := cred.Messages[3]

	set := testutil.NewAccumulatorSet(t, seed+"/acc", []curve.Scalar{attr}, 3)
	mw, err := set.Acc.MembershipWitness(attr)
	require.NoError(t, err)
	nmw, err := set.Acc.NonMembershipWitness(outsider)
	require.NoError(t, err)

	ek, err := curve.RandomNonZeroScalar(curve.BLS12381, rng)
	require.NoError(t, err)
	pk := curve.Generator(curve.BLS12381).Mul(ek)
	h := testutil.Bases(t, seed+"/elgamal", curve.BLS12381, 1)[0]
	ct, encR, err := curve.EncryptElGamal(rng, pk, h, attr)
	require.NoError(t, err)

	vb := testutil.Bases(t, seed+"/vector", curve.BLS12381, 6)
	vx := testutil.Scalars(t, rng, curve.BLS12381, 6)
	vx[1] = attr

	k := testutil.Scalars(t, rng, curve.Secp256k1, 1)[0]
	g := curve.Generator(curve.Secp256k1)
	ped, pedW := opening(t, seed+"/ped", k, testutil.Scalars(t, rng, curve.Secp256k1, 1)[0])

	statements := []statement.Statement{
		&statement.BBSSignature{
			Params:    cred.Params,
			PublicKey: cred.Keypair.PublicKey,
			Revealed:  map[int]curve.Scalar{0: cred.Messages[0]},
		},
		&statement.AccumulatorMembership{Params: set.Params, PublicKey: set.Keypair.PublicKey, Value: set.Acc.Value()},
		&statement.AccumulatorNonMembership{Params: set.Params, PublicKey: set.Keypair.PublicKey, Value: set.Acc.Value()},
		&statement.VerifiableEncryption{EncryptionKey: pk, MessageBase: h, Ciphertext: ct},
		&statement.CompressedVectorOpening{Bases: vb, Commitment: curve.MultiScalarMul(vb, vx)},
		&statement.DiscreteLog{Base: g, Public: g.Mul(k)},
		ped,
	}
	witnesses := []statement.Witness{
		&statement.BBSSignatureWitness{Signature: cred.Signature, Messages: cred.Messages},
		&statement.AccumulatorMembershipWitness{Element: attr, Witness: mw},
		&statement.AccumulatorNonMembershipWitness{Element: outsider, Witness: nmw},
		&statement.VerifiableEncryptionWitness{Message: attr, Randomness: encR},
		&statement.CompressedVectorWitness{Openings: vx},
		&statement.DiscreteLogWitness{X: k},
		pedW,
	}
	classes := []zkcompose.EqualWitnesses{
		zkcompose.Link(ref(0, 2), ref(1, 0), ref(3, statement.EncryptionMessageSlot), ref(4, 1)),
		zkcompose.Link(ref(0, 3), ref(2, 0)),
		zkcompose.Link(ref(5, 0), ref(6, 0)),
	}
	spec, err := zkcompose.NewProofSpec(statements, classes, []byte("composite"))
	require.NoError(t, err)
	return &composite{spec: spec, witnesses: witnesses}
}

func (c *composite) prove(t *testing.T, seed string, nonce []byte) *zkcompose.Proof {
	t.Helper()
	proof, err := quiet.Prove(context.Background(), &zkcompose.ProveParams{
		Spec:      c.spec,
		Witnesses: c.witnesses,
		Rand:      testutil.NewRand(seed),
		Nonce:     nonce,
	})
	require.NoError(t, err)
	return proof
}

// TestCompositeProof proves every statement kind at once.
func TestCompositeProof(t *testing.T) {
	c := newComposite(t, "composite")
	proof := c.prove(t, "composite-prove", []byte("nonce-1"))
	require.Len(t, proof.Statements, 7)

	ctx := context.Background()
	require.NoError(t, quiet.Verify(ctx, &zkcompose.VerifyParams{Spec: c.spec, Proof: proof, Nonce: []byte("nonce-1")}))

	err := quiet.Verify(ctx, &zkcompose.VerifyParams{Spec: c.spec, Proof: proof, Nonce: []byte("nonce-2")})
	assert.ErrorIs(t, err, zkcompose.ErrChallengeMismatch)

	other := zkcompose.New(zkcompose.Config{Logger: logging.Nop(), Domain: "other-domain"})
	err = other.Verify(ctx, &zkcompose.VerifyParams{Spec: c.spec, Proof: proof, Nonce: []byte("nonce-1")})
	assert.ErrorIs(t, err, zkcompose.ErrChallengeMismatch)
}

// TestVerificationIsDeterministic checks repeated and differently
// parallelized verification agree.
func TestVerificationIsDeterministic(t *testing.T) {
	c := newComposite(t, "determinism")
	proof := c.prove(t, "determinism-prove", nil)
	bad := proof.Clone()
	bad.Statements[4].Response[0] ^= 0x01

	for _, workers := range []int{1, 2, 8} {
		e := zkcompose.New(zkcompose.Config{Logger: logging.Nop(), Workers: workers})
		for i := 0; i < 2; i++ {
			require.NoError(t, e.Verify(context.Background(), &zkcompose.VerifyParams{Spec: c.spec, Proof: proof}))
			err := e.Verify(context.Background(), &zkcompose.VerifyParams{Spec: c.spec, Proof: bad})
			var si *zkcompose.StatementInvalidError
			require.ErrorAs(t, err, &si)
			assert.Equal(t, 4, si.Index)
			assert.Equal(t, statement.KindCompressedVectorOpening, si.Kind)
		}
	}
}

// TestSameRandomnessSameProof checks the prover is a function of its inputs
// and randomness, whatever the worker count.
func TestSameRandomnessSameProof(t *testing.T) {
	spec, ws := sharedOpening(t, "repeat", curve.ScalarFromUint64(curve.Secp256k1, 7), curve.ScalarFromUint64(curve.Secp256k1, 7))
	var encodings [][]byte
	for _, workers := range []int{1, 4} {
		e := zkcompose.New(zkcompose.Config{Logger: logging.Nop(), Workers: workers})
		proof, err := e.Prove(context.Background(), &zkcompose.ProveParams{Spec: spec, Witnesses: ws, Rand: testutil.NewRand("repeat")})
		require.NoError(t, err)
		enc, err := proof.MarshalBinary()
		require.NoError(t, err)
		encodings = append(encodings, enc)
	}
	assert.True(t, bytes.Equal(encodings[0], encodings[1]))
}

// TestCallerRandomnessBudget checks that only the coordinator reads the
// caller's reader: one scalar per class and one seed per statement.
func TestCallerRandomnessBudget(t *testing.T) {
	c := newComposite(t, "budget")
	counter := &testutil.CountingReader{R: testutil.NewRand("budget-prove")}
	_, err := quiet.Prove(context.Background(), &zkcompose.ProveParams{Spec: c.spec, Witnesses: c.witnesses, Rand: counter})
	require.NoError(t, err)
	assert.Equal(t, 3*64+7*32, counter.N)
}

// TestTamperedProofRejected flips every byte of an encoded proof.
func TestTamperedProofRejected(t *testing.T) {
	rng := testutil.NewRand("tamper")
	x := testutil.Scalars(t, rng, curve.Secp256k1, 1)[0]
	spec, ws := sharedOpening(t, "tamper", x, x)
	proof, err := quiet.Prove(context.Background(), &zkcompose.ProveParams{Spec: spec, Witnesses: ws, Rand: rng})
	require.NoError(t, err)
	enc, err := proof.MarshalBinary()
	require.NoError(t, err)

	for i := range enc {
		bad := bytes.Clone(enc)
		bad[i] ^= 0x01
		decoded, err := zkcompose.UnmarshalProof(bad)
		if err != nil {
			assert.ErrorIs(t, err, zkcompose.ErrMalformed)
			continue
		}
		err = quiet.Verify(context.Background(), &zkcompose.VerifyParams{Spec: spec, Proof: decoded})
		assert.Error(t, err, "flip at byte %d accepted", i)
	}
}

// TestCompositeTamperRejected flips every byte of the challenge and of each
// statement's commitment and response in a proof covering every kind.
func TestCompositeTamperRejected(t *testing.T) {
	c := newComposite(t, "composite-tamper")
	ctx := context.Background()
	proof, err := quiet.Prove(ctx, &zkcompose.ProveParams{Spec: c.spec, Witnesses: c.witnesses, Rand: testutil.NewRand("composite-tamper-prove")})
	require.NoError(t, err)
	require.NoError(t, quiet.Verify(ctx, &zkcompose.VerifyParams{Spec: c.spec, Proof: proof}))

	reject := func(name string, mutate func(p *zkcompose.Proof)) {
		t.Helper()
		bad := proof.Clone()
		mutate(bad)
		err := quiet.Verify(ctx, &zkcompose.VerifyParams{Spec: c.spec, Proof: bad})
		assert.Error(t, err, "%s accepted", name)
	}

	for i := range proof.Challenge {
		reject(fmt.Sprintf("challenge[%d]", i), func(p *zkcompose.Proof) { p.Challenge[i] ^= 0x01 })
	}
	for s, sp := range proof.Statements {
		for i := range sp.Commitment {
			reject(fmt.Sprintf("statement %d commitment[%d]", s, i), func(p *zkcompose.Proof) { p.Statements[s].Commitment[i] ^= 0x01 })
		}
		for i := range sp.Response {
			reject(fmt.Sprintf("statement %d response[%d]", s, i), func(p *zkcompose.Proof) { p.Statements[s].Response[i] ^= 0x01 })
		}
		reject(fmt.Sprintf("statement %d kind", s), func(p *zkcompose.Proof) {
			p.Statements[s].Kind = statement.KindDiscreteLog + (p.Statements[s].Kind % 7)
		})
	}
}

// TestFraudulentWitnessRejected checks soundness of the class check over
// many independent challenges.
func TestFraudulentWitnessRejected(t *testing.T) {
	rng := testutil.NewRand("fraud")
	c := curve.BLS12381
	for i := 0; i < 20; i++ {
		x := testutil.Scalars(t, rng, c, 2)
		spec, ws := sharedOpening(t, fmt.Sprintf("fraud-%d", i), x[0], x[1])
		proof, err := quiet.Prove(context.Background(), &zkcompose.ProveParams{
			Spec:      spec,
			Witnesses: ws,
			Rand:      rng,
			Nonce:     []byte{byte(i)},
		})
		require.NoError(t, err)
		err = quiet.Verify(context.Background(), &zkcompose.VerifyParams{Spec: spec, Proof: proof, Nonce: []byte{byte(i)}})
		require.ErrorIs(t, err, zkcompose.ErrEqualityViolation)
	}

	// A witness that does not open its statement fails that statement.
	x := testutil.Scalars(t, rng, c, 1)[0]
	spec, ws := sharedOpening(t, "unsatisfied", x, x)
	ws[1].(*statement.PedersenWitness).Openings[1] = curve.ScalarFromUint64(c, 5)
	proof, err := quiet.Prove(context.Background(), &zkcompose.ProveParams{Spec: spec, Witnesses: ws, Rand: rng})
	require.NoError(t, err)
	err = quiet.Verify(context.Background(), &zkcompose.VerifyParams{Spec: spec, Proof: proof})
	var si *zkcompose.StatementInvalidError
	require.ErrorAs(t, err, &si)
	assert.Equal(t, 1, si.Index)
}

// TestMalformedSpecs covers every rejection NewProofSpec performs.
func TestMalformedSpecs(t *testing.T) {
	rng := testutil.NewRand("malformed")
	xs := testutil.Scalars(t, rng, curve.Secp256k1, 2)
	s1, _ := opening(t, "m1", xs[0], xs[1])
	s2, _ := opening(t, "m2", xs[0], xs[1])
	bx := testutil.Scalars(t, rng, curve.BLS12381, 2)
	s3, _ := opening(t, "m3", bx[0], bx[1])
	cred := testutil.NewCredential(t, "malformed-cred", 3)
	sig := &statement.BBSSignature{
		Params:    cred.Params,
		PublicKey: cred.Keypair.PublicKey,
		Revealed:  map[int]curve.Scalar{1: cred.Messages[1]},
	}
	stmts := []statement.Statement{s1, s2, s3, sig}

	tests := []struct {
		name       string
		statements []statement.Statement
		classes    []zkcompose.EqualWitnesses
	}{
		{"no statements", nil, nil},
		{"nil statement", []statement.Statement{s1, nil}, nil},
		{"invalid statement", []statement.Statement{&statement.PedersenCommitment{}}, nil},
		{"singleton class", stmts, []zkcompose.EqualWitnesses{{ref(0, 0)}}},
		{"duplicate collapses to singleton", stmts, []zkcompose.EqualWitnesses{{ref(0, 0), ref(0, 0)}}},
		{"statement out of range", stmts, []zkcompose.EqualWitnesses{{ref(0, 0), ref(9, 0)}}},
		{"negative statement", stmts, []zkcompose.EqualWitnesses{{ref(-1, 0), ref(0, 0)}}},
		{"slot out of range", stmts, []zkcompose.EqualWitnesses{{ref(0, 0), ref(1, 2)}}},
		{"overlapping classes", stmts, []zkcompose.EqualWitnesses{{ref(0, 0), ref(1, 0)}, {ref(1, 0), ref(0, 1)}}},
		{"cross-curve class", stmts, []zkcompose.EqualWitnesses{{ref(0, 0), ref(2, 0)}}},
		{"revealed message in class", stmts, []zkcompose.EqualWitnesses{{ref(2, 0), ref(3, 1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := zkcompose.NewProofSpec(tt.statements, tt.classes, nil)
			require.ErrorIs(t, err, zkcompose.ErrMalformed)
			assert.Equal(t, zkcompose.ReasonMalformed, zkcompose.ReasonOf(err))
		})
	}

	spec, err := zkcompose.NewProofSpec(stmts, []zkcompose.EqualWitnesses{{ref(1, 1), ref(0, 1), ref(1, 1)}, {ref(2, 0), ref(3, 2)}}, []byte("ctx"))
	require.NoError(t, err)
	assert.Equal(t, []zkcompose.EqualWitnesses{{ref(0, 1), ref(1, 1)}, {ref(2, 0), ref(3, 2)}}, spec.Classes())
	assert.Equal(t, []int{1}, spec.LinkedSlots(0))
	assert.Equal(t, []int{2}, spec.LinkedSlots(3))
	assert.Empty(t, spec.LinkedSlots(9))
	assert.Equal(t, []byte("ctx"), spec.Context())
	assert.Equal(t, 4, spec.Len())
}

// TestProveRejectsBadWitnesses covers alignment, kind and shape errors.
func TestProveRejectsBadWitnesses(t *testing.T) {
	x := curve.ScalarFromUint64(curve.Secp256k1, 9)
	spec, ws := sharedOpening(t, "bad-witness", x, x)
	ctx := context.Background()

	_, err := quiet.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: ws[:1]})
	assert.ErrorIs(t, err, zkcompose.ErrMalformed)

	_, err = quiet.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: []statement.Witness{ws[0], &statement.DiscreteLogWitness{X: x}}})
	var tm *zkcompose.TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, 1, tm.Index)
	assert.ErrorIs(t, err, zkcompose.ErrTypeMismatch)
	assert.ErrorIs(t, err, statement.ErrKindMismatch)

	short := &statement.PedersenWitness{Openings: []curve.Scalar{x}}
	_, err = quiet.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: []statement.Witness{short, ws[1]}})
	assert.ErrorIs(t, err, zkcompose.ErrMalformed)
	assert.ErrorIs(t, err, statement.ErrShape)
	assert.NotErrorIs(t, err, zkcompose.ErrTypeMismatch)
	var me *zkcompose.MalformedError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "witness 0", me.Reason)

	_, err = quiet.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: []statement.Witness{ws[0], (*statement.PedersenWitness)(nil)}})
	assert.ErrorIs(t, err, zkcompose.ErrMalformed)
	assert.ErrorIs(t, err, statement.ErrShape)

	_, err = quiet.Prove(ctx, nil)
	assert.ErrorIs(t, err, zkcompose.ErrMalformed)
	_, err = quiet.Prove(ctx, &zkcompose.ProveParams{Witnesses: ws})
	assert.ErrorIs(t, err, zkcompose.ErrMalformed)
}

// TestRandomnessFailure fails the caller's reader at each stage of the
// coordinator's draws.
func TestRandomnessFailure(t *testing.T) {
	x := curve.ScalarFromUint64(curve.BLS12381, 3)
	spec, ws := sharedOpening(t, "rng-fail", x, x)
	for _, budget := range []int{0, 63, 64, 64 + 32} {
		_, err := quiet.Prove(context.Background(), &zkcompose.ProveParams{
			Spec:      spec,
			Witnesses: ws,
			Rand:      testutil.NewFailingReader("rng-fail", budget),
		})
		require.ErrorIs(t, err, zkcompose.ErrRandomnessFailure, "budget %d", budget)
	}
}

// TestShapeMismatch covers proofs that do not fit their ProofSpec.
func TestShapeMismatch(t *testing.T) {
	x := curve.ScalarFromUint64(curve.Secp256k1, 4)
	spec, ws := sharedOpening(t, "shape", x, x)
	proof, err := quiet.Prove(context.Background(), &zkcompose.ProveParams{Spec: spec, Witnesses: ws, Rand: testutil.NewRand("shape")})
	require.NoError(t, err)

	mutations := map[string]func(p *zkcompose.Proof){
		"missing statement": func(p *zkcompose.Proof) { p.Statements = p.Statements[:1] },
		"extra statement":   func(p *zkcompose.Proof) { p.Statements = append(p.Statements, p.Statements[0]) },
		"wrong kind":        func(p *zkcompose.Proof) { p.Statements[1].Kind = statement.KindDiscreteLog },
		"short challenge":   func(p *zkcompose.Proof) { p.Challenge = p.Challenge[:32] },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			bad := proof.Clone()
			mutate(bad)
			err := quiet.Verify(context.Background(), &zkcompose.VerifyParams{Spec: spec, Proof: bad})
			require.ErrorIs(t, err, zkcompose.ErrShapeMismatch)
			assert.Equal(t, zkcompose.ReasonShapeMismatch, zkcompose.ReasonOf(err))
		})
	}

	err = quiet.Verify(context.Background(), &zkcompose.VerifyParams{Spec: spec})
	assert.ErrorIs(t, err, zkcompose.ErrMalformed)
}

// TestCancelledContext checks that a done context aborts both directions.
func TestCancelledContext(t *testing.T) {
	x := curve.ScalarFromUint64(curve.Secp256k1, 4)
	spec, ws := sharedOpening(t, "cancel", x, x)
	proof, err := quiet.Prove(context.Background(), &zkcompose.ProveParams{Spec: spec, Witnesses: ws, Rand: testutil.NewRand("cancel")})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = quiet.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: ws})
	assert.ErrorIs(t, err, context.Canceled)
	err = quiet.Verify(ctx, &zkcompose.VerifyParams{Spec: spec, Proof: proof})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, zkcompose.ReasonUnknown, zkcompose.ReasonOf(err))
}

// TestConcurrentVerification verifies independent proofs from many
// goroutines sharing one engine.
func TestConcurrentVerification(t *testing.T) {
	const numGoroutines = 8
	type job struct {
		spec  *zkcompose.ProofSpec
		proof *zkcompose.Proof
	}
	jobs := make([]job, numGoroutines)
	for i := range jobs {
		x := curve.ScalarFromUint64(curve.Secp256k1, uint64(100+i))
		spec, ws := sharedOpening(t, fmt.Sprintf("concurrent-%d", i), x, x)
		proof, err := quiet.Prove(context.Background(), &zkcompose.ProveParams{Spec: spec, Witnesses: ws})
		require.NoError(t, err)
		jobs[i] = job{spec: spec, proof: proof}
	}

	var wg sync.WaitGroup
	errs := make(chan error, numGoroutines*2)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			j := jobs[id]
			if err := quiet.Verify(context.Background(), &zkcompose.VerifyParams{Spec: j.spec, Proof: j.proof}); err != nil {
				errs <- fmt.Errorf("goroutine %d: %w", id, err)
			}
			// Another goroutine's proof must not verify against this spec.
			other := jobs[(id+1)%numGoroutines]
			if err := quiet.Verify(context.Background(), &zkcompose.VerifyParams{Spec: j.spec, Proof: other.proof}); err == nil {
				errs <- fmt.Errorf("goroutine %d: foreign proof accepted", id)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// TestDefaultEngine exercises the package-level helpers.
func TestDefaultEngine(t *testing.T) {
	x := curve.ScalarFromUint64(curve.BLS12381, 12)
	spec, ws := sharedOpening(t, "default", x, x)
	proof, err := zkcompose.Prove(context.Background(), &zkcompose.ProveParams{Spec: spec, Witnesses: ws})
	require.NoError(t, err)
	require.NoError(t, zkcompose.Verify(context.Background(), &zkcompose.VerifyParams{Spec: spec, Proof: proof}))
}

// TestReasonOf maps wrapped errors to their codes.
func TestReasonOf(t *testing.T) {
	tests := []struct {
		err  error
		want zkcompose.Reason
	}{
		{nil, zkcompose.ReasonAccepted},
		{fmt.Errorf("wrapped: %w", zkcompose.ErrShapeMismatch), zkcompose.ReasonShapeMismatch},
		{zkcompose.ErrChallengeMismatch, zkcompose.ReasonChallengeMismatch},
		{&zkcompose.StatementInvalidError{Index: 2, Err: errors.New("x")}, zkcompose.ReasonStatementInvalid},
		{&zkcompose.EqualityViolationError{Class: 1}, zkcompose.ReasonEqualityViolation},
		{&zkcompose.MalformedError{Reason: "r"}, zkcompose.ReasonMalformed},
		{errors.New("other"), zkcompose.ReasonUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, zkcompose.ReasonOf(tt.err))
	}
	assert.Equal(t, "equality_violation", zkcompose.ReasonEqualityViolation.String())
}
