package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

type demoOptions struct {
	seed   string
	nonce  string
	size   int
	tamper bool
}

func newDemoCmd(a *app) *cobra.Command {
	var opts demoOptions
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Prove and verify a composed statement across both curves",
		Long: `demo builds five statements: a secp256k1 public key, a Pedersen
commitment and an ElGamal ciphertext that all hide the same scalar, plus a
compressed BLS12-381 vector opening whose first entry is the discrete log of
a second public key. It proves them together and verifies the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.seed, "seed", "", "derive all randomness from this seed")
	f.StringVar(&opts.nonce, "nonce", "", "session nonce bound into the challenge")
	f.IntVar(&opts.size, "size", 8, "length of the committed vector")
	f.BoolVar(&opts.tamper, "tamper", false, "flip one response byte before verifying")
	return cmd
}

func demoRand(seed string) (io.Reader, error) {
	if seed == "" {
		return rand.Reader, nil
	}
	return transcript.NewStream([]byte(seed), "zkcompose/cli-demo")
}

func (a *app) runDemo(cmd *cobra.Command, opts demoOptions) error {
	if opts.size < 1 {
		return fmt.Errorf("--size must be at least 1, got %d", opts.size)
	}
	rng, err := demoRand(opts.seed)
	if err != nil {
		return err
	}
	spec, witnesses, err := buildDemo(rng, opts.size)
	if err != nil {
		return err
	}
	defer func() {
		for _, w := range witnesses {
			w.Zeroize()
		}
	}()

	ctx := cmd.Context()
	proof, err := a.engine.Prove(ctx, &zkcompose.ProveParams{
		Spec:      spec,
		Witnesses: witnesses,
		Rand:      rng,
		Nonce:     []byte(opts.nonce),
	})
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}
	if opts.tamper {
		last := proof.Statements[len(proof.Statements)-1].Response
		last[len(last)-1] ^= 0x01
	}
	verr := a.engine.Verify(ctx, &zkcompose.VerifyParams{Spec: spec, Proof: proof, Nonce: []byte(opts.nonce)})

	out := cmd.OutOrStdout()
	renderProof(out, spec, proof)
	enc, err := proof.MarshalBinary()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "encoded proof: %d bytes\n", len(enc))
	fmt.Fprintf(out, "verification: %s\n", zkcompose.ReasonOf(verr))
	return nil
}

func renderProof(w io.Writer, spec *zkcompose.ProofSpec, proof *zkcompose.Proof) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "kind", "curve", "linked slots", "commitment", "response"})
	for i, st := range spec.Statements() {
		slots := make([]string, 0)
		for _, s := range spec.LinkedSlots(i) {
			slots = append(slots, fmt.Sprint(s))
		}
		sp := proof.Statements[i]
		t.AppendRow(table.Row{i, st.Kind(), st.Curve(), strings.Join(slots, ","), len(sp.Commitment), len(sp.Response)})
	}
	t.AppendFooter(table.Row{"", "", "", "", "total", proof.Size()})
	t.Render()
}

// buildDemo returns the demo statements and their witnesses.
func buildDemo(rng io.Reader, size int) (*zkcompose.ProofSpec, []statement.Witness, error) {
	k := curve.Secp256k1
	secret, err := curve.RandomNonZeroScalar(k, rng)
	if err != nil {
		return nil, nil, err
	}
	g := curve.Generator(k)
	h, err := curve.HashToPoint(k, []byte("zkcompose-cli-demo"), []byte("pedersen-h"))
	if err != nil {
		return nil, nil, err
	}
	blinding, err := curve.RandomScalar(k, rng)
	if err != nil {
		return nil, nil, err
	}
	auditorKey, err := curve.RandomNonZeroScalar(k, rng)
	if err != nil {
		return nil, nil, err
	}
	auditor := g.Mul(auditorKey)
	auditorKey.Zeroize()
	ct, encR, err := curve.EncryptElGamal(rng, auditor, h, secret)
	if err != nil {
		return nil, nil, err
	}

	b := curve.BLS12381
	bases := make([]curve.Point, size)
	for i := range bases {
		if bases[i], err = curve.HashToPoint(b, []byte("zkcompose-cli-demo/vector"), []byte(fmt.Sprint(i))); err != nil {
			return nil, nil, err
		}
	}
	vector := make([]curve.Scalar, size)
	for i := range vector {
		if vector[i], err = curve.RandomScalar(b, rng); err != nil {
			return nil, nil, err
		}
	}
	bg := curve.Generator(b)

	statements := []statement.Statement{
		&statement.DiscreteLog{Base: g, Public: g.Mul(secret)},
		&statement.PedersenCommitment{Bases: []curve.Point{g, h}, Commitment: g.Mul(secret).Add(h.Mul(blinding))},
		&statement.VerifiableEncryption{EncryptionKey: auditor, MessageBase: h, Ciphertext: ct},
		&statement.DiscreteLog{Base: bg, Public: bg.Mul(vector[0])},
		&statement.CompressedVectorOpening{Bases: bases, Commitment: curve.MultiScalarMul(bases, vector)},
	}
	witnesses := []statement.Witness{
		&statement.DiscreteLogWitness{X: secret},
		&statement.PedersenWitness{Openings: []curve.Scalar{secret, blinding}},
		&statement.VerifiableEncryptionWitness{Message: secret, Randomness: encR},
		&statement.DiscreteLogWitness{X: vector[0]},
		&statement.CompressedVectorWitness{Openings: vector},
	}
	classes := []zkcompose.EqualWitnesses{
		zkcompose.Link(
			zkcompose.WitnessRef{Statement: 0, Slot: 0},
			zkcompose.WitnessRef{Statement: 1, Slot: 0},
			zkcompose.WitnessRef{Statement: 2, Slot: statement.EncryptionMessageSlot},
		),
		zkcompose.Link(
			zkcompose.WitnessRef{Statement: 3, Slot: 0},
			zkcompose.WitnessRef{Statement: 4, Slot: 0},
		),
	}
	spec, err := zkcompose.NewProofSpec(statements, classes, []byte("zkcompose-cli-demo"))
	if err != nil {
		return nil, nil, err
	}
	return spec, witnesses, nil
}
