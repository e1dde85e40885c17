package zkcompose_test

import (
	"context"
	"fmt"
	"log"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/logging"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
)

// Example proves that a public key and a Pedersen commitment hide the same
// secret scalar.
func Example() {
	if err := runExample(); err != nil {
		log.Fatalf("example failed: %v", err)
	}
	// Output:
	// proof with 2 statements verified
	// mismatched commitment: equality_violation
}

func runExample() error {
	ctx := context.Background()
	engine := zkcompose.New(zkcompose.Config{Logger: logging.Nop()})
	c := curve.Secp256k1

	secret := curve.ScalarFromUint64(c, 424242)
	blinding := curve.ScalarFromUint64(c, 777)
	g := curve.Generator(c)
	h, err := curve.HashToPoint(c, []byte("example"), []byte("h"))
	if err != nil {
		return err
	}

	build := func(committed curve.Scalar) (*zkcompose.ProofSpec, []statement.Witness, error) {
		dl := &statement.DiscreteLog{Base: g, Public: g.Mul(secret)}
		ped := &statement.PedersenCommitment{
			Bases:      []curve.Point{g, h},
			Commitment: g.Mul(committed).Add(h.Mul(blinding)),
		}
		spec, err := zkcompose.NewProofSpec(
			[]statement.Statement{dl, ped},
			[]zkcompose.EqualWitnesses{zkcompose.Link(
				zkcompose.WitnessRef{Statement: 0, Slot: 0},
				zkcompose.WitnessRef{Statement: 1, Slot: 0},
			)},
			[]byte("example"),
		)
		witnesses := []statement.Witness{
			&statement.DiscreteLogWitness{X: secret},
			&statement.PedersenWitness{Openings: []curve.Scalar{committed, blinding}},
		}
		return spec, witnesses, err
	}

	spec, witnesses, err := build(secret)
	if err != nil {
		return err
	}
	proof, err := engine.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: witnesses})
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}
	if err := engine.Verify(ctx, &zkcompose.VerifyParams{Spec: spec, Proof: proof}); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	fmt.Printf("proof with %d statements verified\n", len(proof.Statements))

	spec, witnesses, err = build(secret.Add(curve.ScalarFromUint64(c, 1)))
	if err != nil {
		return err
	}
	proof, err = engine.Prove(ctx, &zkcompose.ProveParams{Spec: spec, Witnesses: witnesses})
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}
	err = engine.Verify(ctx, &zkcompose.VerifyParams{Spec: spec, Proof: proof})
	fmt.Println("mismatched commitment:", zkcompose.ReasonOf(err))
	return nil
}
