// Package zkcompose composes heterogeneous sigma protocols into one
// non-interactive zero-knowledge proof.
//
// A ProofSpec lists public statements (see package statement) and equality
// classes over their witness slots. Prove runs every statement's sub-protocol
// with a shared blinding for each class, binds all commitments under a single
// Fiat–Shamir challenge and returns a Proof. Verify recomputes the challenge,
// checks every sub-proof and then checks that linked slots produced the same
// response, which holds exactly when they share a witness.
//
//	spec, err := zkcompose.NewProofSpec(
//	    []statement.Statement{sigStmt, accStmt},
//	    []zkcompose.EqualWitnesses{zkcompose.Link(
//	        zkcompose.WitnessRef{Statement: 0, Slot: 2},
//	        zkcompose.WitnessRef{Statement: 1, Slot: 0},
//	    )},
//	    []byte("issuer-policy-7"),
//	)
//	proof, err := zkcompose.Prove(ctx, &zkcompose.ProveParams{
//	    Spec:      spec,
//	    Witnesses: []statement.Witness{sigWitness, accWitness},
//	})
//	err = zkcompose.Verify(ctx, &zkcompose.VerifyParams{Spec: spec, Proof: proof})
//
// Equality classes are restricted to one curve domain. Witness values are
// zeroized as soon as the proof is assembled; the caller's witness structs are
// left untouched.
package zkcompose
