package zkcompose

import (
	"context"
	"fmt"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/sigma"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// VerifyParams contains the inputs of Verify.
type VerifyParams struct {
	Spec  *ProofSpec // the same ProofSpec the prover used
	Proof *Proof     // the proof to check; it is not modified
	Nonce []byte     // the nonce the prover used, if any
}

// Verify checks params.Proof against params.Spec. It returns nil when the
// proof is accepted; otherwise ReasonOf reports why it was rejected. Verify
// is deterministic and touches no shared state.
func (e *Engine) Verify(ctx context.Context, params *VerifyParams) error {
	if params == nil {
		return malformed("nil params")
	}
	if params.Spec == nil || params.Proof == nil {
		return malformed("nil proof spec or proof")
	}
	err := e.verify(ctx, params.Spec, params.Proof, params.Nonce)
	if err != nil {
		e.log.Warn(ctx, "proof rejected",
			"reason", ReasonOf(err).String(),
			"statements", len(params.Spec.statements),
			"classes", len(params.Spec.classes),
		)
		return err
	}
	e.log.Debug(ctx, "proof accepted", "statements", len(params.Spec.statements))
	return nil
}

func (e *Engine) verify(ctx context.Context, spec *ProofSpec, proof *Proof, nonce []byte) error {
	n := len(spec.statements)
	if len(proof.Statements) != n {
		return fmt.Errorf("%w: %d statement proofs for %d statements", ErrShapeMismatch, len(proof.Statements), n)
	}
	embedded, err := transcript.ChallengeFromBytes(proof.Challenge)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	commitments := make([][]byte, n)
	for i, st := range spec.statements {
		if proof.Statements[i].Kind != st.Kind() {
			return fmt.Errorf("%w: statement %d is %s, proof has %s", ErrShapeMismatch, i, st.Kind(), proof.Statements[i].Kind)
		}
		commitments[i] = proof.Statements[i].Commitment
	}

	ch, err := deriveChallenge(e.domain, spec, commitments, nonce)
	if err != nil {
		return err
	}
	if !ch.Equal(embedded) {
		return ErrChallengeMismatch
	}

	responses := make([]sigma.SlotResponses, n)
	idx, err := e.forEach(ctx, n, func(i int) error {
		r, err := sigma.Verify(spec.statements[i], commitments[i], ch, proof.Statements[i].Response, spec.LinkedSlots(i))
		responses[i] = r
		return err
	})
	if err != nil {
		if idx < 0 {
			return err
		}
		return &StatementInvalidError{Index: idx, Kind: spec.statements[idx].Kind(), Err: err}
	}
	return checkEquality(spec, responses)
}
