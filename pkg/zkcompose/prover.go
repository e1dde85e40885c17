package zkcompose

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/sigma"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
)

// ProveParams contains the inputs of Prove.
type ProveParams struct {
	Spec      *ProofSpec          // public statements and equality classes
	Witnesses []statement.Witness // one witness per statement, in order
	Rand      io.Reader           // randomness source; nil means crypto/rand
	Nonce     []byte              // optional per-session nonce; Verify must see the same bytes
}

// Prove produces a single proof for every statement in params.Spec, with
// linked slots sharing their blinding. Secret state is zeroized before Prove
// returns on every path. No partial proof is ever returned.
func (e *Engine) Prove(ctx context.Context, params *ProveParams) (*Proof, error) {
	if params == nil {
		return nil, malformed("nil params")
	}
	spec := params.Spec
	if spec == nil {
		return nil, malformed("nil proof spec")
	}
	n := len(spec.statements)
	if len(params.Witnesses) != n {
		return nil, malformed("%d witnesses for %d statements", len(params.Witnesses), n)
	}
	for i, st := range spec.statements {
		if err := statement.Check(st, params.Witnesses[i]); err != nil {
			return nil, witnessError(i, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := e.log.With("statements", n, "classes", len(spec.classes))
	log.Debug(ctx, "proving", "kinds", kindNames(spec))

	rng := params.Rand
	if rng == nil {
		rng = rand.Reader
	}
	plan, err := drawPlan(spec, rng)
	if err != nil {
		return nil, err
	}
	defer plan.zeroize()

	provers := make([]*sigma.Prover, n)
	defer func() {
		for _, p := range provers {
			p.Zeroize()
		}
	}()

	idx, err := e.forEach(ctx, n, func(i int) error {
		stream, err := plan.stream(i)
		if err != nil {
			return err
		}
		injected := plan.injected(spec, i)
		p, err := sigma.Init(spec.statements[i], params.Witnesses[i], injected, stream)
		if err != nil {
			return err
		}
		provers[i] = p
		return nil
	})
	if err != nil {
		return nil, initError(idx, err)
	}

	commitments := make([][]byte, n)
	for i, p := range provers {
		commitments[i] = p.Commitment()
	}
	ch, err := deriveChallenge(e.domain, spec, commitments, params.Nonce)
	if err != nil {
		return nil, err
	}

	responses := make([][]byte, n)
	if idx, err := e.forEach(ctx, n, func(i int) error {
		r, err := provers[i].Respond(ch)
		responses[i] = r
		return err
	}); err != nil {
		return nil, initError(idx, err)
	}

	proof := &Proof{
		Challenge:  ch.Bytes(),
		Statements: make([]StatementProof, n),
	}
	for i, st := range spec.statements {
		proof.Statements[i] = StatementProof{
			Kind:       st.Kind(),
			Commitment: commitments[i],
			Response:   responses[i],
		}
	}
	log.Debug(ctx, "proved", "bytes", proof.Size())
	return proof, nil
}

func initError(idx int, err error) error {
	switch {
	case idx < 0:
		return err
	case errors.Is(err, sigma.ErrRandomness):
		return fmt.Errorf("%w: statement %d: %v", ErrRandomnessFailure, idx, err)
	case errors.Is(err, statement.ErrKindMismatch), errors.Is(err, statement.ErrShape):
		return witnessError(idx, err)
	default:
		return fmt.Errorf("zkcompose: statement %d: %w", idx, err)
	}
}

// witnessError maps a witness check failure: a variant mismatch is a type
// mismatch, anything else is a malformed witness.
func witnessError(idx int, err error) error {
	if errors.Is(err, statement.ErrKindMismatch) {
		return &TypeMismatchError{Index: idx, Err: err}
	}
	return &MalformedError{Reason: "witness " + strconv.Itoa(idx), Err: err}
}

func kindNames(spec *ProofSpec) []string {
	out := make([]string, len(spec.statements))
	for i, st := range spec.statements {
		out[i] = st.Kind().String()
	}
	return out
}
