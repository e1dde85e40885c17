package zkcompose

import (
	"fmt"
	"io"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/sigma"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// blindingPlan is the prover-side randomness of one session: a shared
// blinding per equality class and a stream seed per statement. All of it is
// read from the caller's reader on one goroutine, before any worker starts.
type blindingPlan struct {
	shared []curve.Scalar
	seeds  [][]byte
}

func drawPlan(spec *ProofSpec, rng io.Reader) (*blindingPlan, error) {
	p := &blindingPlan{
		shared: make([]curve.Scalar, len(spec.classes)),
		seeds:  make([][]byte, len(spec.statements)),
	}
	for ci, class := range spec.classes {
		c := spec.statements[class[0].Statement].Curve()
		b, err := curve.RandomScalar(c, rng)
		if err != nil {
			p.zeroize()
			return nil, fmt.Errorf("%w: class %d blinding: %v", ErrRandomnessFailure, ci, err)
		}
		p.shared[ci] = b
	}
	for i := range p.seeds {
		seed := make([]byte, transcript.StreamSeedSize)
		if _, err := io.ReadFull(rng, seed); err != nil {
			p.zeroize()
			return nil, fmt.Errorf("%w: statement %d seed: %v", ErrRandomnessFailure, i, err)
		}
		p.seeds[i] = seed
	}
	return p, nil
}

// injected returns the blindings statement i must use for its linked slots.
func (p *blindingPlan) injected(spec *ProofSpec, i int) sigma.Blindings {
	out := make(sigma.Blindings, len(spec.linked[i]))
	for slot, ci := range spec.linked[i] {
		out[slot] = p.shared[ci]
	}
	return out
}

// stream returns statement i's private randomness.
func (p *blindingPlan) stream(i int) (io.Reader, error) {
	return transcript.NewStream(p.seeds[i], "zkcompose/statement-blinding")
}

func (p *blindingPlan) zeroize() {
	curve.ZeroizeScalars(p.shared)
	for _, s := range p.seeds {
		ZeroizeBytes(s)
	}
}

// checkEquality compares the responses of every class member. responses[i]
// holds statement i's linked-slot responses as returned by sigma.Verify.
func checkEquality(spec *ProofSpec, responses []sigma.SlotResponses) error {
	for ci, class := range spec.classes {
		var first curve.Scalar
		for k, ref := range class {
			z, ok := responses[ref.Statement][ref.Slot]
			if !ok {
				return &EqualityViolationError{Class: ci}
			}
			if k == 0 {
				first = z
				continue
			}
			if !z.Equal(first) {
				return &EqualityViolationError{Class: ci}
			}
		}
	}
	return nil
}
