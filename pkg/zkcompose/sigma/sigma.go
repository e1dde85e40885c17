package sigma

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

var (
	// ErrEncoding is returned when a commitment or response is not a
	// canonical encoding for the statement.
	ErrEncoding = errors.New("sigma: malformed encoding")
	// ErrRelation is returned when a proof does not satisfy its statement.
	ErrRelation = errors.New("sigma: relation does not hold")
	// ErrSlot is returned for injected blindings or linked slots that are not
	// witness slots of the statement.
	ErrSlot = errors.New("sigma: invalid witness slot")
	// ErrRandomness is returned when the randomness source fails.
	ErrRandomness = errors.New("sigma: randomness source failed")
	// ErrResponded is returned when Respond is called twice or after Zeroize.
	ErrResponded = errors.New("sigma: prover already responded")
)

// Blindings maps witness slots to caller-supplied blinding scalars.
type Blindings map[int]curve.Scalar

// SlotResponses maps linked witness slots to their response scalars.
type SlotResponses map[int]curve.Scalar

// proverState is the per-kind secret state kept between Init and Respond.
type proverState interface {
	respond(c transcript.Challenge) []byte
	zeroize()
}

// Prover holds one statement's secret state between commitment and response.
// A Prover answers exactly one challenge.
type Prover struct {
	kind       statement.Kind
	commitment []byte
	state      proverState
}

// Init validates w against st and produces the first-move commitment.
// Blindings for slots in injected are used as given; every other random value
// is read from rng.
func Init(st statement.Statement, w statement.Witness, injected Blindings, rng io.Reader) (*Prover, error) {
	if err := statement.Check(st, w); err != nil {
		return nil, err
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	for slot, b := range injected {
		if !st.IsSlot(slot) {
			return nil, fmt.Errorf("%w: %d", ErrSlot, slot)
		}
		if b.Curve() != st.Curve() {
			return nil, fmt.Errorf("%w: blinding for slot %d on %s", ErrSlot, slot, b.Curve())
		}
	}

	var (
		state      proverState
		commitment []byte
		err        error
	)
	switch s := st.(type) {
	case *statement.DiscreteLog:
		state, commitment, err = initDiscreteLog(s, w.(*statement.DiscreteLogWitness), injected, rng)
	case *statement.PedersenCommitment:
		state, commitment, err = initPedersen(s, w.(*statement.PedersenWitness), injected, rng)
	case *statement.VerifiableEncryption:
		state, commitment, err = initEncryption(s, w.(*statement.VerifiableEncryptionWitness), injected, rng)
	case *statement.BBSSignature:
		state, commitment, err = initBBS(s, w.(*statement.BBSSignatureWitness), injected, rng)
	case *statement.AccumulatorMembership:
		state, commitment, err = initMembership(s, w.(*statement.AccumulatorMembershipWitness), injected, rng)
	case *statement.AccumulatorNonMembership:
		state, commitment, err = initNonMembership(s, w.(*statement.AccumulatorNonMembershipWitness), injected, rng)
	case *statement.CompressedVectorOpening:
		state, commitment, err = initCompressed(s, w.(*statement.CompressedVectorWitness), injected, rng)
	default:
		return nil, fmt.Errorf("sigma: unsupported statement %T", st)
	}
	if err != nil {
		return nil, err
	}
	return &Prover{kind: st.Kind(), commitment: commitment, state: state}, nil
}

// Kind returns the statement kind the prover was built for.
func (p *Prover) Kind() statement.Kind {
	return p.kind
}

// Commitment returns the first-move message.
func (p *Prover) Commitment() []byte {
	out := make([]byte, len(p.commitment))
	copy(out, p.commitment)
	return out
}

// Respond answers challenge c. The prover's secret state is cleared
// afterwards, so a second call fails.
func (p *Prover) Respond(c transcript.Challenge) ([]byte, error) {
	if p == nil || p.state == nil {
		return nil, ErrResponded
	}
	out := p.state.respond(c)
	p.Zeroize()
	return out, nil
}

// Zeroize clears all blindings, witnesses and randomizers. It is safe to call
// more than once.
func (p *Prover) Zeroize() {
	if p == nil || p.state == nil {
		return
	}
	p.state.zeroize()
	p.state = nil
}

// Contribution returns the bytes the statement adds to the transcript: its
// canonical public encoding followed by the commitment, both length-prefixed.
func Contribution(st statement.Statement, commitment []byte) ([]byte, error) {
	if st == nil {
		return nil, errors.New("sigma: nil statement")
	}
	tr := st.Bytes()
	out := make([]byte, 0, 16+len(tr)+len(commitment))
	out = appendLenPrefixed(out, tr)
	out = appendLenPrefixed(out, commitment)
	return out, nil
}

// Verify checks a commitment and response against st under challenge c and
// returns the responses of the linked slots.
func Verify(st statement.Statement, commitment []byte, c transcript.Challenge, response []byte, linked []int) (SlotResponses, error) {
	if st == nil {
		return nil, errors.New("sigma: nil statement")
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	for _, slot := range linked {
		if !st.IsSlot(slot) {
			return nil, fmt.Errorf("%w: %d", ErrSlot, slot)
		}
	}
	linked = sortedUnique(linked)

	switch s := st.(type) {
	case *statement.DiscreteLog:
		return verifyDiscreteLog(s, commitment, c, response, linked)
	case *statement.PedersenCommitment:
		return verifyPedersen(s, commitment, c, response, linked)
	case *statement.VerifiableEncryption:
		return verifyEncryption(s, commitment, c, response, linked)
	case *statement.BBSSignature:
		return verifyBBS(s, commitment, c, response, linked)
	case *statement.AccumulatorMembership:
		return verifyMembership(s, commitment, c, response, linked)
	case *statement.AccumulatorNonMembership:
		return verifyNonMembership(s, commitment, c, response, linked)
	case *statement.CompressedVectorOpening:
		return verifyCompressed(s, commitment, c, response, linked)
	default:
		return nil, fmt.Errorf("sigma: unsupported statement %T", st)
	}
}

func appendLenPrefixed(dst, b []byte) []byte {
	dst = binary.BigEndian.AppendUint64(dst, uint64(len(b)))
	return append(dst, b...)
}

func sortedUnique(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	n := 0
	for i, x := range out {
		if i > 0 && x == out[n-1] {
			continue
		}
		out[n] = x
		n++
	}
	return out[:n]
}

func sortedSlots(b Blindings) []int {
	out := make([]int, 0, len(b))
	for slot := range b {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}
