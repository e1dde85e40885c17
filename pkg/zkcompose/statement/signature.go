package statement

import (
	"fmt"
	"sort"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/bbs"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

// BBSSignature states knowledge of a BBS+ signature under PublicKey on a
// message vector, revealing the messages in Revealed and hiding the rest.
//
// Params is shared by pointer; several statements may refer to the same
// parameters without copying them.
type BBSSignature struct {
	Params    *bbs.Params
	PublicKey *bbs.PublicKey
	Revealed  map[int]curve.Scalar
}

// BBSSignatureWitness holds the signature and the full message vector,
// revealed messages included.
type BBSSignatureWitness struct {
	Signature *bbs.Signature
	Messages  []curve.Scalar
}

func (*BBSSignature) isStatement() {}
func (*BBSSignature) Kind() Kind { return KindBBSSignature }
func (*BBSSignature) Curve() curve.Curve { return curve.BLS12381 }
func (*BBSSignatureWitness) isWitness() {}
func (*BBSSignatureWitness) Kind() Kind { return KindBBSSignature }

// SlotCount returns the number of messages.
func (s *BBSSignature) SlotCount() int {
	if s.Params == nil {
		return 0
	}
	return s.Params.MessageCount()
}

// IsSlot reports whether message i is hidden.
func (s *BBSSignature) IsSlot(i int) bool {
	if i < 0 || i >= s.SlotCount() {
		return false
	}
	_, revealed := s.Revealed[i]
	return !revealed
}

// HiddenIndices returns the hidden message indices in increasing order.
func (s *BBSSignature) HiddenIndices() []int {
	var out []int
	for i := 0; i < s.SlotCount(); i++ {
		if s.IsSlot(i) {
			out = append(out, i)
		}
	}
	return out
}

// RevealedIndices returns the revealed message indices in increasing order.
func (s *BBSSignature) RevealedIndices() []int {
	out := make([]int, 0, len(s.Revealed))
	for i := range s.Revealed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Validate checks params, key and revealed indices.
func (s *BBSSignature) Validate() error {
	if s.Params == nil || !s.Params.IsValid() {
		return fmt.Errorf("%w: invalid signature params", ErrInvalid)
	}
	if !s.PublicKey.IsValid() {
		return fmt.Errorf("%w: invalid signature public key", ErrInvalid)
	}
	for i, m := range s.Revealed {
		if i < 0 || i >= s.Params.MessageCount() {
			return fmt.Errorf("%w: revealed index %d out of range", ErrInvalid, i)
		}
		if m.Curve() != curve.BLS12381 {
			return fmt.Errorf("%w: revealed message %d on %s", ErrInvalid, i, m.Curve())
		}
	}
	return nil
}

// Bytes returns the canonical public encoding.
func (s *BBSSignature) Bytes() []byte {
	e := newEncoder(KindBBSSignature, curve.BLS12381).
		bytes(s.Params.Bytes()).
		bytes(s.PublicKey.Bytes())
	idx := s.RevealedIndices()
	e.uint64(uint64(len(idx)))
	for _, i := range idx {
		e.uint64(uint64(i)).scalar(s.Revealed[i])
	}
	return e.finish()
}

// Zeroize clears the signature and every message.
func (w *BBSSignatureWitness) Zeroize() {
	w.Signature.Zeroize()
	curve.ZeroizeScalars(w.Messages)
}
