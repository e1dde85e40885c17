package bbs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

const (
	paramsDST = "ZKCOMPOSE-BBS-PLUS-PARAMS-V1"
	// MaxMessages bounds the parameter size accepted from decoders.
	MaxMessages = 1 << 16
)

var (
	// ErrInvalidParams is returned for parameters with identity elements or
	// inconsistent sizes.
	ErrInvalidParams = errors.New("bbs: invalid params")
	// ErrInvalidSignature is returned when a signature fails verification.
	ErrInvalidSignature = errors.New("bbs: invalid signature")
)

// MessageIndexError reports a message index outside the parameter range.
type MessageIndexError struct {
	Index int
	Count int
}

func (e *MessageIndexError) Error() string {
	return fmt.Sprintf("bbs: message index %d out of range [0, %d)", e.Index, e.Count)
}

// Params are the public signature parameters for a fixed message count.
type Params struct {
	G1 curve.Point
	G2 curve.G2Point
	H0 curve.Point
	H  []curve.Point
}

// NewParams derives parameters deterministically from label, so independent
// parties can agree on them without trusted setup.
func NewParams(label []byte, messageCount int) (*Params, error) {
	if messageCount <= 0 || messageCount > MaxMessages {
		return nil, fmt.Errorf("%w: message count %d", ErrInvalidParams, messageCount)
	}
	g1, err := curve.HashToPoint(curve.BLS12381, []byte(paramsDST), labelled(label, " : g1"))
	if err != nil {
		return nil, err
	}
	g2, err := curve.HashToG2([]byte(paramsDST), labelled(label, " : g2"))
	if err != nil {
		return nil, err
	}
	h := make([]curve.Point, messageCount+1)
	for i := range h {
		var idx [8]byte
		binary.BigEndian.PutUint64(idx[:], uint64(i))
		h[i], err = curve.HashToPoint(curve.BLS12381, []byte(paramsDST), append(labelled(label, " : h_"), idx[:]...))
		if err != nil {
			return nil, err
		}
	}
	return &Params{G1: g1, G2: g2, H0: h[0], H: h[1:]}, nil
}

// GenerateParams draws parameters from rng.
func GenerateParams(rng io.Reader, messageCount int) (*Params, error) {
	if messageCount <= 0 || messageCount > MaxMessages {
		return nil, fmt.Errorf("%w: message count %d", ErrInvalidParams, messageCount)
	}
	randomG1 := func() (curve.Point, error) {
		s, err := curve.RandomNonZeroScalar(curve.BLS12381, rng)
		if err != nil {
			return curve.Point{}, err
		}
		defer s.Zeroize()
		return curve.Generator(curve.BLS12381).Mul(s), nil
	}
	p := &Params{H: make([]curve.Point, messageCount)}
	var err error
	if p.G1, err = randomG1(); err != nil {
		return nil, err
	}
	if p.H0, err = randomG1(); err != nil {
		return nil, err
	}
	for i := range p.H {
		if p.H[i], err = randomG1(); err != nil {
			return nil, err
		}
	}
	s, err := curve.RandomNonZeroScalar(curve.BLS12381, rng)
	if err != nil {
		return nil, err
	}
	p.G2 = curve.G2Generator().Mul(s)
	s.Zeroize()
	return p, nil
}

// IsValid reports whether no parameter element is the identity.
func (p *Params) IsValid() bool {
	if p == nil || len(p.H) == 0 {
		return false
	}
	if p.G1.Curve() != curve.BLS12381 || p.G1.IsIdentity() || p.H0.IsIdentity() || p.G2.IsIdentity() {
		return false
	}
	for _, h := range p.H {
		if h.Curve() != curve.BLS12381 || h.IsIdentity() {
			return false
		}
	}
	return true
}

// MessageCount returns the number of messages the parameters support.
func (p *Params) MessageCount() int {
	return len(p.H)
}

// CommitToMessages returns h0·blinding + Σ h_i·m_i over the given indices.
func (p *Params) CommitToMessages(messages map[int]curve.Scalar, blinding curve.Scalar) (curve.Point, error) {
	idx := sortedIndices(messages)
	bases := make([]curve.Point, 0, len(idx)+1)
	scalars := make([]curve.Scalar, 0, len(idx)+1)
	for _, i := range idx {
		if i < 0 || i >= len(p.H) {
			return curve.Point{}, &MessageIndexError{Index: i, Count: len(p.H)}
		}
		bases = append(bases, p.H[i])
		scalars = append(scalars, messages[i])
	}
	bases = append(bases, p.H0)
	scalars = append(scalars, blinding)
	return curve.MultiScalarMul(bases, scalars), nil
}

// B returns g1 + h0·s + Σ h_i·m_i, the value a signature's A is a root of.
func (p *Params) B(messages map[int]curve.Scalar, s curve.Scalar) (curve.Point, error) {
	c, err := p.CommitToMessages(messages, s)
	if err != nil {
		return curve.Point{}, err
	}
	return c.Add(p.G1), nil
}

// Bytes returns a canonical encoding of the parameters.
func (p *Params) Bytes() []byte {
	out := make([]byte, 0, 48*(2+len(p.H))+curve.G2Size+8)
	out = append(out, p.G1.Bytes()...)
	out = append(out, p.G2.Bytes()...)
	out = append(out, p.H0.Bytes()...)
	out = binary.BigEndian.AppendUint64(out, uint64(len(p.H)))
	for _, h := range p.H {
		out = append(out, h.Bytes()...)
	}
	return out
}

// ParamsFromBytes decodes parameters produced by Bytes.
func ParamsFromBytes(b []byte) (*Params, error) {
	const ps = 48
	head := 2*ps + curve.G2Size + 8
	if len(b) < head {
		return nil, fmt.Errorf("%w: short encoding", ErrInvalidParams)
	}
	n := binary.BigEndian.Uint64(b[head-8 : head])
	if n == 0 || n > MaxMessages || uint64(len(b)-head) != n*ps {
		return nil, fmt.Errorf("%w: bad length", ErrInvalidParams)
	}
	var (
		p   Params
		err error
		off int
	)
	if p.G1, err = curve.PointFromBytes(curve.BLS12381, b[off:off+ps]); err != nil {
		return nil, err
	}
	off += ps
	if p.G2, err = curve.G2FromBytes(b[off : off+curve.G2Size]); err != nil {
		return nil, err
	}
	off += curve.G2Size
	if p.H0, err = curve.PointFromBytes(curve.BLS12381, b[off:off+ps]); err != nil {
		return nil, err
	}
	off = head
	p.H = make([]curve.Point, n)
	for i := range p.H {
		if p.H[i], err = curve.PointFromBytes(curve.BLS12381, b[off:off+ps]); err != nil {
			return nil, err
		}
		off += ps
	}
	if !p.IsValid() {
		return nil, ErrInvalidParams
	}
	return &p, nil
}

func labelled(label []byte, suffix string) []byte {
	out := make([]byte, 0, len(label)+len(suffix))
	out = append(out, label...)
	return append(out, suffix...)
}

func sortedIndices(m map[int]curve.Scalar) []int {
	idx := make([]int, 0, len(m))
	for i := range m {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
