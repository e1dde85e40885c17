package sigma

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/statement"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// Compressed opening of P = Σ g_i·x_i, after Attema and Cramer.
//
// The first move is the usual A = Σ g_i·b_i and the would-be response is
// z = b + c·x. Instead of sending z, the prover sends z_i only for linked
// slots (the engine compares them across statements) and proves knowledge of
// the remaining entries of z against
//
//	Q = A + c·P − Σ_exposed g_i·z_i
//
// by repeated halving. Each round sends L = ⟨g_R, z_L⟩ and R = ⟨g_L, z_R⟩,
// draws ρ from a nested transcript and folds
//
//	g' = ρ·g_L + g_R    z' = z_L + ρ·z_R    Q' = L + ρ·Q + ρ²·R
//
// until one base and one scalar remain. The hidden part is padded to a power
// of two with hash-derived bases and zero entries.

const (
	compressedDomain = "zkcompose/compressed-vector-opening/v1"
	paddingDST       = "ZKCOMPOSE-CVO-PADDING-V1"
)

type compressedProver struct {
	s          *statement.CompressedVectorOpening
	commitment []byte
	exposed    []int
	hidden     []int
	g          []curve.Point
	x          []curve.Scalar
	b          []curve.Scalar
}

func initCompressed(s *statement.CompressedVectorOpening, w *statement.CompressedVectorWitness, injected Blindings, rng io.Reader) (proverState, []byte, error) {
	n := len(s.Bases)
	b, err := drawBlindings(s.Curve(), n, identitySlots(n), injected, rng)
	if err != nil {
		return nil, nil, err
	}
	exposed := sortedSlots(injected)
	hidden := complement(n, exposed)
	var g []curve.Point
	if len(hidden) > 0 {
		if g, err = paddedBases(s.Bases, hidden); err != nil {
			curve.ZeroizeScalars(b)
			return nil, nil, err
		}
	}
	commitment := curve.MultiScalarMul(s.Bases, b).Bytes()
	return &compressedProver{
		s:          s,
		commitment: commitment,
		exposed:    exposed,
		hidden:     hidden,
		g:          g,
		x:          copyScalars(w.Openings),
		b:          b,
	}, commitment, nil
}

func (p *compressedProver) respond(ch transcript.Challenge) []byte {
	c := p.s.Curve()
	z := responses(c, ch, p.x, p.b)

	exposedZ := make([]curve.Scalar, len(p.exposed))
	for k, i := range p.exposed {
		exposedZ[k] = z[i]
	}
	out := encodeScalars(exposedZ)

	if len(p.hidden) == 0 {
		return out
	}
	g := p.g
	zs := make([]curve.Scalar, len(g))
	for k := range zs {
		if k < len(p.hidden) {
			zs[k] = z[p.hidden[k]]
		} else {
			zs[k] = curve.NewScalar(c)
		}
	}

	tr := foldTranscript(p.s, p.commitment, ch, p.exposed, exposedZ)
	for len(g) > 1 {
		h := len(g) / 2
		gL, gR := g[:h], g[h:]
		zL, zR := zs[:h], zs[h:]
		l := curve.MultiScalarMul(gR, zL)
		r := curve.MultiScalarMul(gL, zR)
		tr.AppendPoint("L", l)
		tr.AppendPoint("R", r)
		rho := tr.ChallengeScalar("rho", c)

		ng := make([]curve.Point, h)
		nz := make([]curve.Scalar, h)
		for i := 0; i < h; i++ {
			ng[i] = gL[i].Mul(rho).Add(gR[i])
			nz[i] = zL[i].MulAdd(rho, zR[i])
		}
		g, zs = ng, nz
		out = append(out, encodePoints(l, r)...)
	}
	return append(out, zs[0].Bytes()...)
}

func (p *compressedProver) zeroize() {
	curve.ZeroizeScalars(p.x)
	curve.ZeroizeScalars(p.b)
}

func verifyCompressed(s *statement.CompressedVectorOpening, commitment []byte, ch transcript.Challenge, response []byte, linked []int) (SlotResponses, error) {
	c := s.Curve()
	dec := newDecoder(c, commitment)
	a := dec.point()
	if err := dec.finish(); err != nil {
		return nil, err
	}

	hidden := complement(len(s.Bases), linked)
	rounds := foldRounds(len(hidden))

	dec = newDecoder(c, response)
	exposedZ := dec.scalars(len(linked))
	lr := dec.points(2 * rounds)
	var final curve.Scalar
	if len(hidden) > 0 {
		final = dec.scalar()
	}
	if err := dec.finish(); err != nil {
		return nil, err
	}

	cs := ch.Scalar(c)
	q := a.Add(s.Commitment.Mul(cs))
	for k, i := range linked {
		q = q.Sub(s.Bases[i].Mul(exposedZ[k]))
	}

	out := make(SlotResponses, len(linked))
	for k, i := range linked {
		out[i] = exposedZ[k]
	}

	if len(hidden) == 0 {
		if !q.IsIdentity() {
			return nil, ErrRelation
		}
		return out, nil
	}

	g, err := paddedBases(s.Bases, hidden)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelation, err)
	}
	tr := foldTranscript(s, commitment, ch, linked, exposedZ)
	for r := 0; r < rounds; r++ {
		l, rr := lr[2*r], lr[2*r+1]
		tr.AppendPoint("L", l)
		tr.AppendPoint("R", rr)
		rho := tr.ChallengeScalar("rho", c)

		h := len(g) / 2
		ng := make([]curve.Point, h)
		for i := 0; i < h; i++ {
			ng[i] = g[i].Mul(rho).Add(g[h+i])
		}
		g = ng
		q = l.Add(q.Mul(rho)).Add(rr.Mul(rho.Mul(rho)))
	}
	if !g[0].Mul(final).Equal(q) {
		return nil, ErrRelation
	}
	return out, nil
}

// foldTranscript seeds the nested transcript that yields the folding
// challenges. It binds the statement, the first move, the outer challenge and
// the exposed responses.
func foldTranscript(s *statement.CompressedVectorOpening, commitment []byte, ch transcript.Challenge, exposed []int, exposedZ []curve.Scalar) *transcript.Transcript {
	tr := transcript.New(compressedDomain)
	tr.Append("statement", s.Bytes())
	tr.Append("commitment", commitment)
	tr.Append("challenge", ch[:])
	tr.AppendUint64("exposed", uint64(len(exposed)))
	for k, i := range exposed {
		tr.AppendUint64("slot", uint64(i))
		tr.AppendScalar("z", exposedZ[k])
	}
	return tr
}

// paddedBases selects the hidden bases and pads them to a power of two.
func paddedBases(bases []curve.Point, hidden []int) ([]curve.Point, error) {
	size := 1 << foldRounds(len(hidden))
	out := make([]curve.Point, size)
	for k, i := range hidden {
		out[k] = bases[i]
	}
	for k := len(hidden); k < size; k++ {
		p, err := paddingBase(bases[0].Curve(), k)
		if err != nil {
			return nil, err
		}
		out[k] = p
	}
	return out, nil
}

func paddingBase(c curve.Curve, position int) (curve.Point, error) {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], uint64(position))
	return curve.HashToPoint(c, []byte(paddingDST), idx[:])
}

// foldRounds returns ceil(log2(n)) for n ≥ 1 and 0 for n = 0.
func foldRounds(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// complement returns the indices in [0, n) not present in sorted.
func complement(n int, sorted []int) []int {
	out := make([]int, 0, n-len(sorted))
	k := 0
	for i := 0; i < n; i++ {
		if k < len(sorted) && sorted[k] == i {
			k++
			continue
		}
		out = append(out, i)
	}
	return out
}

// CompressedResponseSize returns the response size in bytes for a vector of
// n entries with the given number of linked slots.
func CompressedResponseSize(c curve.Curve, n, linked int) int {
	hidden := n - linked
	size := linked * curve.ScalarSize
	if hidden > 0 {
		size += 2*foldRounds(hidden)*c.PointSize() + curve.ScalarSize
	}
	return size
}
