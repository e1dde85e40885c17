package sigma

import (
	"fmt"
	"io"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// term is base·w[v].
type term struct {
	base curve.Point
	v    int
}

// relation states Σ terms = target.
type relation struct {
	terms  []term
	target curve.Point
}

// linearSystem is a conjunction of linear relations over shared witness
// variables, proven with one Schnorr-style commitment per relation.
type linearSystem struct {
	c         curve.Curve
	nvars     int
	relations []relation
}

// commit returns T_j = Σ base·b[v] for each relation.
func (ls *linearSystem) commit(b []curve.Scalar) []curve.Point {
	out := make([]curve.Point, len(ls.relations))
	for j, r := range ls.relations {
		out[j] = ls.eval(r, b)
	}
	return out
}

// check reports whether Σ base·z[v] = T_j + c·target for every relation.
func (ls *linearSystem) check(t []curve.Point, c curve.Scalar, z []curve.Scalar) bool {
	if len(t) != len(ls.relations) || len(z) != ls.nvars {
		return false
	}
	for j, r := range ls.relations {
		lhs := ls.eval(r, z)
		rhs := t[j].Add(r.target.Mul(c))
		if !lhs.Equal(rhs) {
			return false
		}
	}
	return true
}

func (ls *linearSystem) eval(r relation, xs []curve.Scalar) curve.Point {
	bases := make([]curve.Point, len(r.terms))
	scalars := make([]curve.Scalar, len(r.terms))
	for i, tm := range r.terms {
		bases[i] = tm.base
		scalars[i] = xs[tm.v]
	}
	out := curve.MultiScalarMul(bases, scalars)
	curve.ZeroizeScalars(scalars)
	return out
}

// linearProver answers with z_v = b_v + c·w_v.
type linearProver struct {
	c curve.Curve
	w []curve.Scalar
	b []curve.Scalar
}

func (p *linearProver) respond(ch transcript.Challenge) []byte {
	return encodeScalars(responses(p.c, ch, p.w, p.b))
}

func (p *linearProver) zeroize() {
	curve.ZeroizeScalars(p.w)
	curve.ZeroizeScalars(p.b)
}

func responses(c curve.Curve, ch transcript.Challenge, w, b []curve.Scalar) []curve.Scalar {
	cs := ch.Scalar(c)
	z := make([]curve.Scalar, len(w))
	for i := range w {
		z[i] = b[i].MulAdd(cs, w[i])
	}
	return z
}

// drawBlindings assigns injected blindings to the variables of their slots
// and draws the rest from rng in variable order.
func drawBlindings(c curve.Curve, nvars int, slotVar map[int]int, injected Blindings, rng io.Reader) ([]curve.Scalar, error) {
	b := make([]curve.Scalar, nvars)
	set := make([]bool, nvars)
	for _, slot := range sortedSlots(injected) {
		v, ok := slotVar[slot]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrSlot, slot)
		}
		b[v] = injected[slot]
		set[v] = true
	}
	for v := range b {
		if set[v] {
			continue
		}
		s, err := curve.RandomScalar(c, rng)
		if err != nil {
			curve.ZeroizeScalars(b)
			return nil, fmt.Errorf("%w: %v", ErrRandomness, err)
		}
		b[v] = s
	}
	return b, nil
}

// proveLinear commits to ls with aux points prepended to the commitment.
// w is owned by the returned state.
func proveLinear(ls *linearSystem, aux []curve.Point, w []curve.Scalar, slotVar map[int]int, injected Blindings, rng io.Reader) (proverState, []byte, error) {
	b, err := drawBlindings(ls.c, ls.nvars, slotVar, injected, rng)
	if err != nil {
		curve.ZeroizeScalars(w)
		return nil, nil, err
	}
	t := ls.commit(b)
	commitment := encodePoints(append(append([]curve.Point(nil), aux...), t...)...)
	return &linearProver{c: ls.c, w: w, b: b}, commitment, nil
}

// verifyLinear decodes the response and checks ls against the commitments t.
func verifyLinear(ls *linearSystem, t []curve.Point, ch transcript.Challenge, response []byte, slotVar map[int]int, linked []int) (SlotResponses, error) {
	d := newDecoder(ls.c, response)
	z := d.scalars(ls.nvars)
	if err := d.finish(); err != nil {
		return nil, err
	}
	if !ls.check(t, ch.Scalar(ls.c), z) {
		return nil, ErrRelation
	}
	return pickResponses(z, slotVar, linked)
}

func pickResponses(z []curve.Scalar, slotVar map[int]int, linked []int) (SlotResponses, error) {
	out := make(SlotResponses, len(linked))
	for _, slot := range linked {
		v, ok := slotVar[slot]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrSlot, slot)
		}
		out[slot] = z[v]
	}
	return out, nil
}

// identitySlots maps slot i to variable i for i < n.
func identitySlots(n int) map[int]int {
	m := make(map[int]int, n)
	for i := 0; i < n; i++ {
		m[i] = i
	}
	return m
}

func copyScalars(xs []curve.Scalar) []curve.Scalar {
	return append([]curve.Scalar(nil), xs...)
}
