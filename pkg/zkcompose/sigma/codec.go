package sigma

import (
	"fmt"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

// Commitments and responses are plain concatenations of fixed-size canonical
// encodings. Their layout is fully determined by the statement, so no length
// prefixes are needed and every valid message has exactly one encoding.

func encodePoints(ps ...curve.Point) []byte {
	var out []byte
	for _, p := range ps {
		out = append(out, p.Bytes()...)
	}
	return out
}

func encodeScalars(ss []curve.Scalar) []byte {
	out := make([]byte, 0, len(ss)*curve.ScalarSize)
	for _, s := range ss {
		out = append(out, s.Bytes()...)
	}
	return out
}

type decoder struct {
	c   curve.Curve
	buf []byte
	err error
}

func newDecoder(c curve.Curve, b []byte) *decoder {
	return &decoder{c: c, buf: b}
}

func (d *decoder) point() curve.Point {
	if d.err != nil {
		return curve.Identity(d.c)
	}
	n := d.c.PointSize()
	if len(d.buf) < n {
		d.err = fmt.Errorf("%w: truncated point", ErrEncoding)
		return curve.Identity(d.c)
	}
	p, err := curve.PointFromBytes(d.c, d.buf[:n])
	if err != nil {
		d.err = fmt.Errorf("%w: %v", ErrEncoding, err)
		return curve.Identity(d.c)
	}
	d.buf = d.buf[n:]
	return p
}

func (d *decoder) points(n int) []curve.Point {
	out := make([]curve.Point, n)
	for i := range out {
		out[i] = d.point()
	}
	return out
}

func (d *decoder) scalar() curve.Scalar {
	if d.err != nil {
		return curve.NewScalar(d.c)
	}
	if len(d.buf) < curve.ScalarSize {
		d.err = fmt.Errorf("%w: truncated scalar", ErrEncoding)
		return curve.NewScalar(d.c)
	}
	s, err := curve.ScalarFromBytes(d.c, d.buf[:curve.ScalarSize])
	if err != nil {
		d.err = fmt.Errorf("%w: %v", ErrEncoding, err)
		return curve.NewScalar(d.c)
	}
	d.buf = d.buf[curve.ScalarSize:]
	return s
}

func (d *decoder) scalars(n int) []curve.Scalar {
	out := make([]curve.Scalar, n)
	for i := range out {
		out[i] = d.scalar()
	}
	return out
}

// finish reports any decoding error, or trailing bytes.
func (d *decoder) finish() error {
	if d.err != nil {
		return d.err
	}
	if len(d.buf) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrEncoding, len(d.buf))
	}
	return nil
}
