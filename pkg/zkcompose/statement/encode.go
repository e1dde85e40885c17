package statement

import (
	"encoding/binary"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

// encoder builds canonical public encodings: a kind byte, a curve byte, then
// length-prefixed fields.
type encoder struct {
	buf []byte
}

func newEncoder(k Kind, c curve.Curve) *encoder {
	return &encoder{buf: []byte{byte(k), c.ID()}}
}

func (e *encoder) uint64(v uint64) *encoder {
	e.buf = binary.BigEndian.AppendUint64(e.buf, v)
	return e
}

func (e *encoder) bytes(b []byte) *encoder {
	e.uint64(uint64(len(b)))
	e.buf = append(e.buf, b...)
	return e
}

func (e *encoder) point(p curve.Point) *encoder {
	return e.bytes(p.Bytes())
}

func (e *encoder) points(ps []curve.Point) *encoder {
	e.uint64(uint64(len(ps)))
	for _, p := range ps {
		e.point(p)
	}
	return e
}

func (e *encoder) scalar(s curve.Scalar) *encoder {
	return e.bytes(s.Bytes())
}

func (e *encoder) finish() []byte {
	return e.buf
}
