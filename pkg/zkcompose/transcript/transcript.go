// Package transcript implements the Fiat–Shamir transcript shared by the
// prover and verifier.
//
// Every append is framed as
//
//	len(label) ‖ label ‖ len(data) ‖ data
//
// with 8-byte big-endian lengths, so no two distinct append sequences hash the
// same input. The hash is BLAKE2b-512 and challenges are 64 bytes wide, which
// leaves a negligible bias after reduction into any 256-bit scalar field.
package transcript

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/curve"
)

// ChallengeSize is the width of a derived challenge.
const ChallengeSize = 64

// Challenge is a Fiat–Shamir challenge before reduction into a scalar field.
type Challenge [ChallengeSize]byte

// ChallengeFromBytes copies b into a Challenge.
func ChallengeFromBytes(b []byte) (Challenge, error) {
	var c Challenge
	if len(b) != ChallengeSize {
		return c, fmt.Errorf("transcript: challenge must be %d bytes, got %d", ChallengeSize, len(b))
	}
	copy(c[:], b)
	return c, nil
}

// Scalar reduces the challenge into the scalar field of c.
func (ch Challenge) Scalar(c curve.Curve) curve.Scalar {
	return curve.ScalarFromWideBytes(c, ch[:])
}

// Equal compares two challenges in constant time.
func (ch Challenge) Equal(other Challenge) bool {
	return subtle.ConstantTimeCompare(ch[:], other[:]) == 1
}

// Bytes returns a copy of the challenge bytes.
func (ch Challenge) Bytes() []byte {
	out := make([]byte, ChallengeSize)
	copy(out, ch[:])
	return out
}

// Transcript accumulates labelled public data. It is not safe for concurrent use.
type Transcript struct {
	h hash.Hash
}

// New starts a transcript under the given protocol domain.
func New(domain string) *Transcript {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	t := &Transcript{h: h}
	t.Append("domain", []byte(domain))
	return t
}

// Append absorbs one labelled message.
func (t *Transcript) Append(label string, data []byte) {
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(label)))
	_, _ = t.h.Write(l[:])
	_, _ = t.h.Write([]byte(label))
	binary.BigEndian.PutUint64(l[:], uint64(len(data)))
	_, _ = t.h.Write(l[:])
	_, _ = t.h.Write(data)
}

// AppendUint64 absorbs an integer in 8-byte big-endian form.
func (t *Transcript) AppendUint64(label string, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	t.Append(label, b[:])
}

// AppendPoint absorbs the canonical encoding of p.
func (t *Transcript) AppendPoint(label string, p curve.Point) {
	t.Append(label, p.Bytes())
}

// AppendScalar absorbs the canonical encoding of s. Only public scalars
// (responses, revealed messages) belong in a transcript.
func (t *Transcript) AppendScalar(label string, s curve.Scalar) {
	t.Append(label, s.Bytes())
}

// Challenge derives a challenge from everything absorbed so far and then
// absorbs the challenge itself, so successive calls yield independent values.
func (t *Transcript) Challenge(label string) Challenge {
	t.Append("challenge", []byte(label))
	var ch Challenge
	copy(ch[:], t.h.Sum(nil))
	t.Append("challenge-value", ch[:])
	return ch
}

// ChallengeScalar derives a challenge and reduces it into c's field.
func (t *Transcript) ChallengeScalar(label string, c curve.Curve) curve.Scalar {
	ch := t.Challenge(label)
	return ch.Scalar(c)
}

// ErrEmptySeed is returned by NewStream for an empty seed.
var ErrEmptySeed = errors.New("transcript: empty stream seed")
