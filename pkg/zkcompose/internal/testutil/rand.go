// Package testutil provides deterministic randomness and credential fixtures
// for tests.
// WARNING: The readers here are predictable by construction. Do not use in production.
package testutil

import (
	"errors"
	"io"

	"golang.org/x/crypto/blake2b"
)

// NewRand returns a reader producing a deterministic byte stream derived from
// seed. Two readers with the same seed produce the same stream.
func NewRand(seed string) io.Reader {
	key := blake2b.Sum256([]byte("zkcompose-testutil:" + seed))
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key[:])
	if err != nil {
		panic(err)
	}
	return xof
}

// ErrRandFailed is returned by FailingReader once its budget is spent.
var ErrRandFailed = errors.New("testutil: randomness source exhausted")

// FailingReader serves Budget bytes from R and then fails every read.
type FailingReader struct {
	R      io.Reader
	Budget int
}

// NewFailingReader returns a reader that fails after budget bytes.
func NewFailingReader(seed string, budget int) *FailingReader {
	return &FailingReader{R: NewRand(seed), Budget: budget}
}

// Read implements io.Reader.
func (f *FailingReader) Read(p []byte) (int, error) {
	if f.Budget <= 0 {
		return 0, ErrRandFailed
	}
	if len(p) > f.Budget {
		p = p[:f.Budget]
	}
	n, err := f.R.Read(p)
	f.Budget -= n
	return n, err
}

// CountingReader records how many bytes were read through it.
type CountingReader struct {
	R io.Reader
	N int
}

// Read implements io.Reader.
func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += n
	return n, err
}
