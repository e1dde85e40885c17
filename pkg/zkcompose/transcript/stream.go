package transcript

import (
	"encoding/binary"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/crypto/blake2b"
)

// StreamSeedSize is the number of bytes of caller randomness consumed per
// derived stream.
const StreamSeedSize = 32

// NewStream returns a deterministic randomness stream keyed by seed and
// separated by label. The prover gives each statement its own stream so
// workers never share the caller's reader.
func NewStream(seed []byte, label string) (io.Reader, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySeed
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(label)))
	_, _ = h.Write(l[:])
	_, _ = h.Write([]byte(label))
	_, _ = h.Write(seed)
	key := h.Sum(nil)
	defer func() {
		for i := range key {
			key[i] = 0
		}
		runtime.KeepAlive(key)
	}()

	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, fmt.Errorf("transcript: stream: %w", err)
	}
	return xof, nil
}
