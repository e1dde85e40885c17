package curve

import "runtime"

// zeroizeBytes mirrors the root package helper; curve sits below it in the
// import graph.
func zeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
