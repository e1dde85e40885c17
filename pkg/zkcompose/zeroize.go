package zkcompose

import "runtime"

// ZeroizeBytes overwrites buf with zeros. runtime.KeepAlive keeps the
// compiler from dropping the stores (golang/go#33325). Copies made elsewhere
// by the runtime are out of reach.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
