package xts

// zero overwrites b with zero bytes. It is best-effort: the Go
// compiler is free to elide writes to memory it can prove dead, but
// for key/tweak/carry buffers that live inside a heap-allocated Cipher
// and escape through exported methods, in practice it does not.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
