package dsa

import (
	"io"

	sha3 "golang.org/x/crypto/sha3"
)

// A deterministic random source based on four parallel SHAKE256
// instances, with interleaved outputs.
//
// Output depends only on the seed. This is meant for reproducible test
// vectors and for auditing parameter generation; it MUST NOT be used
// with a low-entropy seed to produce real keys.
type shake256x4 struct {
	state [4]sha3.ShakeHash
	buf   [4 * 136]byte
	ptr   int
}

// NewDeterministicReader returns a reader whose output stream is fully
// determined by the provided seed.
func NewDeterministicReader(seed []byte) io.Reader {
	r := new(shake256x4)
	for i := 0; i < 4; i++ {
		var tmp [1]byte
		tmp[0] = byte(i)
		r.state[i] = sha3.NewShake256()
		r.state[i].Write(seed)
		r.state[i].Write(tmp[:])
	}
	r.ptr = len(r.buf)
	return r
}

// Read fills p entirely; it never fails.
func (r *shake256x4) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.ptr == len(r.buf) {
			r.refill()
		}
		k := copy(p[n:], r.buf[r.ptr:])
		r.ptr += k
		n += k
	}
	return n, nil
}

// Refill the buffer: each instance contributes 136 bytes (one SHAKE256
// block), as 17 words of 8 bytes interleaved with the other instances.
func (r *shake256x4) refill() {
	var tmp [136]byte
	for i := 0; i < 4; i++ {
		r.state[i].Read(tmp[:])
		for j := 0; j < 17; j++ {
			u := (i << 3) + (j << 5)
			v := j << 3
			copy(r.buf[u:u+8], tmp[v:v+8])
		}
	}
	r.ptr = 0
}
