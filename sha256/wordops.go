// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sha256

// Word operations. All values are uint32, so every result is already
// reduced to 32 bits and additions wrap modulo 2^32.

// rotr rotates x right by n bits, 0 <= n < 32.
func rotr(x uint32, n uint) uint32 {
	return or(x>>n, x<<(32-n))
}

// shr shifts x right by n bits, zero filled.
func shr(x uint32, n uint) uint32 {
	return x >> n
}

func and(x, y uint32) uint32 { return x & y }

func or(x, y uint32) uint32 { return x | y }

func not(x uint32) uint32 { return ^x }

func xor(xs ...uint32) uint32 {
	var r uint32
	for _, x := range xs {
		r ^= x
	}
	return r
}

// addMod sums xs modulo 2^32.
func addMod(xs ...uint32) uint32 {
	var r uint32
	for _, x := range xs {
		r += x
	}
	return r
}

// beUint32 reads a big-endian word from b[0:4].
func beUint32(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// bePutUint32 writes v big-endian into b[0:4].
func bePutUint32(b []byte, v uint32) {
	_ = b[3]
	b[0], b[1], b[2], b[3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
}

// bePutUint64 writes v big-endian into b[0:8].
func bePutUint64(b []byte, v uint64) {
	_ = b[7]
	b[0], b[1], b[2], b[3] = byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32)
	b[4], b[5], b[6], b[7] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
}
