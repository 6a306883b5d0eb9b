// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// SHA256 compression step.

package sha256

// State is the running hash value h0..h7.
type State [8]uint32

func bigSigma0(a uint32) uint32 {
	return xor(rotr(a, 2), rotr(a, 13), rotr(a, 22))
}

func bigSigma1(e uint32) uint32 {
	return xor(rotr(e, 6), rotr(e, 11), rotr(e, 25))
}

func ch(e, f, g uint32) uint32 {
	return xor(and(e, f), and(not(e), g))
}

func maj(a, b, c uint32) uint32 {
	return xor(and(a, b), and(a, c), and(b, c))
}

// Compress runs the 64 rounds over w and returns s fed forward with the
// final working registers. s itself is not modified.
func Compress(s State, w *Schedule) State {
	a, b, c, d, e, f, g, h := s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7]

	for i := 0; i < rounds; i++ {
		t1 := addMod(h, bigSigma1(e), ch(e, f, g), K[i], w[i])
		t2 := addMod(bigSigma0(a), maj(a, b, c))

		// Every right-hand side is evaluated before any register is assigned.
		h, g, f, e, d, c, b, a = g, f, e, addMod(d, t1), c, b, a, addMod(t1, t2)
	}

	return State{
		addMod(s[0], a),
		addMod(s[1], b),
		addMod(s[2], c),
		addMod(s[3], d),
		addMod(s[4], e),
		addMod(s[5], f),
		addMod(s[6], g),
		addMod(s[7], h),
	}
}

// block folds every whole chunk of p into s.
func block(s State, p []byte) State {
	for len(p) >= chunk {
		w := Expand(blockOf(p))
		s = Compress(s, &w)
		p = p[chunk:]
	}
	return s
}

// Bytes serializes the state big-endian into a digest.
func (s *State) Bytes() [Size]byte {
	var out [Size]byte
	for i, v := range s {
		bePutUint32(out[i*4:], v)
	}
	return out
}
