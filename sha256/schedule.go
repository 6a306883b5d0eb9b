// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sha256

// Schedule is the 64-word message schedule derived from one Block.
type Schedule [rounds]uint32

func sigma0(x uint32) uint32 {
	return xor(rotr(x, 7), rotr(x, 18), shr(x, 3))
}

func sigma1(x uint32) uint32 {
	return xor(rotr(x, 17), rotr(x, 19), shr(x, 10))
}

// Expand builds the message schedule of b. Words 0-15 are b itself.
func Expand(b Block) Schedule {
	var w Schedule
	copy(w[:], b[:])
	for i := wordsBlock; i < rounds; i++ {
		w[i] = addMod(sigma0(w[i-15]), w[i-7], sigma1(w[i-2]), w[i-16])
	}
	return w
}
