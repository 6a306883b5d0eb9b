// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sha256

import "github.com/pkg/errors"

// Block is one 512-bit unit of padded message, as 16 big-endian words.
type Block [wordsBlock]uint32

// blockOf decodes the first 64 bytes of p into a Block.
func blockOf(p []byte) Block {
	var b Block
	for i := range b {
		b[i] = beUint32(p[i*4:])
	}
	return b
}

// Bytes encodes the block back into its 64 message bytes.
func (b *Block) Bytes() []byte {
	p := make([]byte, chunk)
	for i, w := range b {
		bePutUint32(p[i*4:], w)
	}
	return p
}

// Pad splits message into padded blocks: the message, a single 1 bit,
// zero bits up to 448 mod 512, then the message bit length as a 64-bit
// big-endian integer.
func Pad(message []byte) ([]Block, error) {
	if uint64(len(message)) > maxBytes {
		return nil, errors.Wrapf(ErrMessageTooLong, "%d bytes", len(message))
	}
	return PadBits(message, uint64(len(message))*8)
}

// PadBits pads the first bitLen bits of message. Bits past bitLen in the
// final byte are ignored, and len(message) must be exactly ceil(bitLen/8).
func PadBits(message []byte, bitLen uint64) ([]Block, error) {
	full, r := bitLen/8, uint(bitLen%8)
	need := full
	if r != 0 {
		need++
	}
	if uint64(len(message)) != need {
		return nil, errors.Wrapf(ErrBitLength, "%d bytes for %d bits", len(message), bitLen)
	}

	n := int(full) / chunk
	blocks := make([]Block, 0, n+2)
	for i := 0; i < n; i++ {
		blocks = append(blocks, blockOf(message[i*chunk:]))
	}

	tail := make([]byte, 0, 2*chunk)
	tail = append(tail, message[n*chunk:full]...)
	if r == 0 {
		tail = append(tail, 0x80)
	} else {
		tail = append(tail, message[full]&byte(0xff<<(8-r))|0x80>>r)
	}
	tail = appendLength(tail, bitLen)
	for ; len(tail) > 0; tail = tail[chunk:] {
		blocks = append(blocks, blockOf(tail))
	}
	return blocks, nil
}

// appendLength zero-fills tail, which already ends with the 1 bit, to 56
// mod 64 bytes and appends bitLen. A tail longer than 56 bytes leaves no
// room for the length field and spills into a second block.
func appendLength(tail []byte, bitLen uint64) []byte {
	for len(tail)%chunk != chunk-lengthSize {
		tail = append(tail, 0)
	}
	var l [lengthSize]byte
	bePutUint64(l[:], bitLen)
	return append(tail, l[:]...)
}
