// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sha256

import (
	"hash"

	"github.com/pkg/errors"
)

const (
	magic256          = "sha\x03"
	marshaledSize     = len(magic256) + 8*4 + chunk + 8
	errInvalidStateID = "sha256: invalid hash state"
)

// digest represents the partial evaluation of a checksum.
type digest struct {
	h   State
	x   [chunk]byte
	nx  int
	len uint64
}

// New returns a new hash.Hash computing the SHA256 checksum. The hash
// also implements encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// to marshal and unmarshal its internal state.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

func (d *digest) Reset() {
	d.h = IV
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

// Write buffers p until a whole block is available and compresses every
// completed block. It fails only when the total length would overflow.
func (d *digest) Write(p []byte) (nn int, err error) {
	if uint64(len(p)) > maxBytes-d.len {
		return 0, errors.Wrapf(ErrMessageTooLong, "%d bytes after %d", len(p), d.len)
	}
	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == chunk {
			d.h = block(d.h, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= chunk {
		n := len(p) &^ (chunk - 1)
		d.h = block(d.h, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

// Sum appends the current hash to in. The running state is not changed,
// so the caller can keep writing and summing.
func (d *digest) Sum(in []byte) []byte {
	hash := d.checkSum()
	return append(in, hash[:]...)
}

func (d *digest) checkSum() [Size]byte {
	tail := make([]byte, 0, 2*chunk)
	tail = append(tail, d.x[:d.nx]...)
	tail = append(tail, 0x80)
	tail = appendLength(tail, d.len*8)
	s := block(d.h, tail)
	return s.Bytes()
}

func (d *digest) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, marshaledSize)
	b = append(b, magic256...)
	var w [8]byte
	for _, v := range d.h {
		bePutUint32(w[:4], v)
		b = append(b, w[:4]...)
	}
	b = append(b, d.x[:d.nx]...)
	b = b[:len(b)+len(d.x)-d.nx] // already zero
	bePutUint64(w[:], d.len)
	b = append(b, w[:]...)
	return b, nil
}

func (d *digest) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic256) || string(b[:len(magic256)]) != magic256 {
		return errors.New(errInvalidStateID + " identifier")
	}
	if len(b) != marshaledSize {
		return errors.New(errInvalidStateID + " size")
	}
	b = b[len(magic256):]
	for i := range d.h {
		d.h[i] = beUint32(b)
		b = b[4:]
	}
	copy(d.x[:], b[:chunk])
	b = b[chunk:]
	d.len = uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
	d.nx = int(d.len % chunk)
	return nil
}
