// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sha256

import "github.com/pkg/errors"

var (
	// ErrInvalidInputKind is returned by Hash when the message is neither
	// of string kind nor a slice of bytes.
	ErrInvalidInputKind = errors.New("invalid input kind, want string or []byte")

	// ErrMessageTooLong is returned when the bit length of a message does
	// not fit the 64-bit length field.
	ErrMessageTooLong = errors.New("message bit length overflows 64 bits")

	// ErrBitLength is returned by PadBits and SumBits when the message
	// byte count disagrees with the declared bit length.
	ErrBitLength = errors.New("message length does not match bit length")
)
