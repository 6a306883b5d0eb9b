// Package mac authenticates messages and derives keys on top of the
// from-scratch sha256 package.
package mac

import (
	"crypto/hmac"
	"crypto/subtle"
	"hash"

	"github.com/pkg/errors"

	"massnet.org/hashcore/sha256"
)

// ErrMACMismatch is returned by the Verify functions when the tag does
// not authenticate the message.
var ErrMACMismatch = errors.New("message authentication failed")

// Size is the byte length of every tag produced here.
const Size = sha256.Size

// Prefix computes the keyed hash SHA256(key || message).
//
// The construction is open to length extension: whoever holds a tag for m
// can forge one for m || padding || suffix. Use HMAC unless the other side
// speaks only this scheme.
func Prefix(key, message []byte) [Size]byte {
	d := sha256.New()
	d.Write(key)
	d.Write(message)
	var tag [Size]byte
	copy(tag[:], d.Sum(nil))
	return tag
}

// VerifyPrefix checks tag against Prefix(key, message) in constant time.
func VerifyPrefix(key, message, tag []byte) error {
	want := Prefix(key, message)
	if subtle.ConstantTimeCompare(want[:], tag) != 1 {
		return ErrMACMismatch
	}
	return nil
}

// HMAC computes HMAC-SHA256 of message under key.
func HMAC(key, message []byte) [Size]byte {
	h := NewHMAC(key)
	h.Write(message)
	var tag [Size]byte
	copy(tag[:], h.Sum(nil))
	return tag
}

// NewHMAC returns a streaming HMAC-SHA256.
func NewHMAC(key []byte) hash.Hash {
	return hmac.New(sha256.New, key)
}

// VerifyHMAC checks tag against HMAC(key, message) in constant time.
func VerifyHMAC(key, message, tag []byte) error {
	want := HMAC(key, message)
	if !hmac.Equal(want[:], tag) {
		return ErrMACMismatch
	}
	return nil
}
