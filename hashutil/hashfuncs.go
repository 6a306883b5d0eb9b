package hashutil

import (
	"golang.org/x/crypto/ripemd160"
)

// Hash160Size is the byte length of a Hash160 digest.
const Hash160Size = ripemd160.Size

// Hash160 returns RIPEMD160(SHA256(data)).
func Hash160(data []byte) [Hash160Size]byte {
	inner := SHA256(data)
	var out [Hash160Size]byte
	copy(out[:], Ripemd160(inner[:]))
	return out
}

// Ripemd160 returns RIPEMD160(data).
func Ripemd160(data []byte) []byte {
	r := ripemd160.New()
	r.Write(data)
	return r.Sum(nil)
}
