package hashutil

import (
	"encoding/hex"
	"errors"

	"massnet.org/hashcore/sha256"
)

// ErrInvalidHashLength indicates the length of hash is invalid.
var ErrInvalidHashLength = errors.New("invalid length for hash")

// HashSize is the byte length of Hash.
const HashSize = sha256.Size

// Hash represents a 32-byte hash value.
type Hash [HashSize]byte

// SHA256 represents the standard sha256.
func SHA256(raw []byte) Hash {
	return sha256.Sum256(raw)
}

// DoubleSHA256 represents the standard double sha256.
func DoubleSHA256(raw []byte) Hash {
	h := SHA256(raw)
	return SHA256(h[:])
}

// Bytes converts Hash to Byte Slice.
func (h Hash) Bytes() []byte {
	var bs Hash
	copy(bs[:], h[:])
	return bs[:]
}

// String converts Hash to String.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsEqual returns true if target is the same as hash.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// NewHash returns a Hash from a byte slice of exactly HashSize bytes.
func NewHash(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, ErrInvalidHashLength
	}
	copy(h[:], b)
	return h, nil
}

// DecodeStringToHash decodes a string value to Hash,
// the length of string value must be 64.
func DecodeStringToHash(str string) (Hash, error) {
	if len(str) != HashSize*2 {
		return Hash{}, ErrInvalidHashLength
	}
	hBytes, err := hex.DecodeString(str)
	if err != nil {
		return Hash{}, err
	}
	var h = Hash{}
	copy(h[:], hBytes)

	return h, nil
}

// MarshalText encodes the hash as lowercase hex.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	v, err := DecodeStringToHash(string(text))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
