package mac

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"

	"massnet.org/hashcore/sha256"
)

// ErrKeyLength is returned when more key material is requested than HKDF
// can expand, 255 hash lengths.
var ErrKeyLength = errors.New("invalid derived key length")

const maxHKDFLength = 255 * Size

// HKDF derives length bytes from inputKey with HKDF-SHA256 (RFC 5869).
// salt and info may be nil.
func HKDF(inputKey, salt, info []byte, length int) ([]byte, error) {
	if length < 0 || length > maxHKDFLength {
		return nil, errors.Wrapf(ErrKeyLength, "hkdf length %d", length)
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(sha256.New, inputKey, salt, info), out); err != nil {
		return nil, err
	}
	return out, nil
}

// HKDFExtract returns the pseudorandom key of the extract step.
func HKDFExtract(inputKey, salt []byte) []byte {
	return hkdf.Extract(sha256.New, inputKey, salt)
}

// HKDFExpand expands prk to length bytes bound to info.
func HKDFExpand(prk, info []byte, length int) ([]byte, error) {
	if length < 0 || length > maxHKDFLength {
		return nil, errors.Wrapf(ErrKeyLength, "hkdf length %d", length)
	}
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(sha256.New, prk, info), out); err != nil {
		return nil, err
	}
	return out, nil
}

// PBKDF2 stretches password into keyLen bytes with PBKDF2-HMAC-SHA256.
func PBKDF2(password, salt []byte, iterations, keyLen int) ([]byte, error) {
	if iterations < 1 {
		return nil, errors.Errorf("pbkdf2 iterations %d, want at least 1", iterations)
	}
	if keyLen < 1 {
		return nil, errors.Wrapf(ErrKeyLength, "pbkdf2 length %d", keyLen)
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, sha256.New), nil
}
