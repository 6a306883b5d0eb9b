package mac

import (
	"crypto/hmac"
	stdsha256 "crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// RFC 4231, HMAC-SHA-256 results. Case 5 is omitted, it checks truncation.
var hmacTests = []struct {
	name string
	key  string
	data string
	tag  string
}{
	{
		name: "case 1",
		key:  "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b",
		data: "4869205468657265",
		tag:  "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
	},
	{
		name: "case 2",
		key:  "4a656665",
		data: "7768617420646f2079612077616e7420666f72206e6f7468696e673f",
		tag:  "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
	},
	{
		name: "case 3",
		key:  strings.Repeat("aa", 20),
		data: strings.Repeat("dd", 50),
		tag:  "773ea91e36800e46854db8ebd09181a72959098b3ef8c122d9635514ced565fe",
	},
	{
		name: "case 4",
		key:  "0102030405060708090a0b0c0d0e0f10111213141516171819",
		data: strings.Repeat("cd", 50),
		tag:  "82558a389a443c0ea4cc819899f2083a85f0faa3e578f8077a2e3ff46729665b",
	},
	{
		name: "case 6",
		key:  strings.Repeat("aa", 131),
		data: hex.EncodeToString([]byte("Test Using Larger Than Block-Size Key - Hash Key First")),
		tag:  "60e431591ee0b67f0d8a26aacbf5b77f8e0bc6213728c5140546040f0ee37f54",
	},
	{
		name: "case 7",
		key:  strings.Repeat("aa", 131),
		data: hex.EncodeToString([]byte("This is a test using a larger than block-size key and a larger than block-size data. The key needs to be hashed before being used by the HMAC algorithm.")),
		tag:  "9b09ffa71b942fcb27635fbcd5b0e944bfdc63644f0713938a7f51535c3a35e2",
	},
}

func TestHMAC(t *testing.T) {
	for _, test := range hmacTests {
		t.Run(test.name, func(t *testing.T) {
			key, data := mustHex(t, test.key), mustHex(t, test.data)
			tag := HMAC(key, data)
			assert.Equal(t, test.tag, hex.EncodeToString(tag[:]))
			assert.NoError(t, VerifyHMAC(key, data, tag[:]))

			tag[0] ^= 1
			assert.Equal(t, ErrMACMismatch, VerifyHMAC(key, data, tag[:]))
			assert.Equal(t, ErrMACMismatch, VerifyHMAC(key, data, tag[:Size-1]))
		})
	}
}

func TestNewHMACStreaming(t *testing.T) {
	key := []byte("streaming key")
	data := []byte("The quick brown fox jumps over the lazy dog, several times over.")
	want := HMAC(key, data)

	h := NewHMAC(key)
	h.Write(data[:7])
	h.Write(data[7:40])
	h.Write(data[40:])
	assert.Equal(t, want[:], h.Sum(nil))

	std := hmac.New(stdsha256.New, key)
	std.Write(data)
	assert.Equal(t, std.Sum(nil), want[:])
}

func TestPrefix(t *testing.T) {
	key, msg := []byte("secret"), []byte("attack at dawn")
	tag := Prefix(key, msg)
	assert.Equal(t, stdsha256.Sum256([]byte("secretattack at dawn")), tag)
	assert.NoError(t, VerifyPrefix(key, msg, tag[:]))

	assert.Equal(t, ErrMACMismatch, VerifyPrefix([]byte("Secret"), msg, tag[:]))
	assert.Equal(t, ErrMACMismatch, VerifyPrefix(key, []byte("attack at dusk"), tag[:]))
	assert.Equal(t, ErrMACMismatch, VerifyPrefix(key, msg, nil))

	empty := Prefix(nil, nil)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hex.EncodeToString(empty[:]))
}
