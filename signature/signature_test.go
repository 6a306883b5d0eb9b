package signature

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey().SerializeCompressed()
	msg := []byte("pay 1 coin to alice")

	sig, err := Sign(priv, msg)
	require.NoError(t, err)
	assert.NoError(t, Verify(pub, msg, sig))
	assert.NoError(t, Verify(priv.PubKey().SerializeUncompressed(), msg, sig))

	assert.Equal(t, ErrInvalidSignature, Verify(pub, []byte("pay 9 coins to mallory"), sig))

	other, err := NewPrivateKey()
	require.NoError(t, err)
	assert.Equal(t, ErrInvalidSignature, Verify(other.PubKey().SerializeCompressed(), msg, sig))
}

func TestSignDeterministic(t *testing.T) {
	keyBytes, _ := hex.DecodeString("eaf02ca348c524e6392655ba4d29603cd1a7347d9d65cfe93ce1ebffdca22694")
	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), keyBytes)

	a, err := Sign(priv, []byte("abc"))
	require.NoError(t, err)
	b, err := Sign(priv, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Sign(priv, []byte("abd"))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestVerifyMalformed(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey().SerializeCompressed()
	sig, err := Sign(priv, []byte("m"))
	require.NoError(t, err)

	err = Verify(pub[:10], []byte("m"), sig)
	assert.True(t, errors.Is(err, ErrInvalidPubKey), "got %v", err)

	err = Verify(pub, []byte("m"), sig[:len(sig)-2])
	assert.True(t, errors.Is(err, ErrInvalidSignature), "got %v", err)
}

func TestKeyID(t *testing.T) {
	one := make([]byte, btcec.PrivKeyBytesLen)
	one[len(one)-1] = 1
	priv, _ := btcec.PrivKeyFromBytes(btcec.S256(), one)
	id := KeyID(priv.PubKey())
	assert.Equal(t, "751e76e8199196d454941c45d1b3a323f1433bd6", hex.EncodeToString(id[:]))
}

func TestSignWith(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	ring := KeyRing{}
	ring.Add(priv)
	msg := []byte("signed through a key ring")

	sig, err := SignWith(ring, priv.PubKey(), msg)
	require.NoError(t, err)
	assert.NoError(t, Verify(priv.PubKey().SerializeCompressed(), msg, sig))

	stranger, err := NewPrivateKey()
	require.NoError(t, err)
	_, err = SignWith(ring, stranger.PubKey(), msg)
	assert.Equal(t, ErrKeyNotFound, err)

	var seen []byte
	closure := SignClosure(func(pub *btcec.PublicKey, digest []byte) (*btcec.Signature, error) {
		seen = digest
		return priv.Sign(digest)
	})
	_, err = SignWith(closure, priv.PubKey(), msg)
	require.NoError(t, err)
	d := Digest(msg)
	assert.Equal(t, d[:], seen)
}
