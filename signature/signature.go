// Package signature signs and verifies SHA256 message digests with
// secp256k1 ECDSA keys.
package signature

import (
	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"

	"massnet.org/hashcore/hashutil"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidPubKey    = errors.New("invalid public key")
	ErrKeyNotFound      = errors.New("private key not found")
)

// GetSignDB produces a signature over a 32-byte digest for the key
// behind pubkey.
type GetSignDB interface {
	GetSign(pubkey *btcec.PublicKey, digest []byte) (*btcec.Signature, error)
}

type SignClosure func(*btcec.PublicKey, []byte) (*btcec.Signature, error)

func (sc SignClosure) GetSign(pubkey *btcec.PublicKey, digest []byte) (*btcec.Signature, error) {
	return sc(pubkey, digest)
}

// KeyID names a public key by the Hash160 of its compressed encoding.
func KeyID(pubkey *btcec.PublicKey) [hashutil.Hash160Size]byte {
	return hashutil.Hash160(pubkey.SerializeCompressed())
}

// KeyRing is an in-memory GetSignDB keyed by KeyID.
type KeyRing map[[hashutil.Hash160Size]byte]*btcec.PrivateKey

func (kr KeyRing) Add(priv *btcec.PrivateKey) {
	kr[KeyID(priv.PubKey())] = priv
}

func (kr KeyRing) GetSign(pubkey *btcec.PublicKey, digest []byte) (*btcec.Signature, error) {
	priv, ok := kr[KeyID(pubkey)]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return priv.Sign(digest)
}

func NewPrivateKey() (*btcec.PrivateKey, error) {
	return btcec.NewPrivateKey(btcec.S256())
}

// Digest returns the value that is actually signed for message.
func Digest(message []byte) hashutil.Hash {
	return hashutil.SHA256(message)
}

// Sign returns the DER encoded signature of SHA256(message).
func Sign(priv *btcec.PrivateKey, message []byte) ([]byte, error) {
	digest := Digest(message)
	sig, err := priv.Sign(digest[:])
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

// SignWith asks kdb for the signature of message under pubkey.
func SignWith(kdb GetSignDB, pubkey *btcec.PublicKey, message []byte) ([]byte, error) {
	digest := Digest(message)
	sig, err := kdb.GetSign(pubkey, digest[:])
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

// Verify checks a DER signature over SHA256(message) against a serialized
// public key.
func Verify(pubKey, message, sig []byte) error {
	pub, err := btcec.ParsePubKey(pubKey, btcec.S256())
	if err != nil {
		return errors.Wrap(ErrInvalidPubKey, err.Error())
	}
	s, err := btcec.ParseDERSignature(sig, btcec.S256())
	if err != nil {
		return errors.Wrap(ErrInvalidSignature, err.Error())
	}
	digest := Digest(message)
	if !s.Verify(digest[:], pub) {
		return ErrInvalidSignature
	}
	return nil
}
