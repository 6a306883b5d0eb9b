package hashutil

import (
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleRipemd160() {
	fmt.Println(hex.EncodeToString(Ripemd160([]byte("test hash256"))))

	// Output:
	// 07fc1824f3c8b5c0aebfe9edd7b519a85def76eb
}

func ExampleHash160() {
	h := Hash160([]byte("test hash160"))
	fmt.Println(hex.EncodeToString(h[:]))

	// Output:
	// b720061a734285a70e86cb32b31f32884e198c32
}

func TestDoubleSHA256(t *testing.T) {
	h := DoubleSHA256([]byte("test hash256"))
	assert.Equal(t, "cb43cc5fc9e305ddf8fccc2112629da4d21fc840937b785e86d4a220406359a8", h.String())
}

func TestHash160CompressedPubKey(t *testing.T) {
	// compressed public key of private key 1 on secp256k1
	pub, _ := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	h := Hash160(pub)
	assert.Equal(t, "751e76e8199196d454941c45d1b3a323f1433bd6", hex.EncodeToString(h[:]))
}

func BenchmarkDoubleSHA256(b *testing.B) {
	data := []byte("bench hash256")
	for i := 0; i < b.N; i++ {
		DoubleSHA256(data)
	}
}

func BenchmarkHash160(b *testing.B) {
	data := []byte("bench hash160")
	for i := 0; i < b.N; i++ {
		Hash160(data)
	}
}
