package sha256_test

import (
	"math/bits"
	"math/rand"
	"testing"

	"massnet.org/hashcore/sha256"
	"massnet.org/hashcore/testutil"
)

// Flipping one input bit should change about half of the 256 output bits.
func TestAvalanche(t *testing.T) {
	const samples = 500
	r := rand.New(rand.NewSource(1))

	var total int
	for n := 0; n < samples; n++ {
		msg := make([]byte, 1+r.Intn(200))
		r.Read(msg)
		a := sha256.Sum256(msg)

		bit := r.Intn(len(msg) * 8)
		msg[bit/8] ^= 0x80 >> uint(bit%8)
		b := sha256.Sum256(msg)

		for i := range a {
			total += bits.OnesCount8(a[i] ^ b[i])
		}
	}

	mean := float64(total) / samples
	if mean < 120 || mean > 136 {
		t.Errorf("mean changed bits = %.2f, want about 128", mean)
	}
}

// Every output bit should flip for about half of all single-bit input
// changes.
func TestStrictAvalanche(t *testing.T) {
	testutil.SkipCI(t)

	const samples = 20000
	r := rand.New(rand.NewSource(2))
	var flips [sha256.Size * 8]int
	msg := make([]byte, 64)
	for n := 0; n < samples; n++ {
		r.Read(msg)
		a := sha256.Sum256(msg)
		bit := r.Intn(len(msg) * 8)
		msg[bit/8] ^= 0x80 >> uint(bit%8)
		b := sha256.Sum256(msg)

		for i := range flips {
			if (a[i/8]^b[i/8])&(0x80>>uint(i%8)) != 0 {
				flips[i]++
			}
		}
	}

	for i, f := range flips {
		if p := float64(f) / samples; p < 0.47 || p > 0.53 {
			t.Errorf("output bit %d flipped with probability %.3f", i, p)
		}
	}
}
