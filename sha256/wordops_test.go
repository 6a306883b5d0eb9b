package sha256

import (
	"math/bits"
	"testing"
)

func TestRotr(t *testing.T) {
	tests := []struct {
		x    uint32
		n    uint
		want uint32
	}{
		{0x00000001, 1, 0x80000000},
		{0x80000000, 31, 0x00000001},
		{0x12345678, 0, 0x12345678},
		{0x12345678, 4, 0x81234567},
		{0x12345678, 16, 0x56781234},
		{0xffffffff, 7, 0xffffffff},
	}
	for i, test := range tests {
		if got := rotr(test.x, test.n); got != test.want {
			t.Errorf("%d, rotr(%#08x, %d) = %#08x, want %#08x", i, test.x, test.n, got, test.want)
		}
	}

	for n := uint(0); n < 32; n++ {
		x := uint32(0x9b05688c)
		if got, want := rotr(x, n), bits.RotateLeft32(x, -int(n)); got != want {
			t.Errorf("rotr(%#08x, %d) = %#08x, want %#08x", x, n, got, want)
		}
	}
}

func TestShr(t *testing.T) {
	if got := shr(0x80000000, 31); got != 1 {
		t.Errorf("shr = %#x, want 1", got)
	}
	if got := shr(0xffffffff, 10); got != 0x003fffff {
		t.Errorf("shr = %#x, want 0x3fffff", got)
	}
}

func TestLogicalOps(t *testing.T) {
	x, y := uint32(0xf0f0f0f0), uint32(0xff00ff00)
	if got := and(x, y); got != 0xf000f000 {
		t.Errorf("and = %#08x", got)
	}
	if got := or(x, y); got != 0xfff0fff0 {
		t.Errorf("or = %#08x", got)
	}
	if got := xor(x, y); got != 0x0ff00ff0 {
		t.Errorf("xor = %#08x", got)
	}
	if got := xor(x, y, x); got != y {
		t.Errorf("xor of three = %#08x, want %#08x", got, y)
	}
	if got := xor(); got != 0 {
		t.Errorf("empty xor = %#08x", got)
	}
	if got := not(x); got != 0x0f0f0f0f {
		t.Errorf("not = %#08x", got)
	}
}

func TestAddModWraps(t *testing.T) {
	tests := []struct {
		xs   []uint32
		want uint32
	}{
		{nil, 0},
		{[]uint32{1, 2, 3}, 6},
		{[]uint32{0xffffffff, 1}, 0},
		{[]uint32{0xffffffff, 0xffffffff}, 0xfffffffe},
		{[]uint32{0x80000000, 0x80000000, 0x80000000}, 0x80000000},
	}
	for i, test := range tests {
		if got := addMod(test.xs...); got != test.want {
			t.Errorf("%d, addMod(%v) = %#08x, want %#08x", i, test.xs, got, test.want)
		}
	}
}

func TestBigEndianHelpers(t *testing.T) {
	var b [8]byte
	bePutUint32(b[:], 0x61626380)
	if b[0] != 'a' || b[1] != 'b' || b[2] != 'c' || b[3] != 0x80 {
		t.Errorf("bePutUint32 = %x", b[:4])
	}
	if got := beUint32(b[:]); got != 0x61626380 {
		t.Errorf("beUint32 = %#08x", got)
	}
	bePutUint64(b[:], 0x18)
	if b[7] != 0x18 || b[0] != 0 {
		t.Errorf("bePutUint64 = %x", b)
	}
}
