package bitutil

import "testing"

func TestRotateLeftRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := byte(v)
		got := RotateLeftN(b, 8)
		if got != b {
			t.Fatalf("RotateLeftN(%#02x, 8) = %#02x, want %#02x", b, got, b)
		}
	}
}

func TestRotateLeftRightInverse(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := byte(v)
		if got := RotateLeft(RotateRight(b)); got != b {
			t.Fatalf("RotateLeft(RotateRight(%#02x)) = %#02x, want %#02x", b, got, b)
		}
	}
}

func TestRotateLeftNZero(t *testing.T) {
	if got := RotateLeftN(0x42, 0); got != 0x42 {
		t.Fatalf("RotateLeftN(0x42, 0) = %#02x, want 0x42", got)
	}
}

func TestBitN(t *testing.T) {
	const v byte = 0b1011
	cases := []struct {
		n    uint
		want byte
	}{{0, 1}, {1, 1}, {2, 0}, {3, 1}, {4, 0}}
	for _, c := range cases {
		if got := BitN(v, c.n); got != c.want {
			t.Fatalf("BitN(%#04b, %d) = %d, want %d", v, c.n, got, c.want)
		}
		if got := IsBitN(v, c.n); got != (c.want == 1) {
			t.Fatalf("IsBitN(%#04b, %d) = %v, want %v", v, c.n, got, c.want == 1)
		}
	}
}

func TestSelfTest(t *testing.T) {
	if err := SelfTest(); err != nil {
		t.Fatalf("SelfTest() = %v, want nil", err)
	}
}
