package bitutil

import "fmt"

// SelfTest reproduces the small embedded assertion suite the original
// interpreter ran before touching a ROM (rotate_left_n chains, BITN/ISBITN,
// and the signed/unsigned byte comparison). It returns an error instead of
// aborting the process, so the caller decides how to report a failure.
func SelfTest() error {
	const b byte = 0b11011100
	rotated := b
	for n := 0; n <= 8; n++ {
		want := RotateLeftN(b, n)
		if rotated != want {
			return fmt.Errorf("bitutil: RotateLeftN(%#08b, %d) = %#08b, want %#08b", b, n, rotated, want)
		}
		rotated = RotateLeft(rotated)
	}

	const v byte = 0b1011
	for n, want := range []byte{1, 1, 0, 1, 0, 0, 0, 0} {
		if got := BitN(v, uint(n)); got != want {
			return fmt.Errorf("bitutil: BitN(%#04b, %d) = %d, want %d", v, n, got, want)
		}
		if got := IsBitN(v, uint(n)); got != (want == 1) {
			return fmt.Errorf("bitutil: IsBitN(%#04b, %d) = %v, want %v", v, n, got, want == 1)
		}
	}

	signed := int8(-1)
	unsigned := byte(0xFF)
	if byte(signed) != unsigned {
		return fmt.Errorf("bitutil: int8(-1) reinterpreted as byte = %#02x, want %#02x", byte(signed), unsigned)
	}

	return nil
}
