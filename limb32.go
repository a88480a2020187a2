//go:build !cfmt_limb64

package cfmt

import "math/bits"

type limb = uint32

const (
	limbBits = 32

	// chunkBase is the largest power of ten that fits in a limb.
	chunkBase   = 1_000_000_000
	chunkDigits = 9
)

// mulAdd returns x*y + c as a double limb.
func mulAdd(x, y, c limb) (hi, lo limb) {
	hi, lo = bits.Mul32(x, y)
	lo, carry := bits.Add32(lo, c, 0)
	return hi + carry, lo
}

// divRem divides the double limb (hi, lo) by d. hi must be less than d.
func divRem(hi, lo, d limb) (q, r limb) {
	return bits.Div32(hi, lo, d)
}
