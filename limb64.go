//go:build cfmt_limb64

package cfmt

import "math/bits"

type limb = uint64

const (
	limbBits = 64

	chunkBase   = 10_000_000_000_000_000_000
	chunkDigits = 19
)

func mulAdd(x, y, c limb) (hi, lo limb) {
	hi, lo = bits.Mul64(x, y)
	lo, carry := bits.Add64(lo, c, 0)
	return hi + carry, lo
}

func divRem(hi, lo, d limb) (q, r limb) {
	return bits.Div64(hi, lo, d)
}
