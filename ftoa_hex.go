package cfmt

const (
	mantBits   = 52
	mantNibble = mantBits / 4
)

// hex renders the a form without its 0x prefix. Normal values lead with
// 1 and subnormals with 0 at exponent -1022. Without a precision all 13
// mantissa digits are written, which round-trips exactly; a shorter
// precision rounds half away from zero and may carry the leading digit
// to 2.
func (f *fbuf) hex(bits uint64, prec int, hasPrec, alt, upper bool) {
	digits := lowerDigits
	if upper {
		digits = upperDigits
	}
	mant := bits & (1<<mantBits - 1)
	bexp := int(bits>>mantBits) & 0x7ff
	lead, exp := uint64(1), bexp-1023
	if bexp == 0 {
		lead, exp = 0, -1022
		if mant == 0 {
			exp = 0
		}
	}

	nd := mantNibble
	if hasPrec {
		nd = prec
	}
	if nd < mantNibble {
		drop := uint(mantNibble-nd) * 4
		mant += 1 << (drop - 1)
		if mant>>mantBits != 0 {
			lead++
			mant &= 1<<mantBits - 1
		}
		mant >>= drop
	}

	f.put(digits[lead])
	if nd > 0 || alt {
		f.put('.')
	}
	shown := min(nd, mantNibble)
	for i := shown - 1; i >= 0; i-- {
		f.put(digits[(mant>>(uint(i)*4))&0xf])
	}
	for i := shown; i < nd && !f.over; i++ {
		f.put('0')
	}
	f.putExp(expMark('p', upper), exp, 1)
}
