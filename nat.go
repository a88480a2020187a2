package cfmt

const (
	intBits  = 1024
	fracBits = 1088

	intLimbs  = intBits / limbBits
	fracLimbs = fracBits / limbBits
	natLimbs  = intLimbs + fracLimbs

	// intDigitsCap holds the 309 integer digits of the largest double,
	// rounded up to whole chunks for either limb size.
	intDigitsCap = 342
)

// nat is an unsigned fixed-point number with intBits integer bits and
// fracBits fraction bits, least significant limb first. Every finite
// double fits exactly.
type nat [natLimbs]limb

// rest classifies the part of a value dropped by rounding, relative to
// half a unit in the last kept digit.
type rest uint8

const (
	restBelow rest = iota
	restHalf
	restAbove
)

// decimal yields the exact decimal expansion of a non-negative double:
// all integer digits up front, then fraction digits one at a time.
type decimal struct {
	n   nat
	ip  [intDigitsCap]byte
	ilo int // ip[ilo:] are the integer digits, empty for a zero integer part
	flo int // lowest nonzero fraction limb, fracLimbs when the fraction is zero
}

// init loads mant * 2^exp.
func (d *decimal) init(mant uint64, exp int) {
	d.n = nat{}
	pos := exp + fracBits
	i, sh := pos/limbBits, uint(pos%limbBits)
	for m := mant; m != 0; i++ {
		d.n[i] |= limb(m << sh)
		m >>= limbBits - sh
		sh = 0
	}
	d.splitInt()
	d.flo = 0
	for d.flo < fracLimbs && d.n[d.flo] == 0 {
		d.flo++
	}
}

// load sets d to the magnitude of the finite double with the given bits.
func (d *decimal) load(bits uint64) {
	exp := int(bits>>52) & 0x7ff
	mant := bits & (1<<52 - 1)
	if exp == 0 {
		exp = 1
	} else {
		mant |= 1 << 52
	}
	d.init(mant, exp-1075)
}

// splitInt converts the integer limbs to decimal digits, consuming them.
func (d *decimal) splitInt() {
	in := d.n[fracLimbs:]
	top := len(in)
	for top > 0 && in[top-1] == 0 {
		top--
	}
	p := len(d.ip)
	for top > 0 {
		var r limb
		for i := top - 1; i >= 0; i-- {
			in[i], r = divRem(r, in[i], chunkBase)
		}
		for k := 0; k < chunkDigits; k++ {
			p--
			d.ip[p] = byte('0' + r%10)
			r /= 10
		}
		for top > 0 && in[top-1] == 0 {
			top--
		}
	}
	for p < len(d.ip) && d.ip[p] == '0' {
		p++
	}
	d.ilo = p
}

func (d *decimal) intDigits() []byte { return d.ip[d.ilo:] }

func (d *decimal) isZero() bool { return d.ilo == len(d.ip) && d.flo == fracLimbs }

// nextFrac multiplies the fraction by ten and returns the digit carried
// out of it.
func (d *decimal) nextFrac() byte {
	var c limb
	for i := d.flo; i < fracLimbs; i++ {
		c, d.n[i] = mulAdd(d.n[i], 10, c)
	}
	for d.flo < fracLimbs && d.n[d.flo] == 0 {
		d.flo++
	}
	return byte('0' + c)
}

func (d *decimal) fracRest() rest {
	const half = limb(1) << (limbBits - 1)
	top := d.n[fracLimbs-1]
	switch {
	case top < half:
		return restBelow
	case top > half || d.flo < fracLimbs-1:
		return restAbove
	}
	return restHalf
}

// intRest classifies dropped integer digits followed by the whole fraction.
func (d *decimal) intRest(tail []byte) rest {
	if len(tail) == 0 {
		return d.fracRest()
	}
	switch {
	case tail[0] < '5':
		return restBelow
	case tail[0] > '5':
		return restAbove
	}
	for _, c := range tail[1:] {
		if c != '0' {
			return restAbove
		}
	}
	if d.flo < fracLimbs {
		return restAbove
	}
	return restHalf
}

// roundHalfEven rounds the digit string s given what was dropped after it
// and reports a carry out of the first digit, in which case s is all zeros.
func roundHalfEven(s []byte, r rest) bool {
	if r == restBelow || r == restHalf && len(s) > 0 && (s[len(s)-1]-'0')%2 == 0 {
		return false
	}
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != '9' {
			s[i]++
			return false
		}
		s[i] = '0'
	}
	return true
}

// fixed writes the integer digits (at least one) and prec fraction digits
// into dst, rounded at the last fraction digit. It returns the digit count,
// or -1 when dst is too small.
func (d *decimal) fixed(dst []byte, prec int) int {
	ip := d.intDigits()
	ni := len(ip)
	if ni == 0 {
		ni = 1
	}
	n := ni + prec
	if n > len(dst) {
		return -1
	}
	if len(ip) == 0 {
		dst[0] = '0'
	} else {
		copy(dst, ip)
	}
	for i := ni; i < n; i++ {
		dst[i] = d.nextFrac()
	}
	if roundHalfEven(dst[:n], d.fracRest()) {
		if n == len(dst) {
			return -1
		}
		copy(dst[1:n+1], dst[:n])
		dst[0] = '1'
		n++
	}
	return n
}

// sci writes prec+1 significant digits into dst, rounded, and returns the
// count and the decimal exponent of the first digit. Zero yields zeros with
// exponent 0.
func (d *decimal) sci(dst []byte, prec int) (int, int) {
	n := prec + 1
	if n > len(dst) {
		return -1, 0
	}
	ip := d.intDigits()
	exp := len(ip) - 1
	var r rest
	if len(ip) >= n {
		copy(dst, ip[:n])
		r = d.intRest(ip[n:])
	} else {
		k := copy(dst, ip)
		if k == 0 {
			if d.isZero() {
				for i := range dst[:n] {
					dst[i] = '0'
				}
				return n, 0
			}
			c := d.nextFrac()
			exp = -1
			for c == '0' {
				c = d.nextFrac()
				exp--
			}
			dst[0] = c
			k = 1
		}
		for ; k < n; k++ {
			dst[k] = d.nextFrac()
		}
		r = d.fracRest()
	}
	if roundHalfEven(dst[:n], r) {
		dst[0] = '1'
		exp++
	}
	return n, exp
}
