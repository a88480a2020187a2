package cfmt

import "math"

// fbuf is the scratch a float conversion renders into. over is set once
// a write no longer fits.
type fbuf struct {
	b    [ConversionBufferSize]byte
	n    int
	over bool
}

func (f *fbuf) put(c byte) {
	if f.n < len(f.b) {
		f.b[f.n] = c
		f.n++
		return
	}
	f.over = true
}

func (f *fbuf) putUint(v uint) {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	for _, c := range tmp[i:] {
		f.put(c)
	}
}

// putExp writes an exponent marker, a sign and at least minDigits digits.
func (f *fbuf) putExp(mark byte, exp, minDigits int) {
	f.put(mark)
	if exp < 0 {
		f.put('-')
		exp = -exp
	} else {
		f.put('+')
	}
	if minDigits > 1 && exp < 10 {
		f.put('0')
	}
	f.putUint(uint(exp))
}

func isUpper(verb byte) bool { return verb >= 'A' && verb <= 'Z' }

// fmtFloat renders v for one of the e, f, g or a conversions.
func (s *sink) fmtFloat(sp *Spec, v float64) {
	var f fbuf
	r := rendered{zeroPad: sp.Flags&FlagZero != 0}
	bits := math.Float64bits(v)
	neg := bits>>63 != 0
	upper := isUpper(sp.Verb)
	alt := featAltForm && sp.Flags&FlagAlt != 0

	switch {
	case neg && !math.IsNaN(v):
		r.sign = '-'
	case sp.Flags&FlagPlus != 0:
		r.sign = '+'
	case sp.Flags&FlagSpace != 0:
		r.sign = ' '
	}

	if math.IsInf(v, 0) || math.IsNaN(v) {
		tok := "inf"
		if math.IsNaN(v) {
			tok = "nan"
		}
		for i := 0; i < len(tok); i++ {
			c := tok[i]
			if upper {
				c -= 'a' - 'A'
			}
			f.put(c)
		}
		r.zeroPad = false
		r.body = f.b[:f.n]
		s.emit(&r, sp.Width, sp.Flags&FlagLeft != 0)
		return
	}

	prec, hasPrec := 6, false
	if featPrecision && sp.PrecisionMode != ArgNone {
		prec, hasPrec = sp.Precision, true
	}

	switch sp.Verb {
	case 'a', 'A':
		r.prefix = "0x"
		if upper {
			r.prefix = "0X"
		}
		f.hex(bits, prec, hasPrec, alt, upper)
	default:
		var d decimal
		d.load(bits)
		switch sp.Verb {
		case 'f', 'F':
			f.fixed(&d, prec, alt)
		case 'e', 'E':
			f.sci(&d, prec, alt, upper)
		default:
			f.general(&d, prec, alt, upper)
		}
	}

	if f.over {
		r.sign, r.prefix, r.zeroPad = 0, "", false
		r.text = "err"
	} else {
		r.body = f.b[:f.n]
	}
	s.emit(&r, sp.Width, sp.Flags&FlagLeft != 0)
}

// fixed renders the f form.
func (f *fbuf) fixed(d *decimal, prec int, alt bool) {
	n := d.fixed(f.b[:], prec)
	if n < 0 {
		f.over = true
		return
	}
	f.n = n
	if prec == 0 && !alt {
		return
	}
	if n == len(f.b) {
		f.over = true
		return
	}
	ni := n - prec
	copy(f.b[ni+1:n+1], f.b[ni:n])
	f.b[ni] = '.'
	f.n++
}

// sci renders the e form.
func (f *fbuf) sci(d *decimal, prec int, alt, upper bool) {
	n, exp := d.sci(f.b[1:], prec)
	if n < 0 {
		f.over = true
		return
	}
	f.b[0] = f.b[1]
	f.n = 1
	if prec > 0 || alt {
		f.b[1] = '.'
		f.n = n + 1
	}
	f.putExp(expMark('e', upper), exp, 2)
}

// general renders the g form: P significant digits in the f layout when
// the exponent X satisfies P > X >= -4, otherwise in the e layout, with
// trailing fraction zeros removed unless alt is set.
func (f *fbuf) general(d *decimal, prec int, alt, upper bool) {
	p := prec
	if p == 0 {
		p = 1
	}
	n, x := d.sci(f.b[1:], p-1)
	if n < 0 {
		f.over = true
		return
	}
	if p > x && x >= -4 {
		if x >= 0 {
			copy(f.b[:x+1], f.b[1:x+2])
			f.b[x+1] = '.'
			f.n = p + 1
		} else {
			lead := 1 - x
			if lead+p > len(f.b) {
				f.over = true
				return
			}
			copy(f.b[lead:], f.b[1:1+p])
			f.b[0], f.b[1] = '0', '.'
			for i := 2; i < lead; i++ {
				f.b[i] = '0'
			}
			f.n = lead + p
		}
		f.trimPoint(alt)
		return
	}
	f.b[0] = f.b[1]
	f.b[1] = '.'
	f.n = p + 1
	f.trimPoint(alt)
	f.putExp(expMark('e', upper), x, 2)
}

// trimPoint strips trailing fraction zeros and a bare point. With alt
// set only the point is kept.
func (f *fbuf) trimPoint(alt bool) {
	if alt {
		return
	}
	point := -1
	for i := 0; i < f.n; i++ {
		if f.b[i] == '.' {
			point = i
			break
		}
	}
	if point < 0 {
		return
	}
	for f.n > point+1 && f.b[f.n-1] == '0' {
		f.n--
	}
	if f.n == point+1 {
		f.n--
	}
}

func expMark(c byte, upper bool) byte {
	if upper {
		return c - ('a' - 'A')
	}
	return c
}
