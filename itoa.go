package cfmt

const (
	lowerDigits = "0123456789abcdef"
	upperDigits = "0123456789ABCDEF"
)

// utoa renders v in base into the tail of buf, most significant digit
// first, and returns the digits.
func utoa(buf *[64]byte, v, base uint64, upper bool) []byte {
	digits := lowerDigits
	if upper {
		digits = upperDigits
	}
	i := len(buf)
	for {
		i--
		buf[i] = digits[v%base]
		v /= base
		if v == 0 {
			break
		}
	}
	return buf[i:]
}

// fmtInt renders an integer magnitude with its sign and base prefix.
func (s *sink) fmtInt(sp *Spec, mag, base uint64, sign byte, upper bool) {
	var buf [64]byte
	r := rendered{sign: sign, zeroPad: sp.Flags&FlagZero != 0}

	prec := -1
	if featPrecision && sp.PrecisionMode != ArgNone {
		prec = sp.Precision
	}
	if mag != 0 || prec != 0 {
		r.body = utoa(&buf, mag, base, upper)
	}
	if prec > len(r.body) {
		r.zeros = prec - len(r.body)
	}

	if sp.Verb == 'p' {
		r.prefix = "0x"
	} else if featAltForm && sp.Flags&FlagAlt != 0 {
		switch base {
		case 8:
			if r.zeros == 0 && (len(r.body) == 0 || r.body[0] != '0') {
				r.zeros = 1
			}
		case 16:
			if mag != 0 {
				r.prefix = "0x"
				if upper {
					r.prefix = "0X"
				}
			}
		case 2:
			if mag != 0 {
				r.prefix = "0b"
				if upper {
					r.prefix = "0B"
				}
			}
		}
	}
	s.emit(&r, sp.Width, sp.Flags&FlagLeft != 0)
}
