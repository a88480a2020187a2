package cfmt

import "unicode/utf8"

// Vsnprintf formats args into buf and returns the length the output would
// have with unlimited space. At most len(buf)-1 bytes are stored, followed
// by a NUL; an empty buf is never written to.
//
// A malformed directive ends the call: the output up to that directive is
// kept, terminated and counted.
func Vsnprintf(buf []byte, format string, args []Arg) int {
	s := sink{buf: buf}
	run(&s, format, &cursor{args: args})
	s.terminate()
	return s.n
}

// Snprintf is [Vsnprintf] with arguments converted by [ArgOf].
func Snprintf(buf []byte, format string, args ...any) int {
	s := sink{buf: buf}
	run(&s, format, &cursor{anys: args})
	s.terminate()
	return s.n
}

// Vpprintf formats args and passes each output byte to put, in order. It
// returns the number of bytes passed.
func Vpprintf(put func(byte), format string, args []Arg) int {
	s := sink{put: put}
	run(&s, format, &cursor{args: args})
	return s.n
}

// Pprintf is [Vpprintf] with arguments converted by [ArgOf].
func Pprintf(put func(byte), format string, args ...any) int {
	s := sink{put: put}
	run(&s, format, &cursor{anys: args})
	return s.n
}

// run formats into s until format is exhausted. It returns the offset of
// a malformed directive, or -1.
func run(s *sink, format string, c *cursor) int {
	for i := 0; i < len(format); {
		if format[i] != '%' {
			s.putc(format[i])
			i++
			continue
		}
		var sp Spec
		n := scan(format[i:], &sp)
		if n == 0 {
			return i
		}
		i += n
		s.convert(&sp, c)
	}
	return -1
}

// convert renders one directive. Star arguments are read before the value.
func (s *sink) convert(sp *Spec, c *cursor) {
	if sp.WidthMode == ArgStar {
		w := c.star()
		if w < 0 {
			sp.Flags |= FlagLeft
			w = -w
		}
		sp.Width, sp.WidthMode = w, ArgLiteral
	}
	if sp.PrecisionMode == ArgStar {
		if p := c.star(); p < 0 {
			sp.Precision, sp.PrecisionMode = 0, ArgNone
		} else {
			sp.Precision, sp.PrecisionMode = p, ArgLiteral
		}
	}
	sp.normalize()
	left := sp.Flags&FlagLeft != 0

	switch sp.Verb {
	case '%':
		s.putc('%')

	case 'c':
		var buf [utf8.UTFMax]byte
		r := rendered{body: buf[:1]}
		if sp.Length == LenL {
			r.body = buf[:utf8.EncodeRune(buf[:], rune(c.signed(LenL)))]
		} else {
			buf[0] = byte(c.signed(LenNone))
		}
		s.emit(&r, sp.Width, left)

	case 's':
		str := c.str()
		if featPrecision && sp.PrecisionMode != ArgNone && sp.Precision < len(str) {
			str = str[:sp.Precision]
		}
		r := rendered{text: str}
		s.emit(&r, sp.Width, left)

	case 'n':
		if featWriteback {
			storeCount(c.next(), s.n, sp.Length)
		}

	case 'p':
		s.fmtInt(sp, c.next().bits, 16, 0, false)

	case 'd', 'i':
		v := c.signed(sp.Length)
		mag := uint64(v)
		var sign byte
		switch {
		case v < 0:
			mag, sign = -mag, '-'
		case sp.Flags&FlagPlus != 0:
			sign = '+'
		case sp.Flags&FlagSpace != 0:
			sign = ' '
		}
		s.fmtInt(sp, mag, 10, sign, false)

	case 'u':
		s.fmtInt(sp, c.unsigned(sp.Length), 10, 0, false)
	case 'o':
		s.fmtInt(sp, c.unsigned(sp.Length), 8, 0, false)
	case 'x', 'X':
		s.fmtInt(sp, c.unsigned(sp.Length), 16, 0, sp.Verb == 'X')
	case 'b', 'B':
		if featBinary {
			s.fmtInt(sp, c.unsigned(sp.Length), 2, 0, sp.Verb == 'B')
		}

	default:
		if featFloat {
			s.fmtFloat(sp, c.float())
		}
	}
}
