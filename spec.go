package cfmt

// Flag is a directive flag character.
type Flag uint8

const (
	FlagLeft  Flag = 1 << iota // '-'
	FlagPlus                   // '+'
	FlagSpace                  // ' '
	FlagAlt                    // '#'
	FlagZero                   // '0'
)

// ArgMode says where a width or precision comes from.
type ArgMode uint8

const (
	ArgNone    ArgMode = iota // absent
	ArgLiteral                // digits in the directive
	ArgStar                   // '*', taken from the argument list
)

// Length is a length modifier.
type Length uint8

const (
	LenNone Length = iota
	LenHH
	LenH
	LenL
	LenLL
	LenJ
	LenZ
	LenT
	LenBigL
)

var lengthNames = [...]string{"", "hh", "h", "l", "ll", "j", "z", "t", "L"}

// String returns the modifier as written in a directive.
func (l Length) String() string {
	if int(l) < len(lengthNames) {
		return lengthNames[l]
	}
	return "?"
}

// Spec is one parsed directive.
type Spec struct {
	Flags         Flag
	Width         int
	WidthMode     ArgMode
	Precision     int
	PrecisionMode ArgMode
	Length        Length
	Verb          byte
}

// String returns the directive in canonical form, flags in the order
// "-+ #0".
func (sp Spec) String() string {
	b := make([]byte, 0, 16)
	b = append(b, '%')
	for _, f := range [...]struct {
		flag Flag
		c    byte
	}{{FlagLeft, '-'}, {FlagPlus, '+'}, {FlagSpace, ' '}, {FlagAlt, '#'}, {FlagZero, '0'}} {
		if sp.Flags&f.flag != 0 {
			b = append(b, f.c)
		}
	}
	b = appendArg(b, sp.Width, sp.WidthMode)
	if sp.PrecisionMode != ArgNone {
		b = append(b, '.')
		b = appendArg(b, sp.Precision, sp.PrecisionMode)
	}
	b = append(b, sp.Length.String()...)
	return string(append(b, sp.Verb))
}

// Args returns the kinds of the arguments the directive consumes, star
// width and precision first.
func (sp Spec) Args() []Kind {
	var ks []Kind
	if sp.WidthMode == ArgStar {
		ks = append(ks, KindInt)
	}
	if sp.PrecisionMode == ArgStar {
		ks = append(ks, KindInt)
	}
	switch {
	case sp.Verb == 'd' || sp.Verb == 'i' || sp.Verb == 'c':
		ks = append(ks, KindInt)
	case isIntVerb(sp.Verb):
		ks = append(ks, KindUint)
	case isFloatVerb(sp.Verb):
		ks = append(ks, KindFloat)
	case sp.Verb == 's':
		ks = append(ks, KindString)
	case sp.Verb == 'p':
		ks = append(ks, KindPointer)
	case sp.Verb == 'n':
		ks = append(ks, KindCount)
	}
	return ks
}

func appendArg(b []byte, v int, m ArgMode) []byte {
	switch m {
	case ArgStar:
		return append(b, '*')
	case ArgLiteral:
		var buf [64]byte
		return append(b, utoa(&buf, uint64(v), 10, false)...)
	}
	return b
}

// ParseSpec parses the directive at the start of format, which must begin
// with '%'. It returns the spec and the number of bytes consumed.
func ParseSpec(format string) (Spec, int, error) {
	var sp Spec
	if len(format) == 0 || format[0] != '%' {
		return sp, 0, ErrMalformedDirective
	}
	n := scan(format, &sp)
	if n == 0 {
		return Spec{}, 0, ErrMalformedDirective
	}
	return sp, n, nil
}

const maxArg = 1<<31 - 1

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanNum reads decimal digits from f at i, saturating at maxArg.
func scanNum(f string, i int) (int, int) {
	v := 0
	for ; i < len(f) && isDigit(f[i]); i++ {
		v = v*10 + int(f[i]-'0')
		if v > maxArg {
			v = maxArg
		}
	}
	return v, i
}

// scan parses one directive at f[0] == '%' into sp and returns the bytes
// consumed, or 0 when the directive is unterminated or uses syntax that is
// unknown or compiled out.
func scan(f string, sp *Spec) int {
	i := 1
flags:
	for ; i < len(f); i++ {
		switch f[i] {
		case '-':
			if !featWidth {
				return 0
			}
			sp.Flags |= FlagLeft
		case '0':
			if !featWidth {
				return 0
			}
			sp.Flags |= FlagZero
		case '+':
			sp.Flags |= FlagPlus
		case ' ':
			sp.Flags |= FlagSpace
		case '#':
			if !featAltForm {
				return 0
			}
			sp.Flags |= FlagAlt
		default:
			break flags
		}
	}

	if featWidth && i < len(f) {
		if f[i] == '*' {
			sp.WidthMode = ArgStar
			i++
		} else if isDigit(f[i]) {
			sp.WidthMode = ArgLiteral
			sp.Width, i = scanNum(f, i)
		}
	}

	if featPrecision && i < len(f) && f[i] == '.' {
		i++
		sp.PrecisionMode = ArgLiteral
		if i < len(f) && f[i] == '*' {
			sp.PrecisionMode = ArgStar
			i++
		} else {
			sp.Precision, i = scanNum(f, i)
		}
	}

	if i < len(f) {
		switch c := f[i]; {
		case c == 'h' && featSmall:
			sp.Length = LenH
			if i++; i < len(f) && f[i] == 'h' {
				sp.Length = LenHH
				i++
			}
		case c == 'l' && featLarge:
			sp.Length = LenL
			if i++; i < len(f) && f[i] == 'l' {
				sp.Length = LenLL
				i++
			}
		case c == 'j' && featLarge:
			sp.Length = LenJ
			i++
		case c == 'z' && featLarge:
			sp.Length = LenZ
			i++
		case c == 't' && featLarge:
			sp.Length = LenT
			i++
		case c == 'L' && featFloat:
			sp.Length = LenBigL
			i++
		}
	}

	if i >= len(f) {
		return 0
	}
	sp.Verb = f[i]
	switch sp.Verb {
	case '%', 'c', 's', 'i', 'd', 'u', 'o', 'x', 'X', 'p':
	case 'b', 'B':
		if !featBinary {
			return 0
		}
	case 'n':
		if !featWriteback {
			return 0
		}
	case 'e', 'E', 'f', 'F', 'g', 'G', 'a', 'A':
		if !featFloat {
			return 0
		}
	default:
		return 0
	}
	sp.normalize()
	return i + 1
}

func isFloatVerb(v byte) bool {
	switch v {
	case 'e', 'E', 'f', 'F', 'g', 'G', 'a', 'A':
		return true
	}
	return false
}

func isIntVerb(v byte) bool {
	switch v {
	case 'd', 'i', 'u', 'o', 'x', 'X', 'b', 'B':
		return true
	}
	return false
}

// normalize drops flags and precisions that have no effect on sp.Verb.
// Star values are left alone until they are resolved.
func (sp *Spec) normalize() {
	if sp.Flags&FlagLeft != 0 {
		sp.Flags &^= FlagZero
	}
	if sp.Flags&FlagPlus != 0 {
		sp.Flags &^= FlagSpace
	}
	signed := sp.Verb == 'd' || sp.Verb == 'i' || isFloatVerb(sp.Verb)
	if !signed {
		sp.Flags &^= FlagPlus | FlagSpace
	}
	switch sp.Verb {
	case 'o', 'x', 'X', 'b', 'B':
	default:
		if !isFloatVerb(sp.Verb) {
			sp.Flags &^= FlagAlt
		}
	}
	switch sp.Verb {
	case '%', 'c', 'n', 'p':
		if sp.PrecisionMode == ArgLiteral {
			sp.PrecisionMode, sp.Precision = ArgNone, 0
		}
		sp.Flags &^= FlagZero
	case 's':
		sp.Flags &^= FlagZero
	}
	if isIntVerb(sp.Verb) && sp.PrecisionMode == ArgLiteral {
		sp.Flags &^= FlagZero
	}
}
