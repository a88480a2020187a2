package cfmt

// sink is the bounded output of one call. n counts every byte requested,
// whether or not it was stored.
type sink struct {
	buf  []byte
	put  func(byte)
	grow bool
	n    int
}

func (s *sink) putc(c byte) {
	switch {
	case s.put != nil:
		s.put(c)
	case s.grow:
		s.buf = append(s.buf, c)
	case s.n < len(s.buf):
		s.buf[s.n] = c
	}
	s.n++
}

func (s *sink) write(b []byte) {
	for _, c := range b {
		s.putc(c)
	}
}

func (s *sink) writeString(str string) {
	for i := 0; i < len(str); i++ {
		s.putc(str[i])
	}
}

func (s *sink) pad(c byte, n int) {
	for ; n > 0; n-- {
		s.putc(c)
	}
}

// terminate writes the NUL after the last stored byte. A zero-length
// buffer is left untouched.
func (s *sink) terminate() {
	if len(s.buf) == 0 {
		return
	}
	if s.n < len(s.buf) {
		s.buf[s.n] = 0
		return
	}
	if safeEmpty {
		s.buf[0] = 0
		return
	}
	s.buf[len(s.buf)-1] = 0
}

// rendered is one converted value before field padding.
type rendered struct {
	sign    byte
	prefix  string
	zeros   int
	body    []byte
	text    string
	zeroPad bool
}

func (r *rendered) len() int {
	n := len(r.prefix) + r.zeros + len(r.body) + len(r.text)
	if r.sign != 0 {
		n++
	}
	return n
}

// emit writes r padded to width. Zero padding goes between the prefix and
// the digits; space padding goes outside the sign.
func (s *sink) emit(r *rendered, width int, left bool) {
	fill := 0
	if featWidth {
		fill = width - r.len()
	}
	if fill > 0 && !left && !r.zeroPad {
		s.pad(' ', fill)
	}
	if r.sign != 0 {
		s.putc(r.sign)
	}
	s.writeString(r.prefix)
	if fill > 0 && !left && r.zeroPad {
		s.pad('0', fill)
	}
	s.pad('0', r.zeros)
	s.write(r.body)
	s.writeString(r.text)
	if fill > 0 && left {
		s.pad(' ', fill)
	}
}
