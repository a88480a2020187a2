package cfmt

import (
	"io"
	"iter"
	"sync"
)

const maxPooled = 64 << 10

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 256)
		return &b
	},
}

func appendf(dst []byte, format string, c *cursor) ([]byte, int) {
	s := sink{buf: dst, grow: true}
	bad := run(&s, format, c)
	return s.buf, bad
}

// Appendf appends the formatted output to dst. Output stops at a malformed
// directive.
func Appendf(dst []byte, format string, args ...any) []byte {
	b, _ := appendf(dst, format, &cursor{anys: args})
	return b
}

// Sprintf returns the formatted output. Output stops at a malformed
// directive.
func Sprintf(format string, args ...any) string {
	bp := bufPool.Get().(*[]byte)
	b, _ := appendf((*bp)[:0], format, &cursor{anys: args})
	out := string(b)
	release(bp, b)
	return out
}

// Fprintf writes the formatted output to w. The output up to a malformed
// directive is written before the [*DirectiveError] is returned.
func Fprintf(w io.Writer, format string, args ...any) (int, error) {
	return fprintf(w, format, &cursor{anys: args})
}

// Vfprintf is [Fprintf] over an [Arg] list.
func Vfprintf(w io.Writer, format string, args []Arg) (int, error) {
	return fprintf(w, format, &cursor{args: args})
}

func fprintf(w io.Writer, format string, c *cursor) (int, error) {
	bp := bufPool.Get().(*[]byte)
	b, bad := appendf((*bp)[:0], format, c)
	n, err := w.Write(b)
	release(bp, b)
	if err != nil {
		return n, err
	}
	if bad >= 0 {
		return n, directiveError(format, bad)
	}
	return n, nil
}

func release(bp *[]byte, b []byte) {
	if cap(b) > maxPooled {
		return
	}
	*bp = b[:0]
	bufPool.Put(bp)
}

// Directive is one directive of a format string.
type Directive struct {
	Offset int
	Text   string
	Spec   Spec
}

// Directives yields the directives of format in order. A malformed
// directive is yielded with a [*DirectiveError] and ends the sequence.
func Directives(format string) iter.Seq2[Directive, error] {
	return func(yield func(Directive, error) bool) {
		for i := 0; i < len(format); i++ {
			if format[i] != '%' {
				continue
			}
			var sp Spec
			n := scan(format[i:], &sp)
			if n == 0 {
				err := directiveError(format, i)
				yield(Directive{Offset: i, Text: err.(*DirectiveError).Directive}, err)
				return
			}
			if !yield(Directive{Offset: i, Text: format[i : i+n], Spec: sp}, nil) {
				return
			}
			i += n - 1
		}
	}
}

// Validate reports the first malformed directive in format.
func Validate(format string) error {
	for _, err := range Directives(format) {
		if err != nil {
			return err
		}
	}
	return nil
}
