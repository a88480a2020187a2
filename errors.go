package cfmt

import "errors"

// ErrMalformedDirective reports a directive that is unterminated, uses an
// unknown conversion, or uses syntax compiled out by a build tag.
var ErrMalformedDirective = errors.New("malformed directive")

// DirectiveError locates a malformed directive in its format string.
type DirectiveError struct {
	Offset    int
	Directive string
}

func (e *DirectiveError) Error() string {
	var buf [64]byte
	return ErrMalformedDirective.Error() + " \"" + e.Directive + "\" at offset " +
		string(utoa(&buf, uint64(e.Offset), 10, false))
}

func (e *DirectiveError) Unwrap() error { return ErrMalformedDirective }

func directiveError(format string, off int) error {
	end := off + 1
	for end < len(format) && end-off < 16 && format[end] != '%' {
		end++
	}
	return &DirectiveError{Offset: off, Directive: format[off:end]}
}
