//go:build !cfmt_smallbuf

package cfmt

// ConversionBufferSize bounds the rendered text of a single float
// conversion, excluding its sign, base prefix and padding. A conversion
// that would not fit renders as "err".
const ConversionBufferSize = 512
