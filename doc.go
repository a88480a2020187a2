// Package cfmt is a printf-style formatting engine for freestanding
// targets. It renders into a caller-supplied buffer or a per-byte callback,
// never allocates when given an [Arg] list, and rounds floats exactly
// without arbitrary-precision arithmetic.
//
// # Entry Points
//
// [Vsnprintf] and [Snprintf] follow the C snprintf contract: at most
// len(buf)-1 bytes are stored, a NUL follows them, and the return value is
// the length the output would have had with unlimited space:
//
//	var buf [16]byte
//	n := cfmt.Snprintf(buf[:], "%5d", 42) // "   42", 5
//
// [Vpprintf] and [Pprintf] hand each byte to a callback instead, for sinks
// such as a UART that have no addressable buffer:
//
//	cfmt.Pprintf(uart.Put, "t=%.3f\n", t)
//
// [Sprintf], [Appendf] and [Fprintf] are conveniences for hosted code.
//
// # Arguments
//
// The V variants take a typed [Arg] list built with [Int], [Uint], [Float],
// [Str], [Ptr], [Char], [Count] and [CountTo]. The variadic variants convert
// each value with [ArgOf]. Like C varargs, a directive reads its argument at
// the width its length modifier implies: %d reads 32 bits, %hhd 8 bits,
// %lld 64 bits. A mismatched argument is reinterpreted, not rejected, and a
// missing argument reads as zero.
//
// # Conversions
//
//   - d i u o x X b B: integers, with the h hh l ll j z t modifiers
//   - c s p: character (%lc encodes a rune as UTF-8), string, pointer
//   - f F e E g G: decimal floats, correctly rounded half to even
//   - a A: hexadecimal floats; without a precision the output round-trips
//   - n: stores the output length so far into a [Count] target
//   - %: a literal percent sign
//
// A float rendering longer than [ConversionBufferSize] bytes prints "err".
//
// # Build Tags
//
// Features are compiled in by default. Each tag removes one:
//
//   - cfmt_nowidth: field widths and the - and 0 flags
//   - cfmt_noprecision: precisions
//   - cfmt_nofloat: float conversions and the L modifier
//   - cfmt_nosmall: h and hh
//   - cfmt_nolarge: l, ll, j, z and t
//   - cfmt_nobinary: b and B
//   - cfmt_nowriteback: n
//   - cfmt_noaltform: the # flag
//
// Three more change behaviour: cfmt_safeempty leaves an empty string in a
// truncated buffer, cfmt_smallbuf shrinks [ConversionBufferSize] to 64, and
// cfmt_limb64 computes float digits with 64-bit limbs. [Features] reports
// the result.
//
// # Errors
//
// A directive that is unterminated, unknown, or compiled out ends the call.
// Everything before it is kept and counted. [Fprintf], [Validate] and
// [Directives] report it as a [*DirectiveError] wrapping
// [ErrMalformedDirective].
package cfmt
