//go:build !cfmt_nowidth && !cfmt_noprecision && !cfmt_nofloat && !cfmt_nosmall && !cfmt_nolarge && !cfmt_nobinary && !cfmt_nowriteback && !cfmt_noaltform && !cfmt_smallbuf && !cfmt_safeempty

package cfmt_test

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/bjaus/cfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errWrite = errors.New("write failed")

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errWrite }

type recorder struct {
	n    int64
	size int
}

func (r *recorder) SetCount(n int64, size int) { r.n, r.size = n, size }

type named struct{ s string }

func (n named) String() string { return n.s }

type level int16

// snprintf formats into a buffer of size bytes and returns the stored text.
func snprintf(size int, format string, args ...any) (string, int) {
	buf := make([]byte, size)
	n := cfmt.Snprintf(buf, format, args...)
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), n
}

// --- Scenarios ---

func TestSnprintfScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		size   int
		format string
		args   []any
		want   string
		ret    int
	}{
		{"width", 16, "%5d", []any{42}, "   42", 5},
		{"precision", 8, "%.2f", []any{3.14159}, "3.14", 4},
		{"truncated", 4, "%d", []any{12345}, "123", 5},
		{"g fixed", 32, "%g", []any{100000.0}, "100000", 6},
		{"g exponent", 32, "%g", []any{1000000.0}, "1e+06", 5},
		{"alt octal", 32, "%#o", []any{8}, "010", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, n := snprintf(tt.size, tt.format, tt.args...)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ret, n)
		})
	}
}

func TestSnprintfWritebackScenario(t *testing.T) {
	t.Parallel()
	var n int
	got, ret := snprintf(32, "%s%n", "hi", &n)
	assert.Equal(t, "hi", got)
	assert.Equal(t, 2, ret)
	assert.Equal(t, 2, n)
}

// --- Buffer contract ---

func TestSnprintfZeroCapacity(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, cfmt.Snprintf(nil, "%d", 123))

	buf := []byte{'x', 'y'}
	assert.Equal(t, 5, cfmt.Snprintf(buf[:0], "hello"))
	assert.Equal(t, []byte{'x', 'y'}, buf)
}

func TestSnprintfExactFit(t *testing.T) {
	t.Parallel()
	got, n := snprintf(6, "hello")
	assert.Equal(t, "hello", got)
	assert.Equal(t, 5, n)

	got, n = snprintf(5, "hello")
	assert.Equal(t, "hell", got)
	assert.Equal(t, 5, n)
}

func TestSnprintfNeverWritesPastCapacity(t *testing.T) {
	t.Parallel()
	cases := []struct {
		format string
		args   []any
	}{
		{"plain text", nil},
		{"%5d|%-5d|%05d", []any{1, 2, 3}},
		{"%s and %.3s", []any{"string", "truncated"}},
		{"%#x %#o %b", []any{255, 8, 5}},
		{"%e %f %g %a", []any{math.Pi, math.E, 1e-7, 1.5}},
		{"%.40f", []any{0.1}},
		{"%30.20e", []any{-1e300}},
		{"%c%c%lc", []any{'a', 'b', 'é'}},
		{"%p %%", []any{uintptr(0xdead)}},
	}
	for _, tc := range cases {
		full := cfmt.Sprintf(tc.format, tc.args...)
		for size := 0; size <= len(full)+2; size++ {
			buf := bytes.Repeat([]byte{0xAA}, size+8)
			n := cfmt.Snprintf(buf[:size], tc.format, tc.args...)
			require.Equal(t, len(full), n, "%q size %d", tc.format, size)
			for i := size; i < len(buf); i++ {
				require.Equal(t, byte(0xAA), buf[i], "%q size %d wrote offset %d", tc.format, size, i)
			}
			if size == 0 {
				continue
			}
			stored := min(len(full), size-1)
			require.Equal(t, full[:stored], string(buf[:stored]))
			require.Equal(t, byte(0), buf[stored])
		}
	}
}

func TestSnprintfIsPure(t *testing.T) {
	t.Parallel()
	format := "%-8s|%+.3e|%#x|%g|%a"
	args := []any{"abc", -12.5, 48879, 0.1, 0.1}
	first, n1 := snprintf(128, format, args...)
	second, n2 := snprintf(128, format, args...)
	assert.Equal(t, first, second)
	assert.Equal(t, n1, n2)
}

// --- Malformed directives ---

func TestSnprintfMalformedStopsOutput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		format string
		want   string
	}{
		{"ab%yc%d", "ab"},
		{"abc%", "abc"},
		{"%5", ""},
		{"%.-34u", ""},
		{"x%lq", "x"},
		{"%d then %", "7 then "},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			got, n := snprintf(32, tt.format, 7, 8)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), n)
		})
	}
}

func TestWritebackSkippedAfterMalformed(t *testing.T) {
	t.Parallel()
	n := -1
	snprintf(32, "ab%y%n", &n)
	assert.Equal(t, -1, n)
}

// --- Writeback ---

func TestWritebackNarrowing(t *testing.T) {
	t.Parallel()
	var i8 int8
	var i16 int16
	var i64 int64
	_, n := snprintf(512, "%200d%hhn%hn%lln", 1, &i8, &i16, &i64)
	assert.Equal(t, 200, n)
	assert.Equal(t, int8(-56), i8)
	assert.Equal(t, int16(200), i16)
	assert.Equal(t, int64(200), i64)
}

func TestWritebackCountsTruncatedOutput(t *testing.T) {
	t.Parallel()
	var n int32
	got, ret := snprintf(4, "hello%n world", &n)
	assert.Equal(t, "hel", got)
	assert.Equal(t, 11, ret)
	assert.Equal(t, int32(5), n)
}

func TestWritebackCounter(t *testing.T) {
	t.Parallel()
	var rec recorder
	var buf [32]byte
	cfmt.Vsnprintf(buf[:], "abc%hn", []cfmt.Arg{cfmt.CountTo(&rec)})
	assert.Equal(t, int64(3), rec.n)
	assert.Equal(t, 2, rec.size)

	cfmt.Vsnprintf(buf[:], "abcd%ln", []cfmt.Arg{cfmt.CountTo(&rec)})
	assert.Equal(t, int64(4), rec.n)
	assert.Equal(t, 8, rec.size)
}

func TestWritebackIgnoresNonTargets(t *testing.T) {
	t.Parallel()
	got, n := snprintf(32, "a%nb", 5)
	assert.Equal(t, "ab", got)
	assert.Equal(t, 2, n)
}

// --- Arguments ---

func TestArgOf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		format string
		arg    any
		want   string
	}{
		{"named int", "%d", level(-3), "-3"},
		{"stringer", "%s", named{"named"}, "named"},
		{"error", "%s", errWrite, "write failed"},
		{"bytes", "%s", []byte("raw"), "raw"},
		{"bool", "%d", true, "1"},
		{"float32", "%.1f", float32(1.5), "1.5"},
		{"uint8", "%u", uint8(200), "200"},
		{"uintptr", "%p", uintptr(0xbeef), "0xbeef"},
		{"arg", "%lld", cfmt.Int(-1 << 40), "-1099511627776"},
		{"nil", "%d", nil, "0"},
		{"byte rune", "%c", 'é', "\xe9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cfmt.Sprintf(tt.format, tt.arg))
		})
	}
}

func TestArgOfPointer(t *testing.T) {
	t.Parallel()
	v := struct{ a, b int }{}
	got := cfmt.Sprintf("%p", &v)
	assert.True(t, strings.HasPrefix(got, "0x"))
	assert.NotEqual(t, "0x0", got)

	var n int
	assert.NotEqual(t, "0x0", cfmt.Sprintf("%p", &n))
	assert.Equal(t, cfmt.KindCount, cfmt.ArgOf(&n).Kind())
}

func TestMissingArgumentsReadAsZero(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0 0 (null) 0.0 0x0", cfmt.Sprintf("%d %x %s %.1f %p"))
}

// --- Floats against strconv ---

func finite(r *rand.Rand) float64 {
	for {
		v := math.Float64frombits(r.Uint64())
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
}

func TestFloatMatchesStrconv(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))
	values := []float64{
		0, 1, 0.1, 0.5, 2.5, 1e23, 5e-324, math.MaxFloat64, math.SmallestNonzeroFloat64,
		123456.789, 9.999999999, 0.000123456789, 1 << 53,
	}
	for range 300 {
		values = append(values, finite(r))
		values = append(values, r.Float64()*math.Pow10(r.IntN(40)-20))
	}
	for _, v := range values {
		for prec := range 18 {
			want := strconv.FormatFloat(v, 'e', prec, 64)
			require.Equal(t, want, cfmt.Sprintf("%.*e", prec, v), "%%.%de of %v", prec, v)

			if math.Abs(v) < 1e120 {
				want = strconv.FormatFloat(v, 'f', prec, 64)
				require.Equal(t, want, cfmt.Sprintf("%.*f", prec, v), "%%.%df of %v", prec, v)
			}
		}
	}
}

func TestFloatLargestValue(t *testing.T) {
	t.Parallel()
	want := strconv.FormatFloat(math.MaxFloat64, 'f', 6, 64)
	assert.Equal(t, want, cfmt.Sprintf("%f", math.MaxFloat64))
	assert.Len(t, want, 316)
}

func TestFloatSmallestValue(t *testing.T) {
	t.Parallel()
	want := strconv.FormatFloat(5e-324, 'f', 400, 64)
	assert.Equal(t, want, cfmt.Sprintf("%.400f", 5e-324))
}

func TestFloatNegativeZero(t *testing.T) {
	t.Parallel()
	nz := math.Copysign(0, -1)
	assert.Equal(t, "-0.000000", cfmt.Sprintf("%f", nz))
	assert.Equal(t, "-0", cfmt.Sprintf("%g", nz))
	assert.Equal(t, "-0x0.0000000000000p+0", cfmt.Sprintf("%a", nz))
	assert.Equal(t, "nan", cfmt.Sprintf("%f", math.Copysign(math.NaN(), -1)))
}

func TestHexFloatRoundTrips(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(3, 4))
	for range 5000 {
		v := finite(r)
		s := cfmt.Sprintf("%a", v)
		got, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err, s)
		require.Equal(t, math.Float64bits(v), math.Float64bits(got), s)
	}
}

func TestFloatConversionBufferOverflow(t *testing.T) {
	t.Parallel()
	size := cfmt.ConversionBufferSize
	assert.Equal(t, "err", cfmt.Sprintf("%.*a", size-6, 0x1.2345p-100))
	assert.Equal(t, "err", cfmt.Sprintf("%.*a", size+100, 0x1.2345p-100))
	assert.Len(t, cfmt.Sprintf("%.*a", size-7, 0x1.2345p-100), size+2)
	assert.Equal(t, "err", cfmt.Sprintf("%.*a", size-4, 0x1.2345p0))
	assert.Equal(t, "err", cfmt.Sprintf("%.*e", size-6, 1.2345e-100))
	assert.Equal(t, "err", cfmt.Sprintf("%.*f", size, 1.0))
	assert.Equal(t, "  err", cfmt.Sprintf("%05.*f", size, -1.0))
}

// --- Convenience layer ---

func TestAppendf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "x=5", string(cfmt.Appendf([]byte("x="), "%d", 5)))
	assert.Equal(t, "ab", string(cfmt.Appendf(nil, "ab%y")))
}

func TestSprintfLargeOutput(t *testing.T) {
	t.Parallel()
	got := cfmt.Sprintf("%70000d", 1)
	assert.Len(t, got, 70000)
	assert.Equal(t, "1", got[len(got)-1:])
	assert.Equal(t, "a-1", cfmt.Sprintf("%s-%d", "a", 1))
}

func TestFprintf(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n, err := cfmt.Fprintf(&buf, "%s=%03d\n", "id", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "id=007\n", buf.String())
}

func TestFprintfMalformed(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	n, err := cfmt.Fprintf(&buf, "ab%yc")
	assert.Equal(t, 2, n)
	assert.Equal(t, "ab", buf.String())
	require.ErrorIs(t, err, cfmt.ErrMalformedDirective)

	var de *cfmt.DirectiveError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Offset)
	assert.Equal(t, "%yc", de.Directive)
	assert.Contains(t, err.Error(), "offset 2")
}

func TestFprintfWriteError(t *testing.T) {
	t.Parallel()
	_, err := cfmt.Fprintf(errWriter{}, "%d", 1)
	assert.ErrorIs(t, err, errWrite)
}

func TestVfprintf(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	_, err := cfmt.Vfprintf(&buf, "%s:%u", []cfmt.Arg{cfmt.Str("k"), cfmt.Uint(9)})
	require.NoError(t, err)
	assert.Equal(t, "k:9", buf.String())
}

func TestPprintf(t *testing.T) {
	t.Parallel()
	var out []byte
	n := cfmt.Pprintf(func(c byte) { out = append(out, c) }, "%-4s|%x", "ab", 255)
	assert.Equal(t, "ab  |ff", string(out))
	assert.Equal(t, 7, n)
}

// --- Directives ---

func TestDirectives(t *testing.T) {
	t.Parallel()
	var got []cfmt.Directive
	for d, err := range cfmt.Directives("a%5.2fb%%c%-*s") {
		require.NoError(t, err)
		got = append(got, d)
	}
	require.Len(t, got, 3)

	assert.Equal(t, 1, got[0].Offset)
	assert.Equal(t, "%5.2f", got[0].Text)
	assert.Equal(t, cfmt.Spec{Width: 5, WidthMode: cfmt.ArgLiteral, Precision: 2, PrecisionMode: cfmt.ArgLiteral, Verb: 'f'}, got[0].Spec)

	assert.Equal(t, 7, got[1].Offset)
	assert.Equal(t, byte('%'), got[1].Spec.Verb)

	assert.Equal(t, 10, got[2].Offset)
	assert.Equal(t, cfmt.Spec{Flags: cfmt.FlagLeft, WidthMode: cfmt.ArgStar, Verb: 's'}, got[2].Spec)
}

func TestDirectivesStopsAtMalformed(t *testing.T) {
	t.Parallel()
	var texts []string
	var last error
	for d, err := range cfmt.Directives("%d %q %s") {
		texts = append(texts, d.Text)
		last = err
	}
	assert.Equal(t, []string{"%d", "%q "}, texts)
	assert.ErrorIs(t, last, cfmt.ErrMalformedDirective)
}

func TestDirectivesEarlyBreak(t *testing.T) {
	t.Parallel()
	count := 0
	for range cfmt.Directives("%d%d%d") {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, cfmt.Validate("plain %d %5.2f %% %-*s"))
	assert.ErrorIs(t, cfmt.Validate("%.-34u"), cfmt.ErrMalformedDirective)
	assert.ErrorIs(t, cfmt.Validate("tail %"), cfmt.ErrMalformedDirective)
}

func TestFeaturesDefault(t *testing.T) {
	t.Parallel()
	f := cfmt.Features()
	assert.True(t, f.FieldWidth)
	assert.True(t, f.Precision)
	assert.True(t, f.Float)
	assert.True(t, f.SmallModifiers)
	assert.True(t, f.LargeModifiers)
	assert.True(t, f.Binary)
	assert.True(t, f.Writeback)
	assert.True(t, f.AltForm)
	assert.Equal(t, 512, f.ConversionBufferSize)
}
