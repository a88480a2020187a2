package cfmt_test

import (
	"bytes"
	"testing"

	"github.com/bjaus/cfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// render formats into a buffer of size bytes and returns the stored text.
func render(size int, format string, args ...cfmt.Arg) (string, int) {
	buf := make([]byte, size)
	n := cfmt.Vsnprintf(buf, format, args)
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), n
}

// requireMalformed checks that the directive at the end of format stops
// the call after prefix.
func requireMalformed(t *testing.T, prefix, format string, args ...cfmt.Arg) {
	t.Helper()
	got, n := render(64, format, args...)
	assert.Equal(t, prefix, got, format)
	assert.Equal(t, len(prefix), n, format)
	require.ErrorIs(t, cfmt.Validate(format), cfmt.ErrMalformedDirective, format)
}
