//go:build cfmt_safeempty

package cfmt

// safeEmpty leaves an empty string in the buffer when the output is
// truncated.
const safeEmpty = true
