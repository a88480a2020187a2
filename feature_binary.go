//go:build !cfmt_nobinary

package cfmt

// featBinary enables the b and B conversions.
const featBinary = true
