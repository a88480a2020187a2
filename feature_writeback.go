//go:build !cfmt_nowriteback

package cfmt

// featWriteback enables the n conversion.
const featWriteback = true
