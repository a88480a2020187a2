//go:build !cfmt_nowidth

package cfmt

// featWidth enables field widths (%5d, %*d).
const featWidth = true
