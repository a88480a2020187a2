//go:build !cfmt_nofloat

package cfmt

// featFloat enables the e, f, g and a conversions.
const featFloat = true
