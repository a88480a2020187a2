//go:build cfmt_nofloat

package cfmt

const featFloat = false
