//go:build cfmt_nowidth

package cfmt

const featWidth = false
