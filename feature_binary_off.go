//go:build cfmt_nobinary

package cfmt

const featBinary = false
