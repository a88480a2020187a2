//go:build cfmt_nowriteback

package cfmt

const featWriteback = false
