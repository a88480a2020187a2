//go:build cfmt_nosmall

package cfmt

const featSmall = false
