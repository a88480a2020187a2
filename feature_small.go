//go:build !cfmt_nosmall

package cfmt

// featSmall enables the h and hh length modifiers.
const featSmall = true
