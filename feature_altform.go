//go:build !cfmt_noaltform

package cfmt

// featAltForm enables the # flag.
const featAltForm = true
