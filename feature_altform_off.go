//go:build cfmt_noaltform

package cfmt

const featAltForm = false
