//go:build cfmt_noprecision

package cfmt

const featPrecision = false
