//go:build !cfmt_noprecision

package cfmt

// featPrecision enables precisions (%.3f, %.*s).
const featPrecision = true
