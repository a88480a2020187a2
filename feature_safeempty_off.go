//go:build !cfmt_safeempty

package cfmt

const safeEmpty = false
