//go:build cfmt_nolarge

package cfmt

const featLarge = false
