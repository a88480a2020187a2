//go:build !cfmt_nolarge

package cfmt

// featLarge enables the l, ll, j, z and t length modifiers.
const featLarge = true
