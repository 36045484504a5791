//go:build !bvhdebug

package geometry

const recordParents = false
