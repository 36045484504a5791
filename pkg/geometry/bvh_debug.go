//go:build bvhdebug

package geometry

// recordParents enables parent links for tree inspection
const recordParents = true
