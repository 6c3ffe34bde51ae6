package valueobject

import "math"

// ClampUintToUint32 converts a uint to uint32, clamping values that would
// overflow. Tree-sitter reports byte offsets as uint.
func ClampUintToUint32(u uint) uint32 {
	if u > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(u)
}
