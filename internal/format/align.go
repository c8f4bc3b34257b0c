package format

// Align returns n aligned up to the next WordSize boundary.
//
// Example:
//
//	Align(1)  = 8
//	Align(8)  = 8
//	Align(9)  = 16
func Align(n int64) int64 {
	return (n + WordMask) &^ WordMask
}
