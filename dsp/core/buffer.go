package core

// EnsureLen returns buf resliced to n elements when its capacity allows,
// otherwise a new slice. Contents are not cleared.
func EnsureLen[T any](buf []T, n int) []T {
	switch {
	case n <= 0:
		return buf[:0]
	case cap(buf) < n:
		return make([]T, n)
	default:
		return buf[:n]
	}
}
