// Package mathutil provides mathematical helpers shared by the spline
// filtering kernels.
package mathutil

// MirrorIndex folds an arbitrary index into [0, n) by whole-sample
// symmetric reflection without edge duplication:
//
//	index:  -2 -1 | 0 1 2 ... n-2 n-1 | n   n+1
//	sample:  2  1 | 0 1 2 ... n-2 n-1 | n-2 n-3
//
// Equivalently the signal is extended evenly with period 2n-2. A
// single-sample signal folds every index to zero.
func MirrorIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2*n - 2
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
