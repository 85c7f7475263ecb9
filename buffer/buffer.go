package buffer

import (
	vecmath "github.com/cwbudde/algo-vecmath"
)

// Zero sets every sample in s to 0.
func Zero(s []float64) {
	clear(s)
}

// Mix adds src onto dst sample by sample over their common length and
// returns the number of samples mixed.
func Mix(dst, src []float64) int {
	n := min(len(dst), len(src))
	if n == 0 {
		return 0
	}
	vecmath.AddBlockInPlace(dst[:n], src[:n])
	return n
}

// Fit returns s resliced to n samples, growing the backing array only when
// its capacity is too small.
func Fit(s []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	if cap(s) >= n {
		return s[:n]
	}
	return make([]float64, n)
}
