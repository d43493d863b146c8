package dsp

import "math"

// Rect is the rectangular window: 1 for |x| <= width/2 and 0 otherwise.
func Rect(x, width float64) float64 {
	if math.Abs(x) <= width/2 {
		return 1
	}
	return 0
}

// RectWindow evaluates Rect(t[i]-delay, width) for every sample.
// If dst is nil a new slice is allocated.
func RectWindow(dst, t []float64, delay, width float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(t))
	}
	for i, v := range t {
		dst[i] = Rect(v-delay, width)
	}
	return dst
}
