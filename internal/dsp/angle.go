package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SpeedOfLight is the propagation speed, in m/s, used by every range and
// phase computation.
const SpeedOfLight = 3.0e8

// WavenumberAxis returns the two-way radar wavenumber k_r = 4π/c·(f0 + γ·t)
// for each fast-time sample.
func WavenumberAxis(f0, chirpRate float64, t []float64) []float64 {
	kr := make([]float64, len(t))
	for i, v := range t {
		kr[i] = 4 * math.Pi / SpeedOfLight * (f0 + chirpRate*v)
	}
	return kr
}

// RangeResolution returns c/(2·B) where B = γ·(max t − min t) is the
// bandwidth swept across the fast-time window. It returns 0 when the
// window spans no bandwidth.
func RangeResolution(chirpRate float64, t []float64) float64 {
	if len(t) < 2 {
		return 0
	}
	bw := math.Abs(chirpRate * (floats.Max(t) - floats.Min(t)))
	if bw == 0 {
		return 0
	}
	return SpeedOfLight / (2 * bw)
}

// FastTimeAxis returns n samples evenly spaced across [-width/2, width/2].
// A single sample sits at 0.
func FastTimeAxis(n int, width float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{0}
	}
	return floats.Span(make([]float64, n), -width/2, width/2)
}
