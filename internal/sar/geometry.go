package sar

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Ranges returns ‖a[i] − b‖ for every point in a.
func Ranges(a []r3.Vec, b r3.Vec) []float64 {
	out := make([]float64, len(a))
	for i, p := range a {
		out[i] = r3.Norm(r3.Sub(p, b))
	}
	return out
}

// PairwiseRanges returns ‖a[i] − b[i]‖. Both sequences must have the same length.
func PairwiseRanges(a, b []r3.Vec) ([]float64, error) {
	if len(a) != len(b) {
		return nil, shapeErr("pairwise ranges", "point count", len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = r3.Norm(r3.Sub(a[i], b[i]))
	}
	return out, nil
}

// Target is a point scatterer.
type Target struct {
	Position  r3.Vec
	Amplitude complex128
}

// TargetsFrom pairs positions with amplitudes, one amplitude per position.
func TargetsFrom(points []r3.Vec, amplitudes []complex128) ([]Target, error) {
	if len(points) != len(amplitudes) {
		return nil, shapeErr("pair targets", "amplitude count", len(points), len(amplitudes))
	}
	targets := make([]Target, len(points))
	for i := range points {
		targets[i] = Target{Position: points[i], Amplitude: amplitudes[i]}
	}
	return targets, nil
}

// DefaultTargets is a single unit scatterer at the scene center.
func DefaultTargets() []Target {
	return []Target{{Position: r3.Vec{}, Amplitude: 1}}
}
