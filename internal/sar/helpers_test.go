package sar

import (
	"testing"

	"github.com/rjboer/GoSAR/internal/dsp"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	testF0        = 10e9
	testChirpRate = 4e12
	testPulse     = 10e-6
)

// testConfig describes a straight-line pass at 10 km ground range and 5 km
// altitude, sampled over twice the pulse length.
func testConfig(npulses, nsamples int) PlatformConfig {
	t := dsp.FastTimeAxis(nsamples, 2*testPulse)
	pos := make([]r3.Vec, npulses)
	for i := range pos {
		x := -50 + 100*float64(i)/float64(max(npulses-1, 1))
		pos[i] = r3.Vec{X: x, Y: 10e3, Z: 5e3}
	}
	return PlatformConfig{
		ChirpRate:     testChirpRate,
		F0:            testF0,
		FastTime:      t,
		Positions:     pos,
		NPulses:       npulses,
		NSamples:      nsamples,
		PulseDuration: testPulse,
		DeltaR:        dsp.RangeResolution(testChirpRate, t),
		Wavenumber:    dsp.WavenumberAxis(testF0, testChirpRate, t),
	}
}

func testPlatform(tb testing.TB, npulses, nsamples int) *Platform {
	tb.Helper()
	p, err := NewPlatform(testConfig(npulses, nsamples))
	if err != nil {
		tb.Fatalf("NewPlatform: %v", err)
	}
	return p
}

// testHistory fills a phase history with a deterministic non-trivial pattern.
func testHistory(rows, cols int) *PhaseHistory {
	phs := newPhaseHistory(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			phs.Set(i, j, complex(float64((i*7+j*3)%11)-5, float64((i+2*j)%5)-2))
		}
	}
	return phs
}
