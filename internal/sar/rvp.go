package sar

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
)

// RVPFilter returns the residual video phase correction
//
//	S_c(f) = exp(−iπf²/γ),  f = linspace(−n/2, n/2, n)·(2γ/c)·ΔR
//
// over the centered fast-time frequency axis.
func RVPFilter(p *Platform) []complex128 {
	n := p.nsamples
	axis := make([]float64, n)
	if n == 1 {
		axis[0] = -0.5
	} else {
		floats.Span(axis, -float64(n)/2, float64(n)/2)
	}
	floats.Scale(2*p.chirpRate/SpeedOfLight*p.deltaR, axis)

	filter := make([]complex128, n)
	for i, f := range axis {
		filter[i] = cmplx.Exp(complex(0, -math.Pi*f*f/p.chirpRate))
	}
	return filter
}

// CorrectRVP removes residual video phase by filtering every pulse in the
// fast-time frequency domain with RVPFilter.
func (pr *Processor) CorrectRVP(phs *PhaseHistory, p *Platform) (*PhaseHistory, error) {
	if err := p.checkPhaseHistory("correct rvp", phs); err != nil {
		return nil, err
	}
	return pr.applySpectralFilter(phs, RVPFilter(p)), nil
}

// ApplySpectralFilter multiplies the centered spectrum of every row of phs
// by filter and transforms back. Applying a filter and then its conjugate
// returns the input.
func (pr *Processor) ApplySpectralFilter(phs *PhaseHistory, filter []complex128) (*PhaseHistory, error) {
	if phs == nil {
		return nil, shapeErr("apply spectral filter", "phase history", "non-nil", "nil")
	}
	if _, cols := phs.Dims(); len(filter) != cols {
		return nil, shapeErr("apply spectral filter", "filter length", cols, len(filter))
	}
	return pr.applySpectralFilter(phs, filter), nil
}

// ApplySpectralFilter runs Processor.ApplySpectralFilter on a default processor.
func ApplySpectralFilter(phs *PhaseHistory, filter []complex128) (*PhaseHistory, error) {
	return defaultProcessor.ApplySpectralFilter(phs, filter)
}

func (pr *Processor) applySpectralFilter(phs *PhaseHistory, filter []complex128) *PhaseHistory {
	rows, cols := phs.Dims()
	out := newPhaseHistory(rows, cols)
	forEachRow(rows, pr.workers, func() (func(int), func()) {
		spec := pr.spectral.Get(cols)
		run := func(i int) {
			dst := out.Row(i)
			spec.Forward(dst, phs.Row(i))
			cmplxs.Mul(dst, filter)
			spec.Inverse(dst, dst)
		}
		return run, func() { pr.spectral.Put(spec) }
	})
	return out
}

// InverseRVPFilter returns the conjugate of RVPFilter, which reinstates the
// residual video phase removed by CorrectRVP.
func InverseRVPFilter(p *Platform) []complex128 {
	return conjugate(RVPFilter(p))
}

// conjugate returns the element-wise complex conjugate of s.
func conjugate(s []complex128) []complex128 {
	out := make([]complex128, len(s))
	for i, v := range s {
		out[i] = cmplx.Conj(v)
	}
	return out
}
