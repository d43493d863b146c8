package sar

import (
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// PhaseHistory is a dense row-major complex array indexed by (pulse, sample).
type PhaseHistory struct {
	rows, cols int
	data       []complex128
}

// NewPhaseHistory allocates a zeroed phase history. Dimensions must be positive.
func NewPhaseHistory(npulses, nsamples int) (*PhaseHistory, error) {
	if npulses <= 0 || nsamples <= 0 {
		return nil, &PreconditionError{Field: "phase history dims", Reason: "must be positive, got " + dimsString(npulses, nsamples)}
	}
	return newPhaseHistory(npulses, nsamples), nil
}

// PhaseHistoryFrom wraps data, which must hold exactly npulses*nsamples values.
// The slice is used directly, not copied.
func PhaseHistoryFrom(npulses, nsamples int, data []complex128) (*PhaseHistory, error) {
	if npulses <= 0 || nsamples <= 0 {
		return nil, &PreconditionError{Field: "phase history dims", Reason: "must be positive, got " + dimsString(npulses, nsamples)}
	}
	if len(data) != npulses*nsamples {
		return nil, shapeErr("wrap phase history", "data length", npulses*nsamples, len(data))
	}
	return &PhaseHistory{rows: npulses, cols: nsamples, data: data}, nil
}

func newPhaseHistory(rows, cols int) *PhaseHistory {
	return &PhaseHistory{rows: rows, cols: cols, data: make([]complex128, rows*cols)}
}

// Dims returns (npulses, nsamples).
func (p *PhaseHistory) Dims() (int, int) { return p.rows, p.cols }

func (p *PhaseHistory) At(pulse, sample int) complex128 {
	return p.data[p.index(pulse, sample)]
}

func (p *PhaseHistory) Set(pulse, sample int, v complex128) {
	p.data[p.index(pulse, sample)] = v
}

// Row returns the backing slice for one pulse. Writes are visible in p.
func (p *PhaseHistory) Row(pulse int) []complex128 {
	if pulse < 0 || pulse >= p.rows {
		panic("sar: pulse index out of range")
	}
	return p.data[pulse*p.cols : (pulse+1)*p.cols : (pulse+1)*p.cols]
}

// RawData returns the row-major backing slice.
func (p *PhaseHistory) RawData() []complex128 { return p.data }

// Clone returns a deep copy.
func (p *PhaseHistory) Clone() *PhaseHistory {
	return &PhaseHistory{rows: p.rows, cols: p.cols, data: append([]complex128(nil), p.data...)}
}

// Equal reports whether both arrays have the same shape and identical values.
func (p *PhaseHistory) Equal(q *PhaseHistory) bool {
	if p.rows != q.rows || p.cols != q.cols {
		return false
	}
	return cmplxs.Equal(p.data, q.data)
}

// EqualApprox reports whether both arrays have the same shape and every
// element pair is within tol (absolute or relative).
func (p *PhaseHistory) EqualApprox(q *PhaseHistory, tol float64) bool {
	if p.rows != q.rows || p.cols != q.cols {
		return false
	}
	return cmplxs.EqualApprox(p.data, q.data, tol)
}

// Energy returns the sum of squared magnitudes.
func (p *PhaseHistory) Energy() float64 {
	var e float64
	for _, v := range p.data {
		e += real(v)*real(v) + imag(v)*imag(v)
	}
	return e
}

// Peak returns the largest magnitude and its (pulse, sample) location.
func (p *PhaseHistory) Peak() (mag float64, pulse, sample int) {
	best := -1
	for i, v := range p.data {
		if m := cmplx.Abs(v); m > mag || best < 0 {
			mag = m
			best = i
		}
	}
	return mag, best / p.cols, best % p.cols
}

func (p *PhaseHistory) index(pulse, sample int) int {
	if pulse < 0 || pulse >= p.rows || sample < 0 || sample >= p.cols {
		panic("sar: phase history index out of range")
	}
	return pulse*p.cols + sample
}
