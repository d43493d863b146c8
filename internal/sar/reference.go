package sar

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// ToConstantReference re-demodulates a phase history from the per-pulse
// range to scene center R_a[i] to the fixed reference R_s = min R_a.
// Every row is multiplied by
//
//	exp(sgn·i·4πγ/c·(f0/γ + t)·(R_a[i] − R_s)),  sgn = (−1)^upchirp
//
// so an upchirp applies the negative sign. Rows already at R_s are copied
// unchanged.
func (pr *Processor) ToConstantReference(phs *PhaseHistory, p *Platform, upchirp bool) (*PhaseHistory, error) {
	if err := p.checkPhaseHistory("to constant reference", phs); err != nil {
		return nil, err
	}

	ra := Ranges(p.positions, r3.Vec{})
	rs := floats.Min(ra)
	sgn := 1.0
	if upchirp {
		sgn = -1
	}
	scale := sgn * 4 * math.Pi * p.chirpRate / SpeedOfLight
	f0g := p.f0 / p.chirpRate

	out := newPhaseHistory(p.npulses, p.nsamples)
	forEachRow(p.npulses, pr.workers, stateless(func(i int) {
		src, dst := phs.Row(i), out.Row(i)
		dR := ra[i] - rs
		if dR == 0 {
			copy(dst, src)
			return
		}
		for j, tj := range p.fastTime {
			s, c := math.Sincos(scale * (f0g + tj) * dR)
			dst[j] = src[j] * complex(c, s)
		}
	}))
	return out, nil
}
