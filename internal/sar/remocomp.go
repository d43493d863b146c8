package sar

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Recompensate moves the motion-compensation point of a demodulated phase
// history from the origin to center, given in the current scene frame.
// Every element is multiplied by exp(−i·k_r[j]·dr[i]) with
// dr[i] = ‖pos[i]‖ − ‖pos[i] − center‖. Recompensating to the origin is
// the identity.
func (pr *Processor) Recompensate(phs *PhaseHistory, p *Platform, center r3.Vec) (*PhaseHistory, error) {
	if err := p.checkPhaseHistory("recompensate", phs); err != nil {
		return nil, err
	}
	if !finite(center.X) || !finite(center.Y) || !finite(center.Z) {
		return nil, &PreconditionError{Field: "scene center", Reason: "must be finite"}
	}

	r0 := Ranges(p.positions, r3.Vec{})
	rc := Ranges(p.positions, center)

	out := newPhaseHistory(p.npulses, p.nsamples)
	forEachRow(p.npulses, pr.workers, stateless(func(i int) {
		src, dst := phs.Row(i), out.Row(i)
		dr := r0[i] - rc[i]
		if dr == 0 {
			copy(dst, src)
			return
		}
		for j, k := range p.wavenumber {
			s, c := math.Sincos(-k * dr)
			dst[j] = src[j] * complex(c, s)
		}
	}))
	return out, nil
}
