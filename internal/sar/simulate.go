package sar

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/rjboer/GoSAR/internal/dsp"
	"github.com/rjboer/GoSAR/internal/logging"
	"gonum.org/v1/gonum/spatial/r3"
)

// Simulate synthesizes the demodulated return of point targets. Row i is
// demodulated against the range from position i to the origin, and every
// target contributes
//
//	a·exp(i·(πγτ² − 2π(f0 + γt)τ))·rect(t − τ, T_p),  τ = 2(R_t − R_0)/c
//
// summed coherently. No targets yields an all-zero array.
func (pr *Processor) Simulate(p *Platform, targets []Target) (*PhaseHistory, error) {
	if p == nil {
		return nil, errNilPlatform
	}
	for i, tg := range targets {
		if !finite(tg.Position.X) || !finite(tg.Position.Y) || !finite(tg.Position.Z) {
			return nil, &PreconditionError{Field: "targets", Reason: fmt.Sprintf("position of target %d is not finite", i)}
		}
		if cmplx.IsNaN(tg.Amplitude) || cmplx.IsInf(tg.Amplitude) {
			return nil, &PreconditionError{Field: "targets", Reason: fmt.Sprintf("amplitude of target %d is not finite", i)}
		}
	}

	phs := newPhaseHistory(p.npulses, p.nsamples)
	if len(targets) == 0 {
		return phs, nil
	}

	gamma, f0, tp := p.chirpRate, p.f0, p.pulseDuration
	t := p.fastTime

	forEachRow(p.npulses, pr.workers, func() (func(int), func()) {
		win := make([]float64, p.nsamples)
		return func(i int) {
			pr.logger.Debug("simulating pulse", logging.Field{Key: "pulse", Value: i + 1}, logging.Field{Key: "npulses", Value: p.npulses})

			pos := p.positions[i]
			r0 := r3.Norm(pos)
			row := phs.Row(i)
			for _, tg := range targets {
				dr := r3.Norm(r3.Sub(pos, tg.Position)) - r0
				tau := 2 * dr / SpeedOfLight
				dsp.RectWindow(win, t, tau, tp)
				quad := math.Pi * gamma * tau * tau
				for j, tj := range t {
					if win[j] == 0 {
						continue
					}
					phase := quad - 2*math.Pi*(f0+gamma*tj)*tau
					s, c := math.Sincos(phase)
					row[j] += tg.Amplitude * complex(c*win[j], s*win[j])
				}
			}

			if pr.progress != nil {
				pr.progress(i, p.npulses)
			}
		}, nil
	})

	return phs, nil
}
