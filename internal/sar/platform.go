package sar

import (
	"fmt"
	"math"

	"github.com/rjboer/GoSAR/internal/dsp"
	"gonum.org/v1/gonum/spatial/r3"
)

// SpeedOfLight is dsp.SpeedOfLight, re-exported for callers of this package.
const SpeedOfLight = dsp.SpeedOfLight

// PlatformConfig is the raw description of a collection geometry as handed
// over by whatever built it. It is validated once by NewPlatform.
type PlatformConfig struct {
	ChirpRate     float64   // γ, Hz/s
	F0            float64   // carrier frequency, Hz
	FastTime      []float64 // per-sample time relative to pulse center, s
	Positions     []r3.Vec  // per-pulse antenna phase center, m
	NPulses       int
	NSamples      int
	PulseDuration float64   // T_p, s
	DeltaR        float64   // range sample spacing, m
	Wavenumber    []float64 // k_r per fast-time sample, rad/m
}

// Platform is an immutable, validated collection geometry. Accessors that
// return slices hand out copies.
type Platform struct {
	chirpRate     float64
	f0            float64
	fastTime      []float64
	positions     []r3.Vec
	npulses       int
	nsamples      int
	pulseDuration float64
	deltaR        float64
	wavenumber    []float64
}

// NewPlatform validates cfg and returns an immutable Platform.
//
// The chirp rate must be non-zero: the RVP filter divides by it.
func NewPlatform(cfg PlatformConfig) (*Platform, error) {
	const op = "new platform"
	if cfg.NPulses <= 0 {
		return nil, &PreconditionError{Field: "npulses", Reason: fmt.Sprintf("must be positive, got %d", cfg.NPulses)}
	}
	if cfg.NSamples <= 0 {
		return nil, &PreconditionError{Field: "nsamples", Reason: fmt.Sprintf("must be positive, got %d", cfg.NSamples)}
	}
	if cfg.ChirpRate == 0 {
		return nil, &PreconditionError{Field: "chirprate", Reason: "must be non-zero"}
	}
	if !finite(cfg.ChirpRate) || !finite(cfg.F0) || !finite(cfg.DeltaR) || !finite(cfg.PulseDuration) {
		return nil, &PreconditionError{Field: "platform scalars", Reason: "must be finite"}
	}
	if cfg.PulseDuration < 0 {
		return nil, &PreconditionError{Field: "pulse duration", Reason: "must not be negative"}
	}
	if len(cfg.Positions) != cfg.NPulses {
		return nil, shapeErr(op, "positions", cfg.NPulses, len(cfg.Positions))
	}
	if len(cfg.FastTime) != cfg.NSamples {
		return nil, shapeErr(op, "fast time", cfg.NSamples, len(cfg.FastTime))
	}
	if len(cfg.Wavenumber) != cfg.NSamples {
		return nil, shapeErr(op, "wavenumber", cfg.NSamples, len(cfg.Wavenumber))
	}
	for i, p := range cfg.Positions {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return nil, &PreconditionError{Field: "positions", Reason: fmt.Sprintf("pulse %d is not finite", i)}
		}
	}
	if !allFinite(cfg.FastTime) {
		return nil, &PreconditionError{Field: "fast time", Reason: "must be finite"}
	}
	if !allFinite(cfg.Wavenumber) {
		return nil, &PreconditionError{Field: "wavenumber", Reason: "must be finite"}
	}

	return &Platform{
		chirpRate:     cfg.ChirpRate,
		f0:            cfg.F0,
		fastTime:      append([]float64(nil), cfg.FastTime...),
		positions:     append([]r3.Vec(nil), cfg.Positions...),
		npulses:       cfg.NPulses,
		nsamples:      cfg.NSamples,
		pulseDuration: cfg.PulseDuration,
		deltaR:        cfg.DeltaR,
		wavenumber:    append([]float64(nil), cfg.Wavenumber...),
	}, nil
}

func (p *Platform) ChirpRate() float64     { return p.chirpRate }
func (p *Platform) F0() float64            { return p.f0 }
func (p *Platform) NPulses() int           { return p.npulses }
func (p *Platform) NSamples() int          { return p.nsamples }
func (p *Platform) PulseDuration() float64 { return p.pulseDuration }
func (p *Platform) DeltaR() float64        { return p.deltaR }

// FastTime returns a copy of the fast-time axis.
func (p *Platform) FastTime() []float64 { return append([]float64(nil), p.fastTime...) }

// Positions returns a copy of the per-pulse platform positions.
func (p *Platform) Positions() []r3.Vec { return append([]r3.Vec(nil), p.positions...) }

// Wavenumber returns a copy of the k_r axis.
func (p *Platform) Wavenumber() []float64 { return append([]float64(nil), p.wavenumber...) }

// Config returns a PlatformConfig equal to the one the platform was built from.
func (p *Platform) Config() PlatformConfig {
	return PlatformConfig{
		ChirpRate:     p.chirpRate,
		F0:            p.f0,
		FastTime:      p.FastTime(),
		Positions:     p.Positions(),
		NPulses:       p.npulses,
		NSamples:      p.nsamples,
		PulseDuration: p.pulseDuration,
		DeltaR:        p.deltaR,
		Wavenumber:    p.Wavenumber(),
	}
}

// checkPhaseHistory fails with a ShapeError unless phs matches the platform.
func (p *Platform) checkPhaseHistory(op string, phs *PhaseHistory) error {
	if p == nil {
		return errNilPlatform
	}
	if phs == nil {
		return shapeErr(op, "phase history", dimsString(p.npulses, p.nsamples), "nil")
	}
	rows, cols := phs.Dims()
	if rows != p.npulses || cols != p.nsamples {
		return shapeErr(op, "phase history", dimsString(p.npulses, p.nsamples), dimsString(rows, cols))
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func allFinite(s []float64) bool {
	for _, v := range s {
		if !finite(v) {
			return false
		}
	}
	return true
}
