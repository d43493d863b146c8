package sar

import (
	"github.com/rjboer/GoSAR/internal/dsp"
	"github.com/rjboer/GoSAR/internal/logging"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config controls how a Processor executes transforms. None of it changes
// results: outputs are identical for any worker count.
type Config struct {
	// Workers is the number of goroutines rows are spread over.
	// Zero or negative means runtime.NumCPU().
	Workers int
	// Logger receives per-pulse simulation progress at debug level.
	Logger logging.Logger
	// Progress, if set, is called once per simulated pulse. It may be
	// called concurrently from several workers.
	Progress func(pulse, npulses int)
	// Spectral supplies FFT plans; defaults to dsp.DefaultCache().
	Spectral *dsp.SpectralCache
}

// Processor runs the phase-history transforms. It holds no per-call state
// and is safe for concurrent use.
type Processor struct {
	workers  int
	logger   logging.Logger
	progress func(pulse, npulses int)
	spectral *dsp.SpectralCache
}

// NewProcessor builds a Processor from cfg.
func NewProcessor(cfg Config) *Processor {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Spectral == nil {
		cfg.Spectral = dsp.DefaultCache()
	}
	return &Processor{
		workers:  cfg.Workers,
		logger:   cfg.Logger.With(logging.Field{Key: "subsystem", Value: "sar"}),
		progress: cfg.Progress,
		spectral: cfg.Spectral,
	}
}

var defaultProcessor = NewProcessor(Config{})

// Simulate runs Processor.Simulate on a default processor.
func Simulate(p *Platform, targets []Target) (*PhaseHistory, error) {
	return defaultProcessor.Simulate(p, targets)
}

// CorrectRVP runs Processor.CorrectRVP on a default processor.
func CorrectRVP(phs *PhaseHistory, p *Platform) (*PhaseHistory, error) {
	return defaultProcessor.CorrectRVP(phs, p)
}

// ToConstantReference runs Processor.ToConstantReference on a default processor.
func ToConstantReference(phs *PhaseHistory, p *Platform, upchirp bool) (*PhaseHistory, error) {
	return defaultProcessor.ToConstantReference(phs, p, upchirp)
}

// Recompensate runs Processor.Recompensate on a default processor.
func Recompensate(phs *PhaseHistory, p *Platform, center r3.Vec) (*PhaseHistory, error) {
	return defaultProcessor.Recompensate(phs, p, center)
}
