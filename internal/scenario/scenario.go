package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/rjboer/GoSAR/internal/dsp"
	"github.com/rjboer/GoSAR/internal/pipeline"
	"github.com/rjboer/GoSAR/internal/sar"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultScenario []byte

// Scenario is a validated simulation run: geometry, scatterers and the
// corrections to apply afterwards.
type Scenario struct {
	Name     string
	Platform *sar.Platform
	Targets  []sar.Target
	Stages   []pipeline.Stage
}

// File is the on-disk YAML layout.
type File struct {
	Name        string           `yaml:"name"`
	Platform    PlatformSpec     `yaml:"platform"`
	Targets     []TargetSpec     `yaml:"targets"`
	Corrections []CorrectionSpec `yaml:"corrections"`
}

// PlatformSpec mirrors sar.PlatformConfig. FastTime, DeltaR and Wavenumber
// are derived from the chirp parameters when omitted.
type PlatformSpec struct {
	ChirpRate     float64   `yaml:"chirp_rate"`
	F0            float64   `yaml:"f0"`
	PulseDuration float64   `yaml:"pulse_duration"`
	NPulses       int       `yaml:"npulses"`
	NSamples      int       `yaml:"nsamples"`
	SampleWindow  float64   `yaml:"sample_window"`
	FastTime      []float64 `yaml:"fast_time"`
	DeltaR        *float64  `yaml:"delta_r"`
	Wavenumber    []float64 `yaml:"wavenumber"`
	Positions     []Vec     `yaml:"positions"`
}

// TargetSpec is one scatterer.
type TargetSpec struct {
	Position  Vec       `yaml:"position"`
	Amplitude Amplitude `yaml:"amplitude"`
}

// CorrectionSpec is one pipeline stage. Upchirp defaults to true.
type CorrectionSpec struct {
	Type    string `yaml:"type"`
	Upchirp *bool  `yaml:"upchirp"`
	Center  *Vec   `yaml:"center"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Default returns the built-in scenario.
func Default() (*Scenario, error) {
	return Parse(defaultScenario)
}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return f.Build()
}

// Build validates f and converts it into a Scenario.
func (f File) Build() (*Scenario, error) {
	cfg, err := f.Platform.config()
	if err != nil {
		return nil, err
	}
	platform, err := sar.NewPlatform(cfg)
	if err != nil {
		return nil, fmt.Errorf("platform: %w", err)
	}

	targets := make([]sar.Target, len(f.Targets))
	for i, ts := range f.Targets {
		targets[i] = sar.Target{Position: ts.Position.r3(), Amplitude: complex128(ts.Amplitude)}
	}

	stages := make([]pipeline.Stage, 0, len(f.Corrections))
	for i, cs := range f.Corrections {
		st, err := cs.stage()
		if err != nil {
			return nil, fmt.Errorf("correction %d: %w", i, err)
		}
		stages = append(stages, st)
	}

	return &Scenario{Name: f.Name, Platform: platform, Targets: targets, Stages: stages}, nil
}

func (ps PlatformSpec) config() (sar.PlatformConfig, error) {
	if len(ps.Positions) == 0 {
		return sar.PlatformConfig{}, errors.New("platform: positions are required")
	}
	npulses := ps.NPulses
	if npulses == 0 {
		npulses = len(ps.Positions)
	}
	nsamples := ps.NSamples
	if nsamples == 0 {
		nsamples = len(ps.FastTime)
	}

	fastTime := ps.FastTime
	if len(fastTime) == 0 {
		window := ps.SampleWindow
		if window == 0 {
			window = ps.PulseDuration
		}
		fastTime = dsp.FastTimeAxis(nsamples, window)
	}
	wavenumber := ps.Wavenumber
	if len(wavenumber) == 0 {
		wavenumber = dsp.WavenumberAxis(ps.F0, ps.ChirpRate, fastTime)
	}
	deltaR := dsp.RangeResolution(ps.ChirpRate, fastTime)
	if ps.DeltaR != nil {
		deltaR = *ps.DeltaR
	}

	positions := make([]r3.Vec, len(ps.Positions))
	for i, v := range ps.Positions {
		positions[i] = v.r3()
	}

	return sar.PlatformConfig{
		ChirpRate:     ps.ChirpRate,
		F0:            ps.F0,
		FastTime:      fastTime,
		Positions:     positions,
		NPulses:       npulses,
		NSamples:      nsamples,
		PulseDuration: ps.PulseDuration,
		DeltaR:        deltaR,
		Wavenumber:    wavenumber,
	}, nil
}

func (cs CorrectionSpec) stage() (pipeline.Stage, error) {
	kind, err := pipeline.ParseStageKind(cs.Type)
	if err != nil {
		return pipeline.Stage{}, err
	}
	st := pipeline.Stage{Kind: kind, Upchirp: true}
	if cs.Upchirp != nil {
		if kind != pipeline.StageConstRef {
			return pipeline.Stage{}, fmt.Errorf("upchirp only applies to %s", pipeline.StageConstRef)
		}
		st.Upchirp = *cs.Upchirp
	}
	if cs.Center != nil {
		if kind != pipeline.StageRemoComp {
			return pipeline.Stage{}, fmt.Errorf("center only applies to %s", pipeline.StageRemoComp)
		}
		st.Center = cs.Center.r3()
	}
	return st, nil
}
