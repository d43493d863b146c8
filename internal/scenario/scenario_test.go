package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rjboer/GoSAR/internal/pipeline"
	"github.com/rjboer/GoSAR/internal/sar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDefaultScenario(t *testing.T) {
	sc, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if sc.Name != "broadside-pass" {
		t.Fatalf("unexpected name %q", sc.Name)
	}
	if sc.Platform.NPulses() != 32 || sc.Platform.NSamples() != 256 {
		t.Fatalf("unexpected dims (%d, %d)", sc.Platform.NPulses(), sc.Platform.NSamples())
	}
	if len(sc.Targets) != 3 || sc.Targets[1].Amplitude != complex(0.5, 0.25) || sc.Targets[2].Amplitude != 0.75i {
		t.Fatalf("unexpected targets %+v", sc.Targets)
	}
	want := []pipeline.Stage{
		{Kind: pipeline.StageRVP, Upchirp: true},
		{Kind: pipeline.StageConstRef, Upchirp: true},
		{Kind: pipeline.StageRemoComp, Upchirp: true, Center: r3.Vec{X: 3, Y: -2}},
	}
	if len(sc.Stages) != len(want) {
		t.Fatalf("unexpected stages %+v", sc.Stages)
	}
	for i := range want {
		if sc.Stages[i] != want[i] {
			t.Fatalf("stage %d: expected %+v got %+v", i, want[i], sc.Stages[i])
		}
	}
	if sc.Platform.DeltaR() <= 0 {
		t.Fatalf("expected derived range spacing, got %v", sc.Platform.DeltaR())
	}
}

func TestParseExplicitAxes(t *testing.T) {
	doc := `
name: explicit
platform:
  chirp_rate: 1.0e+12
  f0: 5.0e+9
  pulse_duration: 2.0e-6
  fast_time: [-1.0e-6, 0, 1.0e-6]
  wavenumber: [1, 2, 3]
  delta_r: 0.25
  positions:
    - [1, 2, 3]
    - [4, 5, 6]
targets: []
`
	sc, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := sc.Platform
	if p.NPulses() != 2 || p.NSamples() != 3 || p.DeltaR() != 0.25 {
		t.Fatalf("unexpected platform %+v", p.Config())
	}
	if kr := p.Wavenumber(); kr[2] != 3 {
		t.Fatalf("explicit wavenumber ignored: %v", kr)
	}
	if len(sc.Targets) != 0 || len(sc.Stages) != 0 {
		t.Fatalf("expected no targets or stages")
	}
}

func TestParseErrors(t *testing.T) {
	base := `
platform:
  chirp_rate: 1.0e+12
  f0: 5.0e+9
  pulse_duration: 2.0e-6
  nsamples: 8
  positions: [[0, 1, 2]]
`
	tests := []struct {
		name string
		doc  string
		is   error
		msg  string
	}{
		{name: "bad_yaml", doc: "platform: [", msg: "parse scenario"},
		{name: "no_positions", doc: "platform:\n  chirp_rate: 1\n  nsamples: 4\n", msg: "positions are required"},
		{name: "zero_chirp", doc: strings.Replace(base, "1.0e+12", "0", 1), is: sar.ErrPrecondition},
		{name: "pulse_mismatch", doc: base + "  npulses: 3\n", is: sar.ErrShape},
		{name: "short_vector", doc: base + "targets:\n  - position: [1, 2]\n", msg: "3 coordinates"},
		{name: "bad_amplitude", doc: base + "targets:\n  - position: [1, 2, 3]\n    amplitude: [1, 2, 3]\n", msg: "amplitude pair"},
		{name: "unknown_stage", doc: base + "corrections:\n  - type: focus\n", msg: "unsupported stage"},
		{name: "misplaced_upchirp", doc: base + "corrections:\n  - type: rvp\n    upchirp: false\n", msg: "upchirp only applies"},
		{name: "misplaced_center", doc: base + "corrections:\n  - type: const_ref\n    center: [1, 2, 3]\n", msg: "center only applies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("expected %v, got %v", tt.is, err)
			}
			if tt.msg != "" && !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("expected %q in %v", tt.msg, err)
			}
		})
	}
}

func TestDownchirpCorrection(t *testing.T) {
	doc := `
platform:
  chirp_rate: 1.0e+12
  f0: 5.0e+9
  pulse_duration: 2.0e-6
  nsamples: 8
  positions: [[0, 1, 2]]
corrections:
  - type: const-ref
    upchirp: false
`
	sc, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sc.Stages[0].Kind != pipeline.StageConstRef || sc.Stages[0].Upchirp {
		t.Fatalf("unexpected stage %+v", sc.Stages[0])
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, defaultScenario, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Platform.NPulses() != 32 {
		t.Fatalf("unexpected pulses %d", sc.Platform.NPulses())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
