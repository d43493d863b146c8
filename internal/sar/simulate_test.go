package sar

import (
	"errors"
	"math"
	"math/cmplx"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestSimulateNoTargetsIsZero(t *testing.T) {
	p := testPlatform(t, 6, 32)
	phs, err := Simulate(p, nil)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	rows, cols := phs.Dims()
	if rows != 6 || cols != 32 {
		t.Fatalf("unexpected dims (%d, %d)", rows, cols)
	}
	for i, v := range phs.RawData() {
		if v != 0 {
			t.Fatalf("element %d = %v, want 0", i, v)
		}
	}
}

func TestSimulateTargetAtSceneCenter(t *testing.T) {
	p := testPlatform(t, 5, 64)
	amp := complex(2, -1)
	phs, err := Simulate(p, []Target{{Position: r3.Vec{}, Amplitude: amp}})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	inside := 0
	for i := 0; i < p.NPulses(); i++ {
		for j, tj := range p.FastTime() {
			want := complex128(0)
			if math.Abs(tj) <= p.PulseDuration()/2 {
				want = amp
				if i == 0 {
					inside++
				}
			}
			if got := phs.At(i, j); got != want {
				t.Fatalf("pulse %d sample %d: expected %v got %v", i, j, want, got)
			}
		}
	}
	if inside == 0 || inside == p.NSamples() {
		t.Fatalf("window should cover part of the fast-time axis, covered %d", inside)
	}
}

func TestSimulateTargetAtPlatformPosition(t *testing.T) {
	p := testPlatform(t, 4, 32)
	phs, err := Simulate(p, []Target{{Position: p.Positions()[0], Amplitude: 1}})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	for i, v := range phs.RawData() {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			t.Fatalf("element %d is not finite: %v", i, v)
		}
	}
}

func TestSimulateMatchesClosedForm(t *testing.T) {
	p := testPlatform(t, 3, 128)
	target := Target{Position: r3.Vec{X: 2, Y: -3, Z: 0.5}, Amplitude: 0.5i}
	phs, err := Simulate(p, []Target{target})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	gamma, f0 := p.ChirpRate(), p.F0()
	for i, pos := range p.Positions() {
		dr := r3.Norm(r3.Sub(pos, target.Position)) - r3.Norm(pos)
		tau := 2 * dr / SpeedOfLight
		for j, tj := range p.FastTime() {
			var want complex128
			if math.Abs(tj-tau) <= p.PulseDuration()/2 {
				phase := math.Pi*gamma*tau*tau - 2*math.Pi*(f0+gamma*tj)*tau
				want = target.Amplitude * cmplx.Exp(complex(0, phase))
			}
			if got := phs.At(i, j); cmplx.Abs(got-want) > 1e-9 {
				t.Fatalf("pulse %d sample %d: expected %v got %v", i, j, want, got)
			}
		}
	}
}

func TestSimulateSuperposition(t *testing.T) {
	p := testPlatform(t, 4, 64)
	a := Target{Position: r3.Vec{X: 1, Y: 1}, Amplitude: 1}
	b := Target{Position: r3.Vec{X: -3, Z: 2}, Amplitude: 2 + 1i}

	both, err := Simulate(p, []Target{a, b})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	onlyA, _ := Simulate(p, []Target{a})
	onlyB, _ := Simulate(p, []Target{b})

	sum := onlyA.Clone()
	for i, v := range onlyB.RawData() {
		sum.RawData()[i] += v
	}
	if !both.EqualApprox(sum, 1e-12) {
		t.Fatalf("contributions do not add coherently")
	}
}

func TestSimulateDeterministicAcrossWorkers(t *testing.T) {
	p := testPlatform(t, 17, 64)
	targets := []Target{
		{Position: r3.Vec{X: 1, Y: 2}, Amplitude: 1},
		{Position: r3.Vec{X: -4, Y: 0.5, Z: 1}, Amplitude: 0.3 - 0.2i},
	}

	serial, err := NewProcessor(Config{Workers: 1}).Simulate(p, targets)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	parallel, err := NewProcessor(Config{Workers: 4}).Simulate(p, targets)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	again, _ := NewProcessor(Config{Workers: 4}).Simulate(p, targets)

	if !serial.Equal(parallel) || !parallel.Equal(again) {
		t.Fatalf("simulation is not bitwise deterministic")
	}
}

func TestSimulateReportsProgress(t *testing.T) {
	p := testPlatform(t, 9, 16)
	seen := make(chan int, p.NPulses())
	pr := NewProcessor(Config{Workers: 3, Progress: func(pulse, npulses int) {
		if npulses != 9 {
			t.Errorf("unexpected npulses %d", npulses)
		}
		seen <- pulse
	}})
	if _, err := pr.Simulate(p, DefaultTargets()); err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	close(seen)

	got := make(map[int]bool)
	for pulse := range seen {
		got[pulse] = true
	}
	if len(got) != 9 {
		t.Fatalf("expected progress for 9 pulses, got %d", len(got))
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	if _, err := Simulate(nil, nil); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected precondition error for nil platform, got %v", err)
	}
	p := testPlatform(t, 2, 8)
	bad := []Target{{Position: r3.Vec{X: math.NaN()}, Amplitude: 1}}
	if _, err := Simulate(p, bad); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("expected precondition error for NaN target, got %v", err)
	}

	amps := []complex128{
		complex(math.NaN(), 0),
		complex(0, math.NaN()),
		complex(math.Inf(1), 0),
		complex(1, math.Inf(-1)),
	}
	for _, a := range amps {
		targets := []Target{{Amplitude: 1}, {Amplitude: a}}
		_, err := Simulate(p, targets)
		if !errors.Is(err, ErrPrecondition) {
			t.Fatalf("amplitude %v: expected precondition error, got %v", a, err)
		}
		if !strings.Contains(err.Error(), "amplitude of target 1") {
			t.Fatalf("amplitude %v: unexpected message %q", a, err)
		}
	}
}

func BenchmarkSimulate(b *testing.B) {
	p := testPlatform(b, 64, 512)
	targets := []Target{
		{Position: r3.Vec{}, Amplitude: 1},
		{Position: r3.Vec{X: 3, Y: -2}, Amplitude: 0.5},
		{Position: r3.Vec{X: -5, Y: 4, Z: 1}, Amplitude: 0.25},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Simulate(p, targets); err != nil {
			b.Fatal(err)
		}
	}
}
