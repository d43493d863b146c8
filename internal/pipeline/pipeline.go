package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rjboer/GoSAR/internal/logging"
	"github.com/rjboer/GoSAR/internal/observability"
	"github.com/rjboer/GoSAR/internal/sar"
	"github.com/rjboer/GoSAR/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Recorder receives per-stage measurements.
type Recorder interface {
	ObserveStage(stage string, d time.Duration, err error)
	SetPhaseHistorySize(npulses, nsamples int)
}

// Config wires a Pipeline. Every field is optional.
type Config struct {
	Processor *sar.Processor
	Logger    logging.Logger
	Recorder  Recorder
	Reporter  telemetry.Reporter
	Tracer    trace.Tracer
}

// Pipeline simulates a phase history and applies an ordered chain of
// corrections, checking for cancellation between stages.
type Pipeline struct {
	proc     *sar.Processor
	logger   logging.Logger
	recorder Recorder
	reporter telemetry.Reporter
	tracer   trace.Tracer
}

// New builds a Pipeline from cfg.
func New(cfg Config) *Pipeline {
	if cfg.Processor == nil {
		cfg.Processor = sar.NewProcessor(sar.Config{Logger: cfg.Logger})
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer(observability.TracerName)
	}
	return &Pipeline{
		proc:     cfg.Processor,
		logger:   cfg.Logger.With(logging.Field{Key: "subsystem", Value: "pipeline"}),
		recorder: cfg.Recorder,
		reporter: cfg.Reporter,
		tracer:   cfg.Tracer,
	}
}

// Run simulates targets against platform and then applies stages in order.
func (p *Pipeline) Run(ctx context.Context, platform *sar.Platform, targets []sar.Target, stages []Stage) (*sar.PhaseHistory, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline run", trace.WithAttributes(
		attribute.Int("sar.targets", len(targets)),
		attribute.Int("sar.stages", len(stages)),
	))
	defer span.End()

	phs, err := p.stage(ctx, 0, stageSimulate, stageSimulate, func() (*sar.PhaseHistory, error) {
		return p.proc.Simulate(platform, targets)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	out, err := p.apply(ctx, phs, platform, stages, 1)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out, nil
}

// Apply runs stages in order on an existing phase history.
func (p *Pipeline) Apply(ctx context.Context, phs *sar.PhaseHistory, platform *sar.Platform, stages []Stage) (*sar.PhaseHistory, error) {
	return p.apply(ctx, phs, platform, stages, 0)
}

func (p *Pipeline) apply(ctx context.Context, phs *sar.PhaseHistory, platform *sar.Platform, stages []Stage, first int) (*sar.PhaseHistory, error) {
	for i, st := range stages {
		in := phs
		var fn func() (*sar.PhaseHistory, error)
		switch st.Kind {
		case StageRVP:
			fn = func() (*sar.PhaseHistory, error) { return p.proc.CorrectRVP(in, platform) }
		case StageConstRef:
			fn = func() (*sar.PhaseHistory, error) { return p.proc.ToConstantReference(in, platform, st.Upchirp) }
		case StageRemoComp:
			fn = func() (*sar.PhaseHistory, error) { return p.proc.Recompensate(in, platform, st.Center) }
		default:
			return nil, fmt.Errorf("stage %d: unsupported kind %q", first+i, st.Kind)
		}

		out, err := p.stage(ctx, first+i, string(st.Kind), st.String(), fn)
		if err != nil {
			return nil, err
		}
		phs = out
	}
	return phs, nil
}

// stage runs fn as step index. kind labels metrics; name is the full
// description used for spans, logs and reports.
func (p *Pipeline) stage(ctx context.Context, index int, kind, name string, fn func() (*sar.PhaseHistory, error)) (*sar.PhaseHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, span := p.tracer.Start(ctx, "stage "+name, trace.WithAttributes(
		attribute.Int("sar.stage.index", index),
		attribute.String("sar.stage", name),
	))
	defer span.End()

	p.logger.Debug("stage start", logging.Field{Key: "stage", Value: name}, logging.Field{Key: "index", Value: index})
	start := time.Now()
	phs, err := fn()
	elapsed := time.Since(start)

	if p.recorder != nil {
		p.recorder.ObserveStage(kind, elapsed, err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error("stage failed", logging.Field{Key: "stage", Value: name}, logging.Field{Key: "error", Value: err})
		return nil, fmt.Errorf("stage %d (%s): %w", index, name, err)
	}

	rows, cols := phs.Dims()
	span.SetAttributes(attribute.Int("sar.npulses", rows), attribute.Int("sar.nsamples", cols))
	if p.recorder != nil {
		p.recorder.SetPhaseHistorySize(rows, cols)
	}
	if p.reporter != nil {
		p.reporter.ReportStage(telemetry.Summarize(index, name, elapsed, phs))
	}
	p.logger.Debug("stage done", logging.Field{Key: "stage", Value: name}, logging.Field{Key: "elapsed", Value: elapsed})
	return phs, nil
}
