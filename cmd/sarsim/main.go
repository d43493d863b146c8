package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rjboer/GoSAR/internal/logging"
	"github.com/rjboer/GoSAR/internal/observability"
	"github.com/rjboer/GoSAR/internal/pipeline"
	"github.com/rjboer/GoSAR/internal/sar"
	"github.com/rjboer/GoSAR/internal/scenario"
	"github.com/rjboer/GoSAR/internal/telemetry"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("parse config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("sarsim: %v", err)
	}
}

type cliConfig struct {
	scenarioPath string
	workers      int
	logLevel     string
	logFormat    string
	trace        string
	metrics      bool
	historyLimit int
}

func parseConfig(args []string, lookup func(string) (string, bool)) (cliConfig, error) {
	cfg := cliConfig{}
	fs := flag.NewFlagSet("sarsim", flag.ContinueOnError)
	fs.StringVar(&cfg.scenarioPath, "scenario", envString(lookup, "SARSIM_SCENARIO", ""), "Scenario YAML file (built-in broadside pass when empty)")
	fs.IntVar(&cfg.workers, "workers", envInt(lookup, "SARSIM_WORKERS", 0), "Worker goroutines per transform (0 = one per CPU)")
	fs.StringVar(&cfg.logLevel, "log-level", envString(lookup, "SARSIM_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.logFormat, "log-format", envString(lookup, "SARSIM_LOG_FORMAT", "text"), "Log format (text|json)")
	fs.StringVar(&cfg.trace, "trace", envString(lookup, "SARSIM_TRACE", "none"), "Trace exporter (none|stdout)")
	fs.BoolVar(&cfg.metrics, "metrics", envBool(lookup, "SARSIM_METRICS", false), "Write Prometheus metrics to stdout when done")
	fs.IntVar(&cfg.historyLimit, "history-limit", envInt(lookup, "SARSIM_HISTORY_LIMIT", 64), "Maximum stage reports kept for the summary")

	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	if fs.NArg() > 0 {
		return cliConfig{}, fmt.Errorf("unexpected arguments %v", fs.Args())
	}
	if cfg.workers < 0 {
		return cliConfig{}, fmt.Errorf("workers must not be negative, got %d", cfg.workers)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg cliConfig, stdout, stderr io.Writer) error {
	level, err := logging.ParseLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.logFormat)
	if err != nil {
		return err
	}
	logger := logging.New(level, format, stderr)
	logging.SetDefault(logger)

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{Exporter: cfg.trace, Output: stderr}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("trace shutdown failed", logging.Field{Key: "error", Value: err})
		}
	}()

	sc, err := loadScenario(cfg.scenarioPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector, err := observability.NewTransformCollector(reg)
	if err != nil {
		return err
	}
	hub := telemetry.NewHub(cfg.historyLimit)

	p := pipeline.New(pipeline.Config{
		Processor: sar.NewProcessor(sar.Config{Workers: cfg.workers, Logger: logger}),
		Logger:    logger,
		Recorder:  collector,
		Reporter:  telemetry.MultiReporter{hub, telemetry.NewLogReporter(logger)},
	})

	logger.Info("running scenario",
		logging.Field{Key: "name", Value: sc.Name},
		logging.Field{Key: "npulses", Value: sc.Platform.NPulses()},
		logging.Field{Key: "nsamples", Value: sc.Platform.NSamples()},
		logging.Field{Key: "targets", Value: len(sc.Targets)},
		logging.Field{Key: "corrections", Value: len(sc.Stages)},
	)
	phs, err := p.Run(ctx, sc.Platform, sc.Targets, sc.Stages)
	if err != nil {
		return err
	}

	writeSummary(stdout, sc, hub.History())
	peak, pulse, sample := phs.Peak()
	fmt.Fprintf(stdout, "final: energy=%.6g peak=%.6g at pulse %d sample %d\n", phs.Energy(), peak, pulse, sample)

	if cfg.metrics {
		if err := collector.WriteText(stdout); err != nil {
			return err
		}
	}
	return nil
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Default()
	}
	return scenario.Load(path)
}

func writeSummary(w io.Writer, sc *scenario.Scenario, reports []telemetry.StageReport) {
	name := sc.Name
	if name == "" {
		name = "unnamed"
	}
	fmt.Fprintf(w, "scenario %s: %d pulses x %d samples, %d targets\n", name, sc.Platform.NPulses(), sc.Platform.NSamples(), len(sc.Targets))
	for _, r := range reports {
		fmt.Fprintf(w, "  %d %-28s %12s energy=%-12.6g peak=%.6g (%d, %d)\n", r.Index, r.Stage, r.Duration, r.Energy, r.Peak, r.PeakPulse, r.PeakSample)
	}
}

func envInt(lookup func(string) (string, bool), key string, def int) int {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func envBool(lookup func(string) (string, bool), key string, def bool) bool {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return def
}

func envString(lookup func(string) (string, bool), key, def string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return def
}
