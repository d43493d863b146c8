package telemetry

import (
	"github.com/rjboer/GoSAR/internal/logging"
)

// Reporter receives stage reports.
type Reporter interface {
	ReportStage(r StageReport)
}

// LogReporter writes stage reports to a logger.
type LogReporter struct {
	logger logging.Logger
}

// NewLogReporter builds a reporter on the provided logger.
func NewLogReporter(logger logging.Logger) LogReporter {
	if logger == nil {
		logger = logging.Default()
	}
	return LogReporter{logger: logger}
}

func (r LogReporter) ReportStage(rep StageReport) {
	logger := r.logger
	if logger == nil {
		logger = logging.Default()
	}
	fields := []logging.Field{
		{Key: "subsystem", Value: "telemetry"},
		{Key: "stage", Value: rep.Stage},
		{Key: "index", Value: rep.Index},
		{Key: "duration", Value: rep.Duration},
		{Key: "energy", Value: rep.Energy},
		{Key: "peak", Value: rep.Peak},
	}
	if rep.Peak != 0 {
		fields = append(fields,
			logging.Field{Key: "peak_pulse", Value: rep.PeakPulse},
			logging.Field{Key: "peak_sample", Value: rep.PeakSample},
		)
	}
	logger.Info("stage complete", fields...)
}
