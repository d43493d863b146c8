package telemetry

import (
	"sync"
	"time"

	"github.com/rjboer/GoSAR/internal/sar"
)

const (
	defaultHistoryLimit = 256
	maxHistoryLimit     = 10_000
)

// StageReport summarises the phase history produced by one pipeline stage.
type StageReport struct {
	Timestamp  time.Time     `json:"timestamp"`
	Index      int           `json:"index"`
	Stage      string        `json:"stage"`
	Duration   time.Duration `json:"duration"`
	NPulses    int           `json:"npulses"`
	NSamples   int           `json:"nsamples"`
	Energy     float64       `json:"energy"`
	Peak       float64       `json:"peak"`
	PeakPulse  int           `json:"peakPulse"`
	PeakSample int           `json:"peakSample"`
}

// Summarize builds a report for phs.
func Summarize(index int, stage string, d time.Duration, phs *sar.PhaseHistory) StageReport {
	rows, cols := phs.Dims()
	peak, pulse, sample := phs.Peak()
	return StageReport{
		Timestamp:  time.Now(),
		Index:      index,
		Stage:      stage,
		Duration:   d,
		NPulses:    rows,
		NSamples:   cols,
		Energy:     phs.Energy(),
		Peak:       peak,
		PeakPulse:  pulse,
		PeakSample: sample,
	}
}

// Hub keeps a bounded history of stage reports and fans them out to subscribers.
type Hub struct {
	mu           sync.RWMutex
	history      []StageReport
	historyLimit int
	subscribers  map[chan StageReport]struct{}
}

// NewHub builds a hub keeping at most historyLimit reports. Non-positive
// limits fall back to a default; limits are capped at maxHistoryLimit.
func NewHub(historyLimit int) *Hub {
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	if historyLimit > maxHistoryLimit {
		historyLimit = maxHistoryLimit
	}
	return &Hub{
		historyLimit: historyLimit,
		subscribers:  make(map[chan StageReport]struct{}),
	}
}

// ReportStage implements Reporter.
func (h *Hub) ReportStage(r StageReport) {
	h.mu.Lock()
	h.history = append(h.history, r)
	if len(h.history) > h.historyLimit {
		h.history = h.history[len(h.history)-h.historyLimit:]
	}
	for ch := range h.subscribers {
		select {
		case ch <- r:
		default:
		}
	}
	h.mu.Unlock()
}

// History returns a copy of stored reports.
func (h *Hub) History() []StageReport {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]StageReport, len(h.history))
	copy(out, h.history)
	return out
}

// Subscribe registers a listener for live updates. Slow listeners miss reports.
func (h *Hub) Subscribe() (chan StageReport, func()) {
	ch := make(chan StageReport, 16)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	cancel := func() {
		h.mu.Lock()
		delete(h.subscribers, ch)
		close(ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// MultiReporter fans out reports to multiple destinations.
type MultiReporter []Reporter

// ReportStage forwards r to each configured reporter.
func (m MultiReporter) ReportStage(r StageReport) {
	for _, rep := range m {
		if rep != nil {
			rep.ReportStage(r)
		}
	}
}
