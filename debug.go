package cadence

import (
	"context"
	"log/slog"
	"time"
)

// tickStats holds per-tick timing and population counts.
// Only collected when the stage is in debug mode.
type tickStats struct {
	tick         uint64
	duration     time.Duration
	regions      int
	tasks        int
	running      int
	observations int
	counters     int
	listeners    int
	pending      int
}

// SetLogger sets the logger used for diagnostics. A nil logger discards
// output.
func (s *Stage) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	s.logger = l
}

// Logger returns the stage's logger.
func (s *Stage) Logger() *slog.Logger {
	return s.logger
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick stats
// are logged at debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

func (s *Stage) collectStats(d time.Duration) tickStats {
	stats := tickStats{
		tick:         s.tick,
		duration:     d,
		regions:      len(s.regions),
		tasks:        len(s.tasks),
		observations: s.tracker.Len(),
		counters:     len(s.counters),
		listeners:    s.dispatcher.ListenerCount(),
		pending:      len(s.injectQ),
	}
	for _, t := range s.tasks {
		if t.started && !t.done {
			stats.running++
		}
	}
	return stats
}

// debugLog writes tick stats at debug level.
func (s *Stage) debugLog(stats tickStats) {
	if !s.debug || !s.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	s.logger.Debug("tick",
		slog.Uint64("tick", stats.tick),
		slog.Duration("took", stats.duration),
		slog.Int("regions", stats.regions),
		slog.Int("tasks", stats.tasks),
		slog.Int("running", stats.running),
		slog.Int("observations", stats.observations),
		slog.Int("counters", stats.counters),
		slog.Int("listeners", stats.listeners),
		slog.Int("pending_input", stats.pending),
	)
}
