package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"errlens/src/internal/artifact"
	"errlens/src/internal/classify"
	"errlens/src/internal/core"
	"errlens/src/internal/dedup"
	"errlens/src/internal/launcher"
	"errlens/src/internal/source"

	"github.com/lixenwraith/log"
)

// Monitor drives the poll loop: every check interval it re-reads the
// source file and runs each entry, in source order, through
// dedup -> classify -> artifact write -> editor launch. All entries of
// a cycle are handled synchronously before the next sleep; there is no
// batching or backpressure.
type Monitor struct {
	source   *source.FileSource
	tracker  *dedup.Tracker
	writer   *artifact.Writer
	launcher launcher.Launcher
	interval time.Duration
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Statistics
	cycles           atomic.Uint64
	entriesSeen      atomic.Uint64
	artifactsWritten atomic.Uint64
	launchAttempts   atomic.Uint64
	informational    atomic.Uint64
	startTime        time.Time
}

// MonitorStats is a snapshot of the monitor's counters.
type MonitorStats struct {
	Cycles           uint64
	EntriesSeen      uint64
	ArtifactsWritten uint64
	LaunchAttempts   uint64
	Informational    uint64
	StartTime        time.Time
	Source           source.SourceStats
}

// New creates a monitor over the given pipeline components.
func New(src *source.FileSource, tracker *dedup.Tracker, writer *artifact.Writer, l launcher.Launcher, interval time.Duration, logger *log.Logger) *Monitor {
	return &Monitor{
		source:   src,
		tracker:  tracker,
		writer:   writer,
		launcher: l,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the poll loop. The loop never terminates on its own;
// it runs until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.startTime = time.Now()

	m.wg.Add(1)
	go m.run()

	m.logger.Info("msg", "Monitor started",
		"component", "monitor",
		"source", m.source.Path(),
		"debug_dir", m.writer.Dir(),
		"check_interval", m.interval.String())
	return nil
}

// Stop cancels the loop and waits for it to exit.
func (m *Monitor) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()

	m.logger.Info("msg", "Monitor stopped",
		"component", "monitor",
		"source", m.source.Path())
}

// GetStats returns a snapshot of monitor statistics.
func (m *Monitor) GetStats() MonitorStats {
	return MonitorStats{
		Cycles:           m.cycles.Load(),
		EntriesSeen:      m.entriesSeen.Load(),
		ArtifactsWritten: m.artifactsWritten.Load(),
		LaunchAttempts:   m.launchAttempts.Load(),
		Informational:    m.informational.Load(),
		StartTime:        m.startTime,
		Source:           m.source.GetStats(),
	}
}

// run executes cycles on a fixed interval. Cancellation is observed
// both before each read and during the sleep between cycles.
func (m *Monitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.runCycle()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if m.ctx.Err() != nil {
				return
			}
			m.runCycle()
		}
	}
}

// runCycle reads all current entries and dispatches each in source
// order. A very large backlog on first read is handled in full before
// the first sleep.
func (m *Monitor) runCycle() {
	m.cycles.Add(1)

	for _, entry := range m.source.Read() {
		m.dispatch(entry)
	}
}

// dispatch runs one entry through the pipeline.
func (m *Monitor) dispatch(entry core.LogEntry) {
	m.entriesSeen.Add(1)

	if !m.tracker.ShouldProcess(entry.ID()) {
		return
	}

	if classify.Classify(entry.LogType) == classify.Informational {
		m.informational.Add(1)
		// Operator-visible notice only; no artifact, no launch.
		m.logger.Info("msg", "Skipping non-error entry",
			"component", "monitor",
			"type", entry.LogType,
			"message", entry.Message)
		return
	}

	m.logger.Info("msg", "Actionable entry detected",
		"component", "monitor",
		"type", entry.LogType,
		"message", entry.Message)

	path, err := m.writer.Write(entry)
	if err != nil {
		// Aborts this entry only; the loop keeps running.
		m.logger.Error("msg", "Failed to write debug artifact",
			"component", "monitor",
			"type", entry.LogType,
			"error", err)
		return
	}
	m.artifactsWritten.Add(1)

	m.launchAttempts.Add(1)
	if err := m.launcher.Open(path); err != nil {
		m.logger.Warn("msg", "Could not open artifact in editor, open manually",
			"component", "monitor",
			"path", path,
			"error", err)
	}
}
