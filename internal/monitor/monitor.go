package monitor

import (
	"context"
	"time"

	"github.com/routewatch/routewatch/internal/config"
	"github.com/routewatch/routewatch/internal/logger"
	"github.com/routewatch/routewatch/internal/recorder"
	"github.com/routewatch/routewatch/internal/routetable"
	"github.com/routewatch/routewatch/internal/source"
	"github.com/routewatch/routewatch/internal/topology"
)

// Monitor polls the routing table at a fixed interval, diffs each snapshot
// against the last-observed baseline and persists every detected change
// batch. The baseline is the loop's only long-lived state: seeded by one
// immediate poll on start, replaced wholesale whenever a change is detected.
type Monitor struct {
	cfg     *config.Config
	src     source.Source
	rec     *recorder.Recorder
	rend    topology.Renderer
	log     *logger.Logger
	console *Console
	metrics *Metrics

	baseline    routetable.Snapshot
	baselineSum uint64
}

// New creates a monitor. Console output follows cfg.Console.
func New(cfg *config.Config, src source.Source, rec *recorder.Recorder, rend topology.Renderer, log *logger.Logger) *Monitor {
	var console *Console
	if cfg.Console {
		console = NewConsole()
	}

	return &Monitor{
		cfg:     cfg,
		src:     src,
		rec:     rec,
		rend:    rend,
		log:     log.WithComponent("monitor"),
		console: console,
		metrics: NewMetrics(),
	}
}

// Metrics exposes the monitor's counters.
func (m *Monitor) Metrics() *Metrics {
	return m.metrics
}

// Baseline returns the last-observed snapshot.
func (m *Monitor) Baseline() routetable.Snapshot {
	return m.baseline
}

// Run seeds the baseline with one immediate poll, then polls at the
// configured interval until ctx is canceled. Cancellation is honored at the
// top of each cycle; a recorder write failure aborts the loop since there is
// no recovery path for lost change records.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.MonitorStart(m.cfg.PollInterval().String(), m.rec.LogPath(), m.rec.CSVPath())
	m.console.Starting(m.cfg.Interval, m.rec.LogPath(), m.rec.CSVPath())

	m.seed()

	ticker := time.NewTicker(m.cfg.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.console.Stopped()
			polls, batches, added, removed := m.metrics.Stats()
			m.log.MonitorStop(polls, batches, added, removed)
			return nil
		case <-ticker.C:
			if err := m.cycle(); err != nil {
				return err
			}
		}
	}
}

// RunOnce seeds the baseline and performs a single comparison poll. Test
// mode drives this with a replay source over the embedded example tables,
// exercising the exact same parse/diff/record path as Run.
func (m *Monitor) RunOnce() error {
	m.console.TestMode()
	m.seed()
	return m.cycle()
}

// observe fetches and parses the current routing table. A source failure is
// recovered locally: it is logged and the cycle proceeds with an empty
// table, so the loop continues on the next interval rather than aborting.
func (m *Monitor) observe() routetable.Snapshot {
	lines, err := m.src.Fetch()
	if err != nil {
		m.log.SourceError(err)
		lines = nil
	}
	m.metrics.RecordPoll()
	return routetable.Parse(lines)
}

// seed establishes the baseline snapshot. No change can be reported on this
// first poll.
func (m *Monitor) seed() {
	snap := m.observe()
	m.baseline = snap
	m.baselineSum = snap.Sum64()
	m.log.BaselineSeeded(snap.Len(), snap.Gateway)
	m.console.Summary(snap)
}

func (m *Monitor) cycle() error {
	snap := m.observe()

	// Equal fingerprints mean an identical table; skip the diff entirely.
	sum := snap.Sum64()
	if sum == m.baselineSum {
		return nil
	}

	changes := routetable.Diff(m.baseline, snap)
	if changes.Empty() {
		// Next hops or the default gateway shifted under stable
		// destinations. Invisible to the destination-keyed diff: nothing
		// is persisted and the baseline stays as it is.
		return nil
	}

	m.metrics.RecordChanges(len(changes.Added), len(changes.Removed))
	m.log.RouteChanges(len(changes.Added), len(changes.Removed), snap.Gateway)
	m.console.Changes(changes)

	if err := m.rec.Record(changes); err != nil {
		return err
	}
	m.rend.Render(snap)

	m.baseline = snap
	m.baselineSum = sum
	m.console.Summary(snap)
	return nil
}
