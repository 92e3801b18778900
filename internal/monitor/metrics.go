package monitor

import (
	"sync"
	"time"
)

// Metrics tracks poll and change counters for the monitor loop.
type Metrics struct {
	mutex sync.RWMutex

	pollCycles    int64
	changeBatches int64
	routesAdded   int64
	routesRemoved int64
	lastPoll      time.Time
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordPoll records one completed poll cycle.
func (m *Metrics) RecordPoll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.pollCycles++
	m.lastPoll = time.Now()
}

// RecordChanges records one detected change batch.
func (m *Metrics) RecordChanges(added, removed int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.changeBatches++
	m.routesAdded += int64(added)
	m.routesRemoved += int64(removed)
}

// Stats returns the poll, batch and per-route counters.
func (m *Metrics) Stats() (polls, batches, added, removed int64) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.pollCycles, m.changeBatches, m.routesAdded, m.routesRemoved
}

// LastPoll returns the wall-clock time of the most recent poll.
func (m *Metrics) LastPoll() time.Time {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.lastPoll
}
