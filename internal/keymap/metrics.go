package keymap

import (
	"errors"
	"sort"
	"sync"

	"github.com/dshills/oskey/internal/behavior"
)

// Metrics collects per-behavior invocation statistics.
type Metrics struct {
	mu sync.RWMutex

	behaviors map[string]*BehaviorMetrics

	totalInvokes  uint64
	totalFailures uint64
	totalDrops    uint64
}

// BehaviorMetrics holds counters for one behavior name.
type BehaviorMetrics struct {
	Name      string
	Presses   uint64
	Releases  uint64
	Failures  uint64
	Exhausted uint64
	Unmatched uint64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		behaviors: make(map[string]*BehaviorMetrics),
	}
}

func (m *Metrics) entry(name string) *BehaviorMetrics {
	bm := m.behaviors[name]
	if bm == nil {
		bm = &BehaviorMetrics{Name: name}
		m.behaviors[name] = bm
	}
	return bm
}

// RecordInvoke records one press or release routed to name.
func (m *Metrics) RecordInvoke(name string, pressed bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalInvokes++
	bm := m.entry(name)
	if pressed {
		bm.Presses++
	} else {
		bm.Releases++
	}
	if err != nil {
		m.totalFailures++
		bm.Failures++
	}
}

// RecordDrop records an event dropped by name.
func (m *Metrics) RecordDrop(name string, reason error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDrops++
	bm := m.entry(name)
	switch {
	case errors.Is(reason, behavior.ErrResourceExhausted):
		bm.Exhausted++
	case errors.Is(reason, behavior.ErrUnmatchedRelease):
		bm.Unmatched++
	}
}

// TotalInvokes returns the number of routed invocations.
func (m *Metrics) TotalInvokes() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalInvokes
}

// TotalFailures returns the number of failed invocations.
func (m *Metrics) TotalFailures() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalFailures
}

// TotalDrops returns the number of dropped events.
func (m *Metrics) TotalDrops() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDrops
}

// BehaviorStats returns a copy of the counters for name, or nil.
func (m *Metrics) BehaviorStats(name string) *BehaviorMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bm := m.behaviors[name]
	if bm == nil {
		return nil
	}
	copy := *bm
	return &copy
}

// All returns copies of every behavior's counters sorted by name.
func (m *Metrics) All() []BehaviorMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]BehaviorMetrics, 0, len(m.behaviors))
	for _, bm := range m.behaviors {
		out = append(out, *bm)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.behaviors = make(map[string]*BehaviorMetrics)
	m.totalInvokes = 0
	m.totalFailures = 0
	m.totalDrops = 0
}
