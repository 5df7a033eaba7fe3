package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch pass statistics.
type Metrics struct {
	mu sync.RWMutex

	// Per event type metrics
	eventMetrics map[string]*EventMetrics

	// Global counters
	totalPasses  uint64
	totalActions uint64
	totalErrors  uint64
	totalHandled uint64

	// Timing
	totalDuration time.Duration
}

// EventMetrics holds metrics for one event type.
type EventMetrics struct {
	EventType     string
	Passes        uint64
	NodesVisited  uint64
	Actions       uint64
	Stops         uint64
	Errors        uint64
	Handled       uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastPass      time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		eventMetrics: make(map[string]*EventMetrics),
	}
}

// RecordPass records one finished pass.
func (m *Metrics) RecordPass(eventType string, duration time.Duration, stats passStats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPasses++
	m.totalActions += uint64(stats.actions)
	m.totalHandled += uint64(stats.handled)
	m.totalDuration += duration
	if stats.failed {
		m.totalErrors++
	}

	em := m.eventMetrics[eventType]
	if em == nil {
		em = &EventMetrics{
			EventType:   eventType,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.eventMetrics[eventType] = em
	}

	em.Passes++
	em.NodesVisited += uint64(stats.nodes)
	em.Actions += uint64(stats.actions)
	em.Handled += uint64(stats.handled)
	em.TotalDuration += duration
	em.LastPass = time.Now()

	if stats.stopped {
		em.Stops++
	}
	if stats.failed {
		em.Errors++
	}
	if duration < em.MinDuration {
		em.MinDuration = duration
	}
	if duration > em.MaxDuration {
		em.MaxDuration = duration
	}
}

// TotalPasses returns the number of dispatch passes.
func (m *Metrics) TotalPasses() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPasses
}

// TotalActions returns the number of actions invoked.
func (m *Metrics) TotalActions() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalActions
}

// TotalErrors returns the number of passes that returned an error.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalHandled returns the number of action errors a handler suppressed.
func (m *Metrics) TotalHandled() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalHandled
}

// AverageDuration returns the average pass duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.totalPasses == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalPasses)
}

// EventStats returns a copy of the metrics for eventType, or nil.
func (m *Metrics) EventStats(eventType string) *EventMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	em := m.eventMetrics[eventType]
	if em == nil {
		return nil
	}
	cp := *em
	return &cp
}

// TopEvents returns the n event types with the most passes.
func (m *Metrics) TopEvents(n int) []*EventMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]*EventMetrics, 0, len(m.eventMetrics))
	for _, em := range m.eventMetrics {
		cp := *em
		events = append(events, &cp)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].Passes != events[j].Passes {
			return events[i].Passes > events[j].Passes
		}
		return events[i].EventType < events[j].EventType
	})

	if n > len(events) {
		n = len(events)
	}
	return events[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.eventMetrics = make(map[string]*EventMetrics)
	m.totalPasses = 0
	m.totalActions = 0
	m.totalErrors = 0
	m.totalHandled = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the global counters.
type MetricsSnapshot struct {
	TotalPasses     uint64
	TotalActions    uint64
	TotalErrors     uint64
	TotalHandled    uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	EventTypes      int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalPasses:   m.totalPasses,
		TotalActions:  m.totalActions,
		TotalErrors:   m.totalErrors,
		TotalHandled:  m.totalHandled,
		TotalDuration: m.totalDuration,
		EventTypes:    len(m.eventMetrics),
		Timestamp:     time.Now(),
	}
	if m.totalPasses > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalPasses)
	}
	return snapshot
}

// AveragePassDuration returns the average duration for this event type.
func (em *EventMetrics) AveragePassDuration() time.Duration {
	if em.Passes == 0 {
		return 0
	}
	return em.TotalDuration / time.Duration(em.Passes)
}

// StopRate returns the share of passes that ended with a stop, as a percentage.
func (em *EventMetrics) StopRate() float64 {
	if em.Passes == 0 {
		return 0
	}
	return float64(em.Stops) / float64(em.Passes) * 100
}
