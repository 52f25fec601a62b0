package observability

import (
	"sync"
	"time"
)

type OperationSnapshot struct {
	Count         int64   `json:"count"`
	Errors        int64   `json:"errors"`
	InFlight      int64   `json:"in_flight"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
	MaxLatencyMs  float64 `json:"max_latency_ms"`
	LastLatencyMs float64 `json:"last_latency_ms"`
}

type LedgerSnapshot struct {
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

type Snapshot struct {
	UptimeSec     int64                        `json:"uptime_sec"`
	TotalRequests int64                        `json:"total_requests"`
	TotalErrors   int64                        `json:"total_errors"`
	InFlight      int64                        `json:"in_flight"`
	ResumeOffers  int64                        `json:"resume_offers"`
	Ledger        LedgerSnapshot               `json:"ledger"`
	Operations    map[string]OperationSnapshot `json:"operations"`
}

type operationStats struct {
	count        int64
	errors       int64
	inFlight     int64
	totalLatency time.Duration
	maxLatency   time.Duration
	lastLatency  time.Duration
}

// Metrics tracks order-flow operations (one entry per lifecycle transition or
// endpoint), ledger delivery outcomes, and resume offers.
type Metrics struct {
	mu           sync.Mutex
	start        time.Time
	operations   map[string]*operationStats
	ledger       LedgerSnapshot
	resumeOffers int64
}

// CallSpan measures one in-flight operation.
type CallSpan struct {
	metrics   *Metrics
	operation string
	start     time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		start:      time.Now(),
		operations: make(map[string]*operationStats),
	}
}

func (m *Metrics) Start(operation string) *CallSpan {
	if m == nil {
		return &CallSpan{}
	}
	m.mu.Lock()
	stats := m.ensureOperation(operation)
	stats.inFlight++
	m.mu.Unlock()
	return &CallSpan{
		metrics:   m,
		operation: operation,
		start:     time.Now(),
	}
}

func (s *CallSpan) End(err error) {
	if s == nil || s.metrics == nil {
		return
	}
	dur := time.Since(s.start)
	s.metrics.finish(s.operation, dur, err != nil)
}

// LedgerDelivered counts one record accepted by the sink.
func (m *Metrics) LedgerDelivered() { m.addLedger(func(l *LedgerSnapshot) { l.Delivered++ }) }

// LedgerFailed counts one record the sink rejected or the breaker skipped.
func (m *Metrics) LedgerFailed() { m.addLedger(func(l *LedgerSnapshot) { l.Failed++ }) }

// LedgerDropped counts one record dropped on a full queue.
func (m *Metrics) LedgerDropped() { m.addLedger(func(l *LedgerSnapshot) { l.Dropped++ }) }

// AddResumeOffer counts one resumable draft surfaced to a customer.
func (m *Metrics) AddResumeOffer() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.resumeOffers++
	m.mu.Unlock()
}

func (m *Metrics) addLedger(f func(*LedgerSnapshot)) {
	if m == nil {
		return
	}
	m.mu.Lock()
	f(&m.ledger)
	m.mu.Unlock()
}

func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		UptimeSec:    int64(time.Since(m.start).Seconds()),
		Operations:   make(map[string]OperationSnapshot),
		ResumeOffers: m.resumeOffers,
		Ledger:       m.ledger,
	}

	for operation, stats := range m.operations {
		avg := 0.0
		if stats.count > 0 {
			avg = float64(stats.totalLatency.Milliseconds()) / float64(stats.count)
		}
		snap.Operations[operation] = OperationSnapshot{
			Count:         stats.count,
			Errors:        stats.errors,
			InFlight:      stats.inFlight,
			AvgLatencyMs:  avg,
			MaxLatencyMs:  float64(stats.maxLatency.Milliseconds()),
			LastLatencyMs: float64(stats.lastLatency.Milliseconds()),
		}
		snap.TotalRequests += stats.count
		snap.TotalErrors += stats.errors
		snap.InFlight += stats.inFlight
	}

	return snap
}

func (m *Metrics) ensureOperation(operation string) *operationStats {
	stats, ok := m.operations[operation]
	if !ok {
		stats = &operationStats{}
		m.operations[operation] = stats
	}
	return stats
}

func (m *Metrics) finish(operation string, dur time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	stats := m.ensureOperation(operation)
	stats.inFlight--
	stats.count++
	if failed {
		stats.errors++
	}
	stats.totalLatency += dur
	if dur > stats.maxLatency {
		stats.maxLatency = dur
	}
	stats.lastLatency = dur
	m.mu.Unlock()
}
