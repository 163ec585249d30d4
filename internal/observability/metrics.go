package observability

import (
	"sync"
)

// Metrics provides basic in-memory counters for bot traffic.
type Metrics struct {
	mu          sync.Mutex
	updateCount map[string]int64
	errorCount  map[string]int64
	sendFailure int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		updateCount: make(map[string]int64),
		errorCount:  make(map[string]int64),
	}
}

// RecordUpdate increments the counter for an inbound update kind
// (command, message, callback).
func (m *Metrics) RecordUpdate(kind string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCount[kind]++
}

// RecordError increments the counter for a handler error code.
func (m *Metrics) RecordError(kind, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[kind+"|"+code]++
}

// RecordSendFailure counts outbound deliveries that were dropped.
func (m *Metrics) RecordSendFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFailure++
}

// Snapshot copies the counters for the ops endpoint.
func (m *Metrics) Snapshot() (updates, errors map[string]int64, sendFailures int64) {
	if m == nil {
		return nil, nil, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	updates = make(map[string]int64, len(m.updateCount))
	for k, v := range m.updateCount {
		updates[k] = v
	}
	errors = make(map[string]int64, len(m.errorCount))
	for k, v := range m.errorCount {
		errors[k] = v
	}
	return updates, errors, m.sendFailure
}
