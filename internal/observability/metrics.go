package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	errorCount    map[string]int64
	totalDuration map[string]time.Duration
	events        map[string]int64
}

// RouteStats summarizes one method|route|status bucket.
type RouteStats struct {
	Count       int64   `json:"count"`
	AvgMillis   float64 `json:"avg_ms"`
	TotalMillis float64 `json:"total_ms"`
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	Requests map[string]RouteStats `json:"requests"`
	Errors   map[string]int64      `json:"errors"`
	Events   map[string]int64      `json:"events"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[string]int64),
		errorCount:    make(map[string]int64),
		totalDuration: make(map[string]time.Duration),
		events:        make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalDuration[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordEvent counts a published domain event by type.
func (m *Metrics) RecordEvent(eventType string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[eventType]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Requests: map[string]RouteStats{},
		Errors:   map[string]int64{},
		Events:   map[string]int64{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, count := range m.requestCount {
		total := float64(m.totalDuration[key]) / float64(time.Millisecond)
		snap.Requests[key] = RouteStats{Count: count, TotalMillis: total, AvgMillis: total / float64(count)}
	}
	for key, count := range m.errorCount {
		snap.Errors[key] = count
	}
	for key, count := range m.events {
		snap.Events[key] = count
	}
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
