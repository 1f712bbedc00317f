package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64

	triageStarted    int64
	triageCompleted  int64
	triageFailed     int64
	triageAutoClosed int64
	triageEscalated  int64
}

// TriageSnapshot is a point-in-time view of pipeline counters.
type TriageSnapshot struct {
	Started    int64 `json:"started"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
	AutoClosed int64 `json:"auto_closed"`
	Escalated  int64 `json:"escalated"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
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

// RecordTriageStarted counts a pipeline run entering the received state.
func (m *Metrics) RecordTriageStarted() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triageStarted++
}

// RecordTriageOutcome counts a terminal pipeline state.
func (m *Metrics) RecordTriageOutcome(autoClosed bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triageCompleted++
	if autoClosed {
		m.triageAutoClosed++
	} else {
		m.triageEscalated++
	}
}

// RecordTriageFailure counts an aborted pipeline run.
func (m *Metrics) RecordTriageFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triageFailed++
}

// Triage returns current pipeline counters.
func (m *Metrics) Triage() TriageSnapshot {
	if m == nil {
		return TriageSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return TriageSnapshot{
		Started:    m.triageStarted,
		Completed:  m.triageCompleted,
		Failed:     m.triageFailed,
		AutoClosed: m.triageAutoClosed,
		Escalated:  m.triageEscalated,
	}
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
