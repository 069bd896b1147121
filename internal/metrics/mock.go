package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	rounds           map[string]int
	durations        []float64
	searchNodes      []int
	matchesReported  int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rounds:    make(map[string]int),
		durations: make([]float64, 0),
	}
}

func (m *Mock) IncRounds(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[outcome]++
}

func (m *Mock) ObservePairingDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, duration)
}

func (m *Mock) ObserveSearchNodes(nodes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchNodes = append(m.searchNodes, nodes)
}

func (m *Mock) IncMatchesReported() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesReported++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Rounds returns how many computations ended with the given outcome.
func (m *Mock) Rounds(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rounds[outcome]
}

// PairingDurations returns every observed pairing duration.
func (m *Mock) PairingDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.durations...)
}

// SearchNodes returns every observed node count.
func (m *Mock) SearchNodes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.searchNodes...)
}

// MatchesReported returns the number of times IncMatchesReported was called.
func (m *Mock) MatchesReported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesReported
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// CounterMock is an in-memory CounterStore for testing.
type CounterMock struct {
	mu       sync.Mutex
	counters map[string]int
}

var _ CounterStore = (*CounterMock)(nil)

// NewCounterMock creates an empty CounterMock.
func NewCounterMock() *CounterMock {
	return &CounterMock{counters: make(map[string]int)}
}

func (c *CounterMock) Increment(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
}

func (c *CounterMock) GetAll() (map[string]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.counters))
	for k, v := range c.counters {
		out[k] = v
	}
	return out, nil
}
