package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	// IncRounds counts a finished pairing computation by its outcome.
	IncRounds(outcome string)
	ObservePairingDuration(duration float64)
	ObserveSearchNodes(nodes int)
	IncMatchesReported()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// CounterStore persists simple counters across restarts.
type CounterStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
