package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swiss_rounds_total",
			Help: "The total number of pairing computations, by outcome.",
		}, []string{"outcome"}),
		PairingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "swiss_pairing_duration_seconds",
			Help:    "The duration of a single pairing computation.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		SearchNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "swiss_pairing_search_nodes",
			Help:    "The number of tentative pairings placed by the search.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
		MatchesReported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_matches_reported_total",
			Help: "The total number of match results recorded.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swiss_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "swiss_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Rounds,
		s.PairingDuration,
		s.SearchNodes,
		s.MatchesReported,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncRounds(outcome string) {
	s.Rounds.WithLabelValues(outcome).Inc()
}

func (s *Service) ObservePairingDuration(duration float64) {
	s.PairingDuration.Observe(duration)
}

func (s *Service) ObserveSearchNodes(nodes int) {
	s.SearchNodes.Observe(float64(nodes))
}

func (s *Service) IncMatchesReported() {
	s.MatchesReported.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
