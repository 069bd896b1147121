package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mauv0809/swiss-tribble/internal/config"
	"github.com/mauv0809/swiss-tribble/internal/metrics"
	"github.com/mauv0809/swiss-tribble/internal/notifier"
	"github.com/mauv0809/swiss-tribble/internal/pubsub"
	"github.com/mauv0809/swiss-tribble/internal/rounds"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
)

func NewServer(store tournament.Store, roundsSvc *rounds.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, counters metrics.CounterStore, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Rounds:         roundsSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Counters:       counters,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         chi.NewRouter(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Use(middleware.Recoverer)

	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Get("/health", Chain(s.HealthCheckHandler(), paramsMiddleware).ServeHTTP)
	s.Router.Get("/stats", Chain(s.StatsHandler(), paramsMiddleware).ServeHTTP)

	s.Router.Route("/players", func(r chi.Router) {
		r.Post("/", Chain(s.RegisterPlayerHandler(), paramsMiddleware).ServeHTTP)
		r.Delete("/", Chain(s.DeletePlayersHandler(), paramsMiddleware).ServeHTTP)
		r.Get("/count", Chain(s.CountPlayersHandler(), paramsMiddleware).ServeHTTP)
	})
	s.Router.Route("/matches", func(r chi.Router) {
		r.Get("/", Chain(s.ListMatchesHandler(), paramsMiddleware).ServeHTTP)
		r.Post("/", Chain(s.ReportMatchHandler(), paramsMiddleware).ServeHTTP)
		r.Delete("/", Chain(s.DeleteMatchesHandler(), paramsMiddleware).ServeHTTP)
	})
	s.Router.Get("/standings", Chain(s.StandingsHandler(), paramsMiddleware).ServeHTTP)
	s.Router.Post("/rounds", Chain(s.NextRoundHandler(), paramsMiddleware).ServeHTTP)

	s.Router.Post("/pubsub/report-match", Chain(s.ReportMatchPushHandler(), paramsMiddleware).ServeHTTP)
	s.Router.Post("/slack/command/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware, slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)).ServeHTTP)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
