package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/swiss-tribble/internal/config"
	"github.com/mauv0809/swiss-tribble/internal/metrics"
	"github.com/mauv0809/swiss-tribble/internal/notifier"
	"github.com/mauv0809/swiss-tribble/internal/pubsub"
	"github.com/mauv0809/swiss-tribble/internal/rounds"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
)

type Server struct {
	Store          tournament.Store
	Rounds         *rounds.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Counters       metrics.CounterStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         chi.Router
	pubsub         pubsub.PubSubClient
}

type registerRequest struct {
	Name string `json:"name"`
}

type reportRequest struct {
	WinnerID int64 `json:"winner_id"`
	LoserID  int64 `json:"loser_id"`
}

type countResponse struct {
	Count int `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}
