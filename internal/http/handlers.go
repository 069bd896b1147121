package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/pubsub"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
	"github.com/slack-go/slack"
)

// respondJSON writes v as JSON with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	respondJSON(w, http.StatusOK, msg)
}

// respondError maps domain errors to status codes.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, tournament.ErrInvalidName), errors.Is(err, tournament.ErrSelfMatch):
		status = http.StatusBadRequest
	case errors.Is(err, tournament.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, tournament.ErrRematch):
		status = http.StatusConflict
	case errors.Is(err, pairing.ErrOddPlayerCount):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	} else {
		log.Warn("Request rejected", "error", err, "status", status)
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler returns the persisted counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get counters from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, counters)
	}
}

func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register request", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		player, err := s.Store.RegisterPlayer(r.Context(), req.Name)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) CountPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := s.Store.CountPlayers(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, countResponse{Count: count})
	}
}

func (s *Server) DeletePlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have deleted all players")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := s.Store.DeletePlayers(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ReportMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode match report", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		match, err := s.Rounds.ReportMatch(r.Context(), req.WinnerID, req.LoserID, isDryRunFromContext(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.ListMatches(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) DeleteMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would have deleted all matches")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := s.Store.DeleteMatches(r.Context()); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Rounds.Standings(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, standings)
	}
}

// NextRoundHandler pairs the next round. A round that could not be paired is
// returned with 409 so callers can tell it apart from a scheduled one.
func (s *Server) NextRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := s.Rounds.NextRound(r.Context(), isDryRunFromContext(r))
		if err != nil {
			respondError(w, err)
			return
		}
		if round.Outcome != pairing.OutcomePaired {
			respondJSON(w, http.StatusConflict, round)
			return
		}
		respondJSON(w, http.StatusOK, round)
	}
}

// ReportMatchPushHandler receives match results from a Pub/Sub push subscription.
// Results that can never be stored are acknowledged so Pub/Sub stops redelivering them.
func (s *Server) ReportMatchPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var envelope pubsub.PushEnvelope
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			log.Error("Failed to decode Pub/Sub envelope", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		log.Debug("Received Pub/Sub message", "subscription", envelope.Subscription, "messageId", envelope.Message.ID)

		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var report pubsub.MatchReport
		if err := s.pubsub.ProcessMessage(rawData, &report); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		_, err = s.Rounds.ReportMatch(r.Context(), report.WinnerID, report.LoserID, isDryRunFromContext(r))
		switch {
		case err == nil:
		case errors.Is(err, tournament.ErrSelfMatch),
			errors.Is(err, tournament.ErrPlayerNotFound),
			errors.Is(err, tournament.ErrRematch):
			log.Warn("Dropping unusable match report", "error", err, "messageId", envelope.Message.ID)
		default:
			log.Error("Failed to report match", "error", err, "messageId", envelope.Message.ID)
			http.Error(w, "Failed to report match", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// StandingsCommandHandler returns a handler for the /standings Slack command.
func (s *Server) StandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Rounds.Standings(r.Context())
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}

		msg, err := s.Notifier.FormatStandingsResponse(standings)
		if err != nil {
			http.Error(w, "Failed to format standings", http.StatusInternalServerError)
			log.Error("Failed to format standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			respondJSON(w, http.StatusOK, msg)
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
