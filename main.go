package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tribble/internal/config"
	"github.com/mauv0809/swiss-tribble/internal/database"
	server "github.com/mauv0809/swiss-tribble/internal/http"
	"github.com/mauv0809/swiss-tribble/internal/metrics"
	"github.com/mauv0809/swiss-tribble/internal/notifier"
	"github.com/mauv0809/swiss-tribble/internal/notifier/slack"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/pubsub"
	"github.com/mauv0809/swiss-tribble/internal/rounds"
	"github.com/mauv0809/swiss-tribble/internal/scheduler"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.Database)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := tournament.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	counters := metrics.NewCounterStore(db)

	var notif notifier.Notifier = notifier.LogNotifier{}
	if cfg.SlackEnabled() {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("Slack is not configured, notifications will only be logged")
	}

	ps := pubsub.New(cfg.ProjectID)
	defer ps.Close()

	engine := pairing.New(cfg.Pairing.NodeBudget)
	roundsSvc := rounds.New(store, engine, notif, metricsSvc, counters, ps)

	s := server.NewServer(store, roundsSvc, metricsSvc, metricsHandler, counters, cfg, notif, ps)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
			return err
		}
		log.Info("Server gracefully stopped")
		return nil
	})

	if cfg.StandingsInterval > 0 {
		sched, err := scheduler.New(roundsSvc, cfg.StandingsInterval)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %s", err)
		}
		g.Go(func() error {
			return sched.Run(gCtx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("Server error", "error", err)
	}
	log.Info("Server process shutting down")
}
