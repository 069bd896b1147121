package http

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey contextKey = "dryRun"
)

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// slackVerificationMiddleware rejects requests that do not carry a valid Slack
// signature. With an empty secret every request is let through.
func slackVerificationMiddleware(signingSecret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if signingSecret == "" {
				log.Warn("Slack signing secret not configured, skipping verification")
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				log.Error("Failed to read request body", "error", err)
				http.Error(w, "Failed to read request body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewBuffer(body))

			verifier, err := slack.NewSecretsVerifier(r.Header, signingSecret)
			if err != nil {
				log.Warn("Invalid Slack request headers", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if _, err := verifier.Write(body); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if err := verifier.Ensure(); err != nil {
				log.Warn("Slack signature verification failed", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
