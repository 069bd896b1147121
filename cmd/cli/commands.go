package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(resetMatchesCmd)
	rootCmd.AddCommand(resetPlayersCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <name>",
	Short: "Register a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/players", map[string]string{"name": args[0]})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <winner-id> <loser-id>",
	Short: "Report the result of a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		winner, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid winner id %q: %w", args[0], err)
		}
		loser, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid loser id %q: %w", args[1], err)
		}
		return performRequest(http.MethodPost, "/matches", map[string]int64{"winner_id": winner, "loser_id": loser})
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the current standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/standings", nil)
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/players/count", nil)
	},
}

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Pair the next round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/rounds", nil)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List reported matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/matches", nil)
	},
}

var resetMatchesCmd = &cobra.Command{
	Use:   "reset-matches",
	Short: "Delete every reported match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/matches", nil)
	},
}

var resetPlayersCmd = &cobra.Command{
	Use:   "reset-players",
	Short: "Delete every player and match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, "/players", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get persisted counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/stats", nil)
	},
}

func performRequest(method, endpoint string, payload any) error {
	url := host + endpoint
	if dryRun {
		url += "?dry_run=true"
	}
	fmt.Printf("Making %s request to %s\n", method, url)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
