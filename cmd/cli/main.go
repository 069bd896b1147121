package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "swiss-cli",
	Short: "A CLI to interact with the swiss-tribble server",
	Long: `A command-line interface for registering players, reporting matches
and pairing rounds on a running swiss-tribble server.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Ask the server not to publish events or post to Slack")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
