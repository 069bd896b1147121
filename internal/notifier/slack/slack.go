package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tribble/internal/metrics"
	"github.com/mauv0809/swiss-tribble/internal/notifier"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendPairings(round *tournament.Round, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatPairings(round), dryRun)
	return err
}

func (s *Notifier) SendPairingFailure(round *tournament.Round, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatPairingFailure(round), dryRun)
	return err
}

func (s *Notifier) SendStandings(standings []pairing.Player, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatStandings(standings), dryRun)
	return err
}

// FormatStandingsResponse formats the standings for a slash command response.
func (s *Notifier) FormatStandingsResponse(standings []pairing.Player) (any, error) {
	return s.formatStandings(standings), nil
}

func record(p pairing.Player) string {
	return fmt.Sprintf("%s (%d-%d)", p.Name, p.Wins, p.Matches-p.Wins)
}

// formatPairings creates the Slack message announcing a round using Block Kit.
func (s *Notifier) formatPairings(round *tournament.Round) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("♟️ Round %d pairings ♟️", round.Number), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var boards []string
	for i, pair := range round.Pairs {
		boards = append(boards, fmt.Sprintf("Board %d: %s vs %s", i+1, record(pair.A), record(pair.B)))
	}
	if len(boards) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(boards, "\n"), true, false), nil, nil))
	} else {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered.", true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPairingFailure creates the operator alert for a round that could not be paired.
func (s *Notifier) formatPairingFailure(round *tournament.Round) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⚠️ Round %d could not be paired", round.Number), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var reason string
	switch round.Outcome {
	case pairing.OutcomeBudgetExhausted:
		reason = fmt.Sprintf("The search gave up after %d tentative pairings. A valid pairing may still exist.", round.Nodes)
	default:
		reason = "Every possible pairing contains a rematch. The round needs a manual decision."
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", reason, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates the standings table.
func (s *Notifier) formatStandings(standings []pairing.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for i, p := range standings {
		lines = append(lines, fmt.Sprintf("%d. %s: %d wins from %d matches", i+1, p.Name, p.Wins, p.Matches))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
