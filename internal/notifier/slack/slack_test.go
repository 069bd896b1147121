package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/swiss-tribble/internal/metrics"
	"github.com/mauv0809/swiss-tribble/internal/pairing"
	"github.com/mauv0809/swiss-tribble/internal/tournament"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testRound() *tournament.Round {
	return &tournament.Round{
		Number:  3,
		Outcome: pairing.OutcomePaired,
		Pairs: []pairing.Pair{
			{A: pairing.Player{ID: 1, Name: "Ada", Wins: 2, Matches: 2}, B: pairing.Player{ID: 3, Name: "Cy", Wins: 1, Matches: 2}},
			{A: pairing.Player{ID: 2, Name: "Bo", Wins: 1, Matches: 2}, B: pairing.Player{ID: 4, Name: "Di", Wins: 0, Matches: 2}},
		},
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendPairings(testRound(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatPairings(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatPairings(testRound())
	require.Len(t, msg.Blocks.BlockSet, 2)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "♟️ Round 3 pairings ♟️", header.Text.Text)

	boards, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Board 1: Ada (2-0) vs Cy (1-1)\nBoard 2: Bo (1-1) vs Di (0-2)", boards.Text.Text)
}

func TestFormatPairingFailure(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("infeasible", func(t *testing.T) {
		msg := client.formatPairingFailure(&tournament.Round{Number: 5, Outcome: pairing.OutcomeInfeasible})
		require.Len(t, msg.Blocks.BlockSet, 2)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Contains(t, section.Text.Text, "rematch")
	})

	t.Run("budget exhausted", func(t *testing.T) {
		msg := client.formatPairingFailure(&tournament.Round{Number: 5, Outcome: pairing.OutcomeBudgetExhausted, Nodes: 42})
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Contains(t, section.Text.Text, "42 tentative pairings")
	})
}

func TestFormatStandings(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("lists players in order", func(t *testing.T) {
		msg := client.formatStandings([]pairing.Player{
			{ID: 1, Name: "Ada", Wins: 2, Matches: 2},
			{ID: 2, Name: "Bo", Wins: 0, Matches: 2},
		})
		require.Len(t, msg.Blocks.BlockSet, 2)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "1. Ada: 2 wins from 2 matches\n2. Bo: 0 wins from 2 matches", section.Text.Text)
	})

	t.Run("empty standings", func(t *testing.T) {
		msg := client.formatStandings(nil)
		section := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		assert.Equal(t, "No players registered yet.", section.Text.Text)
	})
}
