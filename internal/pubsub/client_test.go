package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalClient_RoundTripsMatchReport(t *testing.T) {
	c := New("")
	defer c.Close()

	report := MatchReport{WinnerID: 3, LoserID: 8}
	require.NoError(t, c.SendMessage(EventMatchReported, report))

	data, err := Encode(report)
	require.NoError(t, err)

	var decoded MatchReport
	require.NoError(t, c.ProcessMessage(data, &decoded))
	assert.Equal(t, report, decoded)
}

func TestProcessMessage_RejectsGarbage(t *testing.T) {
	c := New("")
	var decoded MatchReport
	assert.Error(t, c.ProcessMessage([]byte{0xc1}, &decoded))
}
