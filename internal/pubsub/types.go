package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic name.
type EventType string

const (
	EventRoundPaired   EventType = "round-paired"
	EventMatchReported EventType = "match-reported"
	// EventReportMatch carries results submitted from outside the service.
	// They are delivered to the push endpoint and re-announced as EventMatchReported.
	EventReportMatch EventType = "report-match"
)

// MatchReport is the payload of EventReportMatch and EventMatchReported.
type MatchReport struct {
	WinnerID int64 `msgpack:"winner_id"`
	LoserID  int64 `msgpack:"loser_id"`
}

// PushEnvelope is the JSON body Pub/Sub push subscriptions deliver over HTTP.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"`
	} `json:"message"`
}
