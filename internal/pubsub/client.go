package pubsub

import (
	"context"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub. With an empty projectID events are only
// logged, which keeps local runs free of cloud credentials.
func New(projectID string) PubSubClient {
	if projectID == "" {
		log.Info("No GCP project configured, events will only be logged")
		return &client{}
	}
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	teardown := func() {
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		teardown: teardown,
	}
}

func (c *client) SendMessage(topic EventType, data any) error {
	msgpackData, err := Encode(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	if c.client == nil {
		log.Info("Event", "topic", topic, "bytes", len(msgpackData))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	message := &pubsub.Message{
		Data: msgpackData,
	}
	result := c.client.Topic(string(topic)).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("SendMessage", "topic", topic, "serverID", serverID)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

func (c *client) Close() {
	if c.teardown != nil {
		c.teardown()
	}
}

// Encode marshals an event payload the same way SendMessage does.
func Encode(data any) ([]byte, error) {
	return msgpack.Marshal(data)
}
