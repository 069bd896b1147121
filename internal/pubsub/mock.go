package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// MockPubSubClient is a mock implementation of PubSubClient for testing.
// It is safe for concurrent use.
type MockPubSubClient struct {
	mu sync.Mutex

	// Spies for method calls
	SendMessageFunc func(topic EventType, data any) error

	// Call records
	SendMessageCalls    []SendMessageCall
	ProcessMessageCalls []ProcessMessageCall
}

// SendMessageCall holds the arguments for a call to SendMessage.
type SendMessageCall struct {
	Topic EventType
	Data  any
}

// ProcessMessageCall holds the arguments for a call to ProcessMessage.
type ProcessMessageCall struct {
	Data        []byte
	ReturnValue any
}

var _ PubSubClient = (*MockPubSubClient)(nil)

// NewMock creates a new mock PubSubClient.
func NewMock() *MockPubSubClient {
	return &MockPubSubClient{}
}

// SendMessage records the call and executes the mock function if provided.
func (m *MockPubSubClient) SendMessage(topic EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMessageCalls = append(m.SendMessageCalls, SendMessageCall{Topic: topic, Data: data})
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(topic, data)
	}
	return nil
}

// ProcessMessage records the call and decodes data with msgpack like the real client.
func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	m.mu.Lock()
	m.ProcessMessageCalls = append(m.ProcessMessageCalls, ProcessMessageCall{Data: data, ReturnValue: returnValue})
	m.mu.Unlock()
	return msgpack.Unmarshal(data, returnValue)
}

func (m *MockPubSubClient) Close() {}

// Calls returns a copy of the recorded SendMessage calls.
func (m *MockPubSubClient) Calls() []SendMessageCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendMessageCall(nil), m.SendMessageCalls...)
}
