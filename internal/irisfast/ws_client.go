package irisfast

import "context"

// MessageCallback receives inbound chat lines. Callbacks run on the listener
// goroutine, so long work belongs in a goroutine of its own.
type MessageCallback func(message *Message)

// StateCallback observes connection transitions, reconnects included.
type StateCallback func(state WebSocketState)

// WSClient is the inbound half of the Iris bridge.
type WSClient interface {
	Connect(ctx context.Context) error
	Connected() bool
	State() WebSocketState
	OnMessage(cb MessageCallback) int
	RemoveMessageCallback(id int)
	OnStateChange(cb StateCallback) int
	RemoveStateCallback(id int)
	Close(ctx context.Context) error
}
