package chat

import (
	"encoding/json"
	"errors"
	"fmt"
)

type EventType string

const (
	// Client to server event types
	EventTypeJoin    EventType = "join"
	EventTypeMessage EventType = "message"

	// Server to client event types
	EventTypeError EventType = "error"
)

// Validation errors for client events
var (
	ErrEventTypeRequired = errors.New("event type is required")
	ErrUnknownEventType  = errors.New("unknown event type")
	ErrRoomRequired      = errors.New("room is required")
	ErrUsernameRequired  = errors.New("username is required")
	ErrMessageRequired   = errors.New("msg is required")
)

// ClientEvent is a message sent from a client to the relay
type ClientEvent struct {
	Type     EventType `json:"type"`
	Room     string    `json:"room"`
	Username string    `json:"username"`
	Msg      string    `json:"msg,omitempty"`
}

// ServerEvent is a message broadcast from the relay to room members
type ServerEvent struct {
	Type  EventType `json:"type"`
	Room  string    `json:"room,omitempty"`
	Msg   string    `json:"msg,omitempty"`
	Error string    `json:"error,omitempty"`
}

// NewMessageEvent creates a broadcast event carrying the given text
func NewMessageEvent(room, text string) *ServerEvent {
	return &ServerEvent{
		Type: EventTypeMessage,
		Room: room,
		Msg:  text,
	}
}

// NewErrorEvent creates an error event sent back to the offending client only
func NewErrorEvent(err error) *ServerEvent {
	return &ServerEvent{
		Type:  EventTypeError,
		Error: err.Error(),
	}
}

// ParseClientEvent parses a JSON event from a client
func ParseClientEvent(data []byte) (*ClientEvent, error) {
	var ev ClientEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse client event: %w", err)
	}
	if ev.Type == "" {
		return nil, ErrEventTypeRequired
	}
	return &ev, nil
}

// Validate checks the required fields for the event type. A malformed event
// fails here and nothing is broadcast.
func (e *ClientEvent) Validate() error {
	switch e.Type {
	case EventTypeJoin:
		if e.Room == "" {
			return ErrRoomRequired
		}
		if e.Username == "" {
			return ErrUsernameRequired
		}
	case EventTypeMessage:
		if e.Room == "" {
			return ErrRoomRequired
		}
		if e.Username == "" {
			return ErrUsernameRequired
		}
		if e.Msg == "" {
			return ErrMessageRequired
		}
	default:
		return ErrUnknownEventType
	}
	return nil
}
