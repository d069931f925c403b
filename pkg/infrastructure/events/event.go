package events

import (
	"encoding/json"
	"fmt"
	"time"
)

type Event interface {
	Type() string
	StreamID() string
	Data() json.RawMessage
	Timestamp() time.Time
	Version() int
}

type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	ReadAllEvents(fromPosition int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
}

// BaseEvent is the stored form of every event; its payload stays encoded so
// a journal round-trips through the key-value store unchanged
type BaseEvent struct {
	EventType    string          `json:"type"`
	Stream       string          `json:"stream"`
	EventData    json.RawMessage `json:"data"`
	EventTime    time.Time       `json:"time"`
	EventVersion int             `json:"version"`
}

func (e BaseEvent) Type() string {
	return e.EventType
}

func (e BaseEvent) StreamID() string {
	return e.Stream
}

func (e BaseEvent) Data() json.RawMessage {
	return e.EventData
}

func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

func (e BaseEvent) Version() int {
	return e.EventVersion
}

// NewEvent encodes data as the payload of an event recorded at at
func NewEvent(eventType, streamID string, data any, at time.Time) (Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding %s event: %w", eventType, err)
	}
	return BaseEvent{
		EventType:    eventType,
		Stream:       streamID,
		EventData:    payload,
		EventTime:    at.UTC(),
		EventVersion: 1,
	}, nil
}

// Decode unpacks an event payload into target
func Decode(event Event, target any) error {
	if err := json.Unmarshal(event.Data(), target); err != nil {
		return fmt.Errorf("decoding %s event: %w", event.Type(), err)
	}
	return nil
}
