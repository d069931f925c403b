package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/importdesk/pkg/logger"
)

type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	position    int
	allEvents   []Event
	log         *logger.Logger
}

func NewInMemoryEventStore(log *logger.Logger) *InMemoryEventStore {
	if log == nil {
		log = logger.Nop()
	}
	return &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
		log:         log,
	}
}

var _ EventStore = (*InMemoryEventStore)(nil)

func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()
	eventWithVersion := s.append(streamID, event)
	s.mutex.Unlock()

	s.notifySubscribers(eventWithVersion)
	return nil
}

func (s *InMemoryEventStore) append(streamID string, event Event) BaseEvent {
	eventWithVersion := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: len(s.streams[streamID]) + 1,
	}

	s.streams[streamID] = append(s.streams[streamID], eventWithVersion)
	s.allEvents = append(s.allEvents, eventWithVersion)
	s.position++
	return eventWithVersion
}

// Restore replays a previously saved journal without notifying subscribers.
// Versions are renumbered per stream in journal order.
func (s *InMemoryEventStore) Restore(journal []BaseEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, event := range journal {
		if event.Stream == "" || event.EventType == "" {
			return fmt.Errorf("journal entry %d: missing stream or type", i+1)
		}
	}
	for _, event := range journal {
		s.append(event.Stream, event)
	}
	return nil
}

// Journal returns every event in append order in its storable form
func (s *InMemoryEventStore) Journal() []BaseEvent {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	journal := make([]BaseEvent, 0, len(s.allEvents))
	for _, event := range s.allEvents {
		journal = append(journal, event.(BaseEvent))
	}
	return journal
}

func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	if fromVersion < 1 {
		fromVersion = 1
	}

	if fromVersion > len(events) {
		return []Event{}, nil
	}

	return append([]Event(nil), events[fromVersion-1:]...), nil
}

func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}

	if fromPosition >= len(s.allEvents) {
		return []Event{}, nil
	}

	return append([]Event(nil), s.allEvents[fromPosition:]...), nil
}

func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}

	return nil
}

// notifySubscribers runs handlers on the caller's goroutine; a failing
// handler is logged and does not stop the others
func (s *InMemoryEventStore) notifySubscribers(event Event) {
	s.mutex.RLock()
	handlers := append([]EventHandler(nil), s.subscribers[event.Type()]...)
	s.mutex.RUnlock()

	for _, handler := range handlers {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		if err := handler.Handle(event); err != nil {
			ctx := s.log.WithFields(context.Background(), map[string]any{
				"event_type": event.Type(),
				"stream":     event.StreamID(),
			})
			s.log.Error(ctx, "event handler failed", err)
		}
	}
}
