// Package event provides the pub/sub bus the simulation uses to announce
// state changes to front-ends (HUD refresh, status lines) without coupling
// core packages to any particular host.
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	ClockChanged     Type = "clock_changed"
	FrameChanged     Type = "frame_changed"
	DirectionChanged Type = "direction_changed"
	SpeedChanged     Type = "speed_changed"
	DateSet          Type = "date_set"
	TrailsCleared    Type = "trails_cleared"
	ProviderDisabled Type = "provider_disabled"
	ViewReset        Type = "view_reset"
	SnapshotSaved    Type = "snapshot_saved"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// ClockEvent reports a change to simulated time or its rate of advance.
type ClockEvent struct {
	BaseEvent
	Days      float64
	Speed     float64
	Direction int
}

// NewClockEvent creates a new clock event
func NewClockEvent(eventType Type, source interface{}, days, speed float64, direction int) *ClockEvent {
	return &ClockEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Days:      days,
		Speed:     speed,
		Direction: direction,
	}
}

// FrameEvent reports a coordinate-frame switch.
type FrameEvent struct {
	BaseEvent
	Frame string
}

// NewFrameEvent creates a new frame event
func NewFrameEvent(source interface{}, frame string) *FrameEvent {
	return &FrameEvent{
		BaseEvent: BaseEvent{
			EventType: FrameChanged,
			Source:    source,
		},
		Frame: frame,
	}
}

// ProviderEvent reports the external ephemeris provider being disabled for
// the rest of the session.
type ProviderEvent struct {
	BaseEvent
	Name   string
	Reason string
}

// NewProviderEvent creates a new provider event
func NewProviderEvent(source interface{}, name, reason string) *ProviderEvent {
	return &ProviderEvent{
		BaseEvent: BaseEvent{
			EventType: ProviderDisabled,
			Source:    source,
		},
		Name:   name,
		Reason: reason,
	}
}

// SnapshotEvent reports a scene snapshot written to disk.
type SnapshotEvent struct {
	BaseEvent
	Path string
}

// NewSnapshotEvent creates a new snapshot event
func NewSnapshotEvent(source interface{}, path string) *SnapshotEvent {
	return &SnapshotEvent{
		BaseEvent: BaseEvent{
			EventType: SnapshotSaved,
			Source:    source,
		},
		Path: path,
	}
}
