package event

import (
	"testing"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewEventBus()

	var received []Event
	bus.Subscribe(FrameChanged, func(e Event) {
		received = append(received, e)
	})

	bus.Publish(NewFrameEvent(nil, "geocentric"))

	if len(received) != 1 {
		t.Fatalf("received %d events, expected 1", len(received))
	}
	fe, ok := received[0].(*FrameEvent)
	if !ok {
		t.Fatalf("received event type %T, expected *FrameEvent", received[0])
	}
	if fe.Frame != "geocentric" {
		t.Errorf("Frame = %q, expected %q", fe.Frame, "geocentric")
	}
}

func TestBusIgnoresUnsubscribedTypes(t *testing.T) {
	bus := NewEventBus()

	called := false
	bus.Subscribe(TrailsCleared, func(Event) { called = true })

	bus.Publish(NewClockEvent(ClockChanged, nil, 1.5, 2, 1))

	if called {
		t.Error("handler for trails_cleared fired on clock_changed event")
	}
}

func TestBusMultipleHandlers(t *testing.T) {
	bus := NewEventBus()

	count := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe(ProviderDisabled, func(Event) { count++ })
	}

	bus.Publish(NewProviderEvent(nil, "vsop87", "data not found"))

	if count != 3 {
		t.Errorf("handlers fired %d times, expected 3", count)
	}
}

func TestClockEventFields(t *testing.T) {
	e := NewClockEvent(SpeedChanged, nil, -0.5, 2, -1)
	if e.GetType() != SpeedChanged {
		t.Errorf("GetType() = %v, expected %v", e.GetType(), SpeedChanged)
	}
	if e.Days != -0.5 || e.Speed != 2 || e.Direction != -1 {
		t.Errorf("unexpected payload: %+v", e)
	}
}
