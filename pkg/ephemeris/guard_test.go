package ephemeris

import (
	"context"
	"errors"
	"testing"

	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// flakyProvider fails for the first failCount calls, then would succeed.
// The guard must never give it the chance.
type flakyProvider struct {
	failCount int
	calls     int
	result    PositionSet
}

func (f *flakyProvider) Name() string { return "flaky" }

func (f *flakyProvider) Compute(_ context.Context, _ float64) (PositionSet, error) {
	f.calls++
	if f.calls <= f.failCount {
		return PositionSet{}, errors.New("upstream unavailable")
	}
	return f.result, nil
}

// offsetResult marks provider output so tests can tell it from the linear
// model: the flaky provider reports mercury at a distinct position.
func offsetResult(ids []string) PositionSet {
	ps := PositionSet{Bodies: make(map[string]physics.Vector2D)}
	ps.Bodies[Sun] = physics.Vector2D{}
	for _, id := range ids {
		ps.Bodies[id] = physics.Vector2D{X: 99, Y: 99}
	}
	return ps
}

func TestGuardFallsBackPermanently(t *testing.T) {
	cfg := config.DefaultConfig()
	ids := cfg.BodyIDs()
	primary := &flakyProvider{failCount: 1, result: offsetResult(ids)}
	guard := NewGuard(primary, NewLinear(cfg.Bodies), ids, nil)

	ctx := context.Background()

	// First call fails upstream; the guard absorbs it.
	ps, err := guard.Compute(ctx, 0)
	if err != nil {
		t.Fatalf("Compute() returned error despite fallback: %v", err)
	}
	if ps.Bodies["mercury"].X == 99 {
		t.Fatal("first call served by primary that reported failure")
	}
	if !guard.Disabled() {
		t.Fatal("guard not disabled after first failure")
	}

	// The fault condition has cleared, but the session policy is permanent.
	for i := 0; i < 5; i++ {
		ps, err = guard.Compute(ctx, float64(i))
		if err != nil {
			t.Fatalf("Compute() returned error: %v", err)
		}
		if ps.Bodies["mercury"].X == 99 {
			t.Fatal("guard retried the disabled provider")
		}
	}
	if primary.calls != 1 {
		t.Errorf("primary called %d times, expected exactly 1", primary.calls)
	}
}

func TestGuardRejectsMalformedResults(t *testing.T) {
	cfg := config.DefaultConfig()
	ids := cfg.BodyIDs()

	// Provider succeeds but omits every body: malformed, treated as failure.
	incomplete := &flakyProvider{failCount: 0, result: PositionSet{
		Bodies: map[string]physics.Vector2D{Sun: {}},
	}}
	guard := NewGuard(incomplete, NewLinear(cfg.Bodies), ids, nil)

	ps, err := guard.Compute(context.Background(), 10)
	if err != nil {
		t.Fatalf("Compute() returned error: %v", err)
	}
	if !guard.Disabled() {
		t.Error("guard accepted a malformed position set")
	}
	if err := ps.Validate(ids); err != nil {
		t.Errorf("fallback result failed validation: %v", err)
	}
}

func TestGuardWithoutPrimary(t *testing.T) {
	cfg := config.DefaultConfig()
	guard := NewGuard(nil, NewLinear(cfg.Bodies), cfg.BodyIDs(), nil)

	if guard.Name() != "linear" {
		t.Errorf("Name() = %q, expected linear", guard.Name())
	}
	ps, err := guard.Compute(context.Background(), 0)
	if err != nil {
		t.Fatalf("Compute() returned error: %v", err)
	}
	if sun := ps.Bodies[Sun]; sun.X != 0 || sun.Y != 0 {
		t.Errorf("sun = %v, expected origin", sun)
	}
}

func TestGuardPublishesDisableEvent(t *testing.T) {
	cfg := config.DefaultConfig()
	ids := cfg.BodyIDs()
	bus := event.NewEventBus()

	var got *event.ProviderEvent
	bus.Subscribe(event.ProviderDisabled, func(e event.Event) {
		got, _ = e.(*event.ProviderEvent)
	})

	primary := &flakyProvider{failCount: 1, result: offsetResult(ids)}
	guard := NewGuard(primary, NewLinear(cfg.Bodies), ids, bus)

	if _, err := guard.Compute(context.Background(), 0); err != nil {
		t.Fatalf("Compute() returned error: %v", err)
	}
	if got == nil {
		t.Fatal("no provider_disabled event published")
	}
	if got.Name != "flaky" {
		t.Errorf("event provider name = %q, expected flaky", got.Name)
	}
}
