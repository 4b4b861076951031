package ephemeris

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/logging"
)

// Guard wraps an optional external provider with failure isolation. The
// contract is strict: the first failure — an error, a cancelled context, or
// a malformed result — disables the external provider for the remainder of
// the session and every subsequent call is served by the linear model.
// There is no per-call retry; repeated failures would degrade frame pacing.
type Guard struct {
	primary  Provider // nil when no external provider was supplied
	fallback *Linear
	ids      []string

	breaker  *gobreaker.CircuitBreaker
	disabled bool

	logger *logging.Logger
	bus    *event.Bus
}

// NewGuard creates a Guard. primary may be nil, in which case the linear
// fallback serves every call. bus may be nil when no one listens.
func NewGuard(primary Provider, fallback *Linear, ids []string, bus *event.Bus) *Guard {
	g := &Guard{
		primary:  primary,
		fallback: fallback,
		ids:      ids,
		logger:   logging.NewLogger(),
		bus:      bus,
	}

	settings := gobreaker.Settings{
		Name: "ephemeris-provider",
		// One failure opens the circuit for good: Timeout is long enough
		// that no session will see a half-open probe, and the disabled
		// flag makes the policy explicit even if one did.
		Timeout: 24 * 365 * time.Hour,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				g.disabled = true
			}
		},
	}
	g.breaker = gobreaker.NewCircuitBreaker(settings)

	return g
}

// Name implements Provider, reporting the provider currently serving calls.
func (g *Guard) Name() string {
	if g.Active() == g.fallback {
		return g.fallback.Name()
	}
	return g.primary.Name()
}

// Active returns the provider that will serve the next Compute call.
func (g *Guard) Active() Provider {
	if g.primary == nil || g.disabled {
		return g.fallback
	}
	return g.primary
}

// Disabled reports whether the external provider has been tripped.
func (g *Guard) Disabled() bool { return g.disabled }

// Compute implements Provider. It never returns an error: any external
// failure is absorbed by falling back to the linear model, which is exact
// and total.
func (g *Guard) Compute(ctx context.Context, days float64) (PositionSet, error) {
	if g.primary == nil || g.disabled {
		return g.fallback.At(days), nil
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		ps, err := g.primary.Compute(ctx, days)
		if err != nil {
			return nil, err
		}
		if err := ps.Validate(g.ids); err != nil {
			return nil, err
		}
		return ps, nil
	})
	if err != nil {
		g.disabled = true
		g.logger.Error(ctx, "external ephemeris provider disabled for this session", err,
			"provider", g.primary.Name(),
		)
		if g.bus != nil {
			g.bus.Publish(event.NewProviderEvent(g, g.primary.Name(), err.Error()))
		}
		return g.fallback.At(days), nil
	}

	return result.(PositionSet), nil
}
