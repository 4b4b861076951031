package sim

import (
	"testing"

	"github.com/opd-ai/go-orrery/pkg/physics"
)

func TestTrailHistoryBound(t *testing.T) {
	th := NewTrailHistory(200)

	for i := 0; i < 250; i++ {
		th.Append("mars", physics.Vector2D{X: float64(i)})
	}

	if th.Len("mars") != 200 {
		t.Fatalf("Len() = %d, expected 200 after 250 appends", th.Len("mars"))
	}

	pts := th.Points("mars")
	// The stored sequence must be the most recent 200 in order: 50..249.
	for i, p := range pts {
		if want := float64(50 + i); p.X != want {
			t.Fatalf("point %d = %v, expected X=%v", i, p, want)
		}
	}
}

func TestTrailHistoryOrderBelowBound(t *testing.T) {
	th := NewTrailHistory(200)
	for i := 0; i < 5; i++ {
		th.Append("venus", physics.Vector2D{X: float64(i), Y: -float64(i)})
	}

	pts := th.Points("venus")
	if len(pts) != 5 {
		t.Fatalf("Len = %d, expected 5", len(pts))
	}
	for i, p := range pts {
		if p.X != float64(i) {
			t.Errorf("point %d = %v, expected X=%d", i, p, i)
		}
	}
}

func TestTrailHistoryClear(t *testing.T) {
	th := NewTrailHistory(10)
	th.Append("mercury", physics.Vector2D{X: 1})
	th.Append("earth", physics.Vector2D{X: 2})

	th.Clear()

	if th.Len("mercury") != 0 || th.Len("earth") != 0 {
		t.Error("Clear() left recorded points behind")
	}

	// History keeps working after a clear.
	th.Append("mercury", physics.Vector2D{X: 3})
	if th.Len("mercury") != 1 {
		t.Errorf("Len after clear+append = %d, expected 1", th.Len("mercury"))
	}
}

func TestTrailHistoryIndependentBodies(t *testing.T) {
	th := NewTrailHistory(3)
	for i := 0; i < 5; i++ {
		th.Append("jupiter", physics.Vector2D{X: float64(i)})
	}
	th.Append("saturn", physics.Vector2D{Y: 9})

	if th.Len("jupiter") != 3 {
		t.Errorf("jupiter Len = %d, expected 3", th.Len("jupiter"))
	}
	if th.Len("saturn") != 1 {
		t.Errorf("saturn Len = %d, expected 1", th.Len("saturn"))
	}
}
