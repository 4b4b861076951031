package sim

import (
	"github.com/opd-ai/go-orrery/pkg/physics"
)

// TrailHistory keeps a bounded, ordered sequence of recent anchor-relative
// positions per body. It feeds only the trail layer; nothing else reads it.
// One entry is appended per render tick per body, oldest evicted first.
type TrailHistory struct {
	capacity int
	points   map[string][]physics.Vector2D
}

// NewTrailHistory creates an empty history with the given per-body bound.
func NewTrailHistory(capacity int) *TrailHistory {
	return &TrailHistory{
		capacity: capacity,
		points:   make(map[string][]physics.Vector2D),
	}
}

// Append records one relative position for a body, evicting the oldest
// entry once the bound is reached.
func (t *TrailHistory) Append(id string, pos physics.Vector2D) {
	pts := t.points[id]
	if len(pts) >= t.capacity {
		copy(pts, pts[1:])
		pts[len(pts)-1] = pos
	} else {
		pts = append(pts, pos)
	}
	t.points[id] = pts
}

// Points returns the recorded sequence for a body, oldest first. The
// returned slice is owned by the history; callers must not mutate it.
func (t *TrailHistory) Points(id string) []physics.Vector2D {
	return t.points[id]
}

// Len returns the number of recorded points for a body.
func (t *TrailHistory) Len(id string) int {
	return len(t.points[id])
}

// Clear drops every recorded point. Frame switches and discontinuous time
// jumps make anchor-relative history meaningless, so those actions clear.
func (t *TrailHistory) Clear() {
	for id := range t.points {
		delete(t.points, id)
	}
}
