// Package hud formats simulation state for status displays. Hosts own the
// presentation; this package only produces strings so the graphical HUD,
// the terminal footer, and tests all agree on the wording.
package hud

import (
	"fmt"

	"github.com/opd-ai/go-orrery/pkg/ephemeris"
	"github.com/opd-ai/go-orrery/pkg/sim"
)

// Status is one formatted snapshot of the simulation for display.
type Status struct {
	Date      string
	Time      string
	Frame     string
	Direction string
	Speed     string
	Zoom      string
	Provider  string
}

// Format renders a state snapshot into display strings.
func Format(st *sim.State) Status {
	year, month, day, hour, minute, second := ephemeris.CalendarFromDays(st.Days)

	dir := "forward"
	if st.Direction == sim.Reverse {
		dir = "reverse"
	}

	speed := fmt.Sprintf("%g", st.Speed)
	if st.Speed == 0 {
		speed = "paused"
	}

	return Status{
		Date:      fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Time:      fmt.Sprintf("%02d:%02d:%02d UTC", hour, minute, second),
		Frame:     st.Frame.String(),
		Direction: dir,
		Speed:     speed,
		Zoom:      fmt.Sprintf("%.4g×", st.Zoom),
		Provider:  st.ProviderName,
	}
}

// Line renders the snapshot as a single status line.
func Line(st *sim.State) string {
	s := Format(st)
	return fmt.Sprintf("%s %s | %s | %s @ %s | zoom %s | %s",
		s.Date, s.Time, s.Frame, s.Direction, s.Speed, s.Zoom, s.Provider)
}
