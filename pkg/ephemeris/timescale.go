package ephemeris

import (
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
)

// The reference epoch is J2000: 2000-01-01 12:00 UTC, JD 2451545.0. Every
// days value in the system is an offset from this instant, negative before
// it.

// DaysFromTime converts a wall-clock instant to epoch-relative days.
func DaysFromTime(t time.Time) float64 {
	return julian.TimeToJD(t.UTC()) - base.J2000
}

// TimeFromDays converts epoch-relative days back to a wall-clock instant.
func TimeFromDays(days float64) time.Time {
	return julian.JDToTime(base.J2000 + days)
}

// DaysFromCalendar converts Gregorian calendar fields (UTC) to
// epoch-relative days. Hour, minute and second refine the day fraction.
func DaysFromCalendar(year, month, day, hour, minute, second int) float64 {
	d := float64(day) +
		float64(hour)/24 +
		float64(minute)/1440 +
		float64(second)/86400
	return julian.CalendarGregorianToJD(year, month, d) - base.J2000
}

// CalendarFromDays converts epoch-relative days to Gregorian calendar
// fields (UTC).
func CalendarFromDays(days float64) (year, month, day, hour, minute, second int) {
	y, m, d := julian.JDToCalendar(base.J2000 + days)
	day = int(d)
	frac := d - float64(day)
	secs := int(frac*86400 + 0.5)
	if secs >= 86400 {
		// rounding carried past midnight
		secs -= 86400
		day++
	}
	hour = secs / 3600
	minute = (secs % 3600) / 60
	second = secs % 60
	return y, m, day, hour, minute, second
}

// JulianCenturies returns the Julian-century fraction the linear model and
// the node polynomial evaluate at.
func JulianCenturies(days float64) float64 {
	return days / base.JulianCentury
}
