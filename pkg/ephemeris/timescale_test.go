package ephemeris

import (
	"math"
	"testing"
	"time"
)

func TestDaysFromCalendarEpoch(t *testing.T) {
	tests := []struct {
		name                                   string
		year, month, day, hour, minute, second int
		want                                   float64
	}{
		// The reference epoch is noon, so midnight on the same date is
		// half a day before it.
		{"epoch_midnight", 2000, 1, 1, 0, 0, 0, -0.5},
		{"epoch_noon", 2000, 1, 1, 12, 0, 0, 0},
		{"next_day_noon", 2000, 1, 2, 12, 0, 0, 1},
		{"one_julian_year_later", 2001, 1, 1, 18, 0, 0, 366.25},
		{"before_epoch", 1999, 12, 31, 12, 0, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysFromCalendar(tt.year, tt.month, tt.day, tt.hour, tt.minute, tt.second)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DaysFromCalendar() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestCalendarFromDaysRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		days float64
	}{
		{"epoch", 0},
		{"half_day_before", -0.5},
		{"leap_spanning", 59.75},
		{"decades_later", 9496.25},
		{"deep_past", -36525.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m, d, hh, mm, ss := CalendarFromDays(tt.days)
			back := DaysFromCalendar(y, m, d, hh, mm, ss)
			if math.Abs(back-tt.days) > 1.0/86400+1e-9 {
				t.Errorf("round trip %v -> %d-%02d-%02d %02d:%02d:%02d -> %v",
					tt.days, y, m, d, hh, mm, ss, back)
			}
		})
	}
}

func TestDaysFromTimeMatchesCalendar(t *testing.T) {
	instant := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := DaysFromTime(instant); math.Abs(got) > 1e-9 {
		t.Errorf("DaysFromTime(epoch) = %v, expected 0", got)
	}

	instant = time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := DaysFromTime(instant); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("DaysFromTime(epoch+12h) = %v, expected 0.5", got)
	}
}

func TestTimeFromDaysInvertsDaysFromTime(t *testing.T) {
	instant := time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC)
	days := DaysFromTime(instant)
	back := TimeFromDays(days)
	if diff := back.Sub(instant); diff > time.Second || diff < -time.Second {
		t.Errorf("TimeFromDays(DaysFromTime(t)) off by %v", diff)
	}
}

func TestJulianCenturies(t *testing.T) {
	if got := JulianCenturies(36525); got != 1 {
		t.Errorf("JulianCenturies(36525) = %v, expected 1", got)
	}
	if got := JulianCenturies(-18262.5); got != -0.5 {
		t.Errorf("JulianCenturies(-18262.5) = %v, expected -0.5", got)
	}
}
