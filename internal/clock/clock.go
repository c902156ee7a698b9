// Package clock converts calendar dates in the application timezone to
// UTC instants. It is the only place timezone arithmetic happens;
// every other package works with UTC exclusively.
package clock

import "time"

const dateLayout = "2006-01-02"

// NowUTC returns the current instant in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// EndOfDayUTC parses a YYYY-MM-DD calendar date and returns the last
// instant of that day in loc, converted to UTC. A task due on a date
// is due through the entirety of that local day, so the end-of-day
// instant is what gets stored. Returns nil for an empty or malformed
// date rather than failing the surrounding operation.
func EndOfDayUTC(dateStr string, loc *time.Location) *time.Time {
	if dateStr == "" {
		return nil
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, loc)
	if err != nil {
		return nil
	}
	end := endOfDay(day).UTC()
	return &end
}

// TodayWindowUTC returns the UTC bounds of the current day in loc.
// Both bounds are inclusive: start is local midnight, end is the last
// instant before the next midnight.
func TodayWindowUTC(loc *time.Location) (time.Time, time.Time) {
	now := time.Now().In(loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), endOfDay(start).UTC()
}

func endOfDay(startOfDay time.Time) time.Time {
	return startOfDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
