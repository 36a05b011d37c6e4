package event

import (
	"fmt"
	"time"
)

// DateLayout is the layout of the date field. Month and day may be written
// with or without a leading zero.
const DateLayout = "2006-1-2"

// MissingID is the placeholder some writers stored instead of an id.
const MissingID = "N/A"

// ParseDate parses a YYYY-MM-DD date; 2024-3-5 is read as 2024-03-05.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// GenerateID builds an event id from a date and a sequence number using the
// current time as fallback.
func GenerateID(date string, seq int) string {
	return generateID(date, seq, time.Now())
}

func generateID(date string, seq int, now time.Time) string {
	if seq < 1 {
		seq = 1
	}
	if t, ok := ParseDate(date); ok {
		return fmt.Sprintf("event_%s_%03d", t.Format("20060102"), seq)
	}
	return timestampID(seq, now)
}

func timestampID(seq int, now time.Time) string {
	return fmt.Sprintf("event_%d_%03d", now.Unix(), seq)
}
