package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TimeOfDay is a coarse bucket for the hour a transaction happened.
type TimeOfDay string

// Time-of-day buckets.
const (
	Morning   TimeOfDay = "morning"   // 5-11
	Afternoon TimeOfDay = "afternoon" // 12-16
	Evening   TimeOfDay = "evening"   // 17-20
	Night     TimeOfDay = "night"     // 21-4
)

// AllTimesOfDay lists the buckets in chronological order.
var AllTimesOfDay = []TimeOfDay{Morning, Afternoon, Evening, Night}

// Valid reports whether t is a known bucket.
func (t TimeOfDay) Valid() bool {
	switch t {
	case Morning, Afternoon, Evening, Night:
		return true
	}
	return false
}

// BucketHour maps an hour of day (0-23) to its TimeOfDay bucket.
func BucketHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// Weekdays lists day-of-week names Monday first, matching how the rest of
// the app orders weekly breakdowns.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// TimeContext derives the time-of-day bucket and day-of-week name from a
// moment in time.
func TimeContext(t time.Time) (TimeOfDay, string) {
	return BucketHour(t.Hour()), t.Weekday().String()
}

// Transaction represents a single expense from any source. Amount is always
// positive; inflows are filtered out at ingestion.
type Transaction struct {
	Date      time.Time
	ID        string
	Merchant  string
	Category  string
	DayOfWeek string
	TimeOfDay TimeOfDay
	Emotion   Emotion
	Amount    float64
}

// GenerateHash creates the natural key used for duplicate detection. No
// source guarantees a synthetic ID, so merchant+amount+date has to do.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Merchant)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// SetTimeContext fills in TimeOfDay and DayOfWeek from the transaction date.
func (t *Transaction) SetTimeContext() {
	t.TimeOfDay, t.DayOfWeek = TimeContext(t.Date)
}
