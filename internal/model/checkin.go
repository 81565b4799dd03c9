package model

import "time"

// CheckIn is one daily mood/energy/stress snapshot used by the impulse-risk
// classifier.
type CheckIn struct {
	Date          time.Time
	ID            string
	Mood          string
	Energy        string
	Stress        string
	FinancialGoal string
	Notes         string
}

// SameDay reports whether the check-in falls on the given calendar day.
func (c *CheckIn) SameDay(t time.Time) bool {
	y1, m1, d1 := c.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
