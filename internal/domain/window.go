package domain

import "time"

// Window is a half-open time interval [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

// Year builds the calendar-year window for y, in UTC.
func Year(y int) Window {
	return Window{
		From: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(y+1, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}
