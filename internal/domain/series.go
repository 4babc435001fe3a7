package domain

import (
	"sort"
	"time"
)

// SourceID is the stable key identifying one (provider, pair) combination.
// It addresses cache entries and labels merged columns.
type SourceID string

func (id SourceID) String() string { return string(id) }

// Point is one (timestamp, value) observation.
type Point struct {
	Time  time.Time
	Value Value
}

// Series is an ordered run of observations. Timestamps are unique, UTC and
// strictly ascending; NewSeries enforces this.
type Series struct {
	Points []Point
}

// NewSeries normalizes the time index: timestamps are converted to UTC and
// sorted ascending. On duplicate timestamps the last point wins.
func NewSeries(points []Point) Series {
	ps := make([]Point, len(points))
	copy(ps, points)
	for i := range ps {
		ps[i].Time = ps[i].Time.UTC()
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Time.Before(ps[j].Time) })

	out := ps[:0]
	for _, p := range ps {
		if n := len(out); n > 0 && out[n-1].Time.Equal(p.Time) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return Series{Points: out}
}

func (s Series) Len() int { return len(s.Points) }

// At returns the value at timestamp t and whether the series has an
// observation there at all. A missing cell at a present timestamp returns
// (invalid Value, true).
func (s Series) At(t time.Time) (Value, bool) {
	t = t.UTC()
	i := sort.Search(len(s.Points), func(i int) bool { return !s.Points[i].Time.Before(t) })
	if i < len(s.Points) && s.Points[i].Time.Equal(t) {
		return s.Points[i].Value, true
	}
	return Value{}, false
}

// Times returns the series time index.
func (s Series) Times() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Time
	}
	return out
}
