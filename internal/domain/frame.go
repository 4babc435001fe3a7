package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Frame is one source's raw table: a shared time index and the named value
// columns the provider returned. Frames are the unit of caching; they encode
// to JSON and back without loss.
type Frame struct {
	Times   []time.Time `json:"times"`
	Columns []string    `json:"columns"`
	Rows    [][]Value   `json:"rows"`
}

// NewFrame builds a frame from row-major data, sorting rows by timestamp.
// Each row must have one value per column.
func NewFrame(times []time.Time, columns []string, rows [][]Value) (*Frame, error) {
	if len(times) != len(rows) {
		return nil, fmt.Errorf("frame: %d timestamps but %d rows", len(times), len(rows))
	}
	type row struct {
		t     time.Time
		cells []Value
	}
	rs := make([]row, len(times))
	for i := range times {
		if len(rows[i]) != len(columns) {
			return nil, fmt.Errorf("frame: row %d has %d cells, want %d", i, len(rows[i]), len(columns))
		}
		rs[i] = row{t: times[i].UTC(), cells: rows[i]}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].t.Before(rs[j].t) })

	f := &Frame{Columns: columns}
	for _, r := range rs {
		// last row wins on duplicate timestamps
		if n := len(f.Times); n > 0 && f.Times[n-1].Equal(r.t) {
			f.Rows[n-1] = r.cells
			continue
		}
		f.Times = append(f.Times, r.t)
		f.Rows = append(f.Rows, r.cells)
	}
	return f, nil
}

func (f *Frame) Len() int { return len(f.Times) }

// Column extracts one named column as a Series.
func (f *Frame) Column(name string) (Series, error) {
	idx := -1
	for i, c := range f.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Series{}, fmt.Errorf("frame: no column %q (have %v)", name, f.Columns)
	}
	points := make([]Point, len(f.Times))
	for i, t := range f.Times {
		points[i] = Point{Time: t, Value: f.Rows[i][idx]}
	}
	return NewSeries(points), nil
}

// Encode serializes the frame for cache storage.
func (f *Frame) Encode() ([]byte, error) {
	return json.Marshal(f)
}

// DecodeFrame restores a frame from a cache blob.
func DecodeFrame(blob []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(blob, &f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if len(f.Times) != len(f.Rows) {
		return nil, fmt.Errorf("decode frame: %d timestamps but %d rows", len(f.Times), len(f.Rows))
	}
	for i, r := range f.Rows {
		if len(r) != len(f.Columns) {
			return nil, fmt.Errorf("decode frame: row %d has %d cells, want %d", i, len(r), len(f.Columns))
		}
	}
	return &f, nil
}
