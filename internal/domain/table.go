package domain

import "time"

// Table is the aligned outer-join of several series: one row per timestamp in
// the union of the inputs, one column per label. Cells are missing where the
// underlying source had no observation.
type Table struct {
	Labels []string
	Times  []time.Time
	Rows   [][]Value
}

func (t *Table) NumRows() int { return len(t.Times) }
func (t *Table) NumCols() int { return len(t.Labels) }

// Column extracts one labeled column as a Series over the full time index.
func (t *Table) Column(label string) (Series, bool) {
	idx := -1
	for i, l := range t.Labels {
		if l == label {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Series{}, false
	}
	points := make([]Point, len(t.Times))
	for i, ts := range t.Times {
		points[i] = Point{Time: ts, Value: t.Rows[i][idx]}
	}
	return Series{Points: points}, true
}

// Filter returns the sub-table whose rows fall inside w. Labels are shared
// with the receiver; rows are shared slices, not copies.
func (t *Table) Filter(w Window) *Table {
	out := &Table{Labels: t.Labels}
	for i, ts := range t.Times {
		if !w.Contains(ts) {
			continue
		}
		out.Times = append(out.Times, ts)
		out.Rows = append(out.Rows, t.Rows[i])
	}
	return out
}
