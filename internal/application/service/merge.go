package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"coincorr/internal/domain"
)

// ErrLabelMismatch reports a misconfigured merge call: the label list does
// not line up with the series list, or a label repeats.
var ErrLabelMismatch = errors.New("labels do not match series")

// Merge aligns independently sourced series into one table. The row set is
// the union of every input's timestamps (outer join); a source contributes a
// missing cell at any timestamp it has no observation for. Column order
// follows label order, so the output is fully determined by the inputs.
func Merge(series []domain.Series, labels []string) (*domain.Table, error) {
	if len(series) != len(labels) {
		return nil, fmt.Errorf("%w: %d series, %d labels", ErrLabelMismatch, len(series), len(labels))
	}
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := seen[l]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrLabelMismatch, l)
		}
		seen[l] = struct{}{}
	}

	union := make(map[int64]time.Time)
	for _, s := range series {
		for _, p := range s.Points {
			union[p.Time.UnixNano()] = p.Time
		}
	}
	times := make([]time.Time, 0, len(union))
	for _, t := range union {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	rows := make([][]domain.Value, len(times))
	for i, t := range times {
		row := make([]domain.Value, len(series))
		for j, s := range series {
			if v, ok := s.At(t); ok {
				row[j] = v
			}
		}
		rows[i] = row
	}
	return &domain.Table{Labels: labels, Times: times, Rows: rows}, nil
}

// MergeFrames extracts the named column from each frame and merges the
// results. Convenience for sources that return multi-column frames.
func MergeFrames(frames []*domain.Frame, labels []string, column string) (*domain.Table, error) {
	if len(frames) != len(labels) {
		return nil, fmt.Errorf("%w: %d frames, %d labels", ErrLabelMismatch, len(frames), len(labels))
	}
	series := make([]domain.Series, len(frames))
	for i, f := range frames {
		s, err := f.Column(column)
		if err != nil {
			return nil, fmt.Errorf("merge %q: %w", labels[i], err)
		}
		series[i] = s
	}
	return Merge(series, labels)
}
