package service

import "coincorr/internal/domain"

// BuildIndex derives a reference series from an aligned table: per row, the
// arithmetic mean of the defined cells. Missing cells are skipped, not
// counted as zero; a row with no defined cell yields a missing index value.
// Averaging across sources dilutes any single provider's spikes and outages.
func BuildIndex(t *domain.Table) domain.Series {
	points := make([]domain.Point, len(t.Times))
	for i, ts := range t.Times {
		sum := 0.0
		n := 0
		for _, v := range t.Rows[i] {
			if v.Valid {
				sum += v.Float64
				n++
			}
		}
		points[i] = domain.Point{Time: ts}
		if n > 0 {
			points[i].Value = domain.Float(sum / float64(n))
		}
	}
	return domain.Series{Points: points}
}
