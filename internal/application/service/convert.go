package service

import "coincorr/internal/domain"

// Convert rescales a series quoted against a reference asset into the
// reference's own unit: out[t] = s[t] * ref[t]. Timestamps where the
// reference has no defined value produce a missing cell rather than an
// error, so one ragged series cannot fail the whole run.
func Convert(s domain.Series, ref domain.Series) domain.Series {
	points := make([]domain.Point, len(s.Points))
	for i, p := range s.Points {
		points[i] = domain.Point{Time: p.Time}
		if !p.Value.Valid {
			continue
		}
		r, ok := ref.At(p.Time)
		if !ok || !r.Valid {
			continue
		}
		points[i].Value = domain.Float(p.Value.Float64 * r.Float64)
	}
	return domain.Series{Points: points}
}
