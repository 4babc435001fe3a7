package service

import (
	"math"

	"coincorr/internal/domain"

	"github.com/rs/zerolog/log"
)

// Normalize cleans one source's series: values that cannot be real prices
// (exactly zero, negative, NaN, Inf) are marked missing. Nothing is ever
// interpolated or filled in their place, since a guessed value would bias the
// correlation downstream. Each discarded point is logged with the series
// label so provider data-quality issues stay visible. Idempotent.
func Normalize(label string, s domain.Series) domain.Series {
	points := make([]domain.Point, len(s.Points))
	discarded := 0
	for i, p := range s.Points {
		points[i] = p
		if !p.Value.Valid {
			continue
		}
		v := p.Value.Float64
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			points[i].Value = domain.Value{}
			discarded++
			log.Debug().
				Str("series", label).
				Time("ts", p.Time).
				Float64("value", v).
				Msg("discarded invalid point")
		}
	}
	if discarded > 0 {
		log.Info().Str("series", label).Int("discarded", discarded).Msg("normalized series")
	}
	return domain.NewSeries(points)
}
