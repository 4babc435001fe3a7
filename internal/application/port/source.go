package port

import (
	"context"
	"time"

	"coincorr/internal/domain"
)

// SourceRequest carries the parameters of one remote series query.
type SourceRequest struct {
	Pair   string // provider-specific pair or dataset code
	Start  time.Time
	End    time.Time
	Period time.Duration // sampling period; providers may ignore it
}

// SeriesSource is a remote provider of historical series. Any provider that
// can return a timestamp column plus named value columns satisfies it.
type SeriesSource interface {
	Name() string
	Fetch(ctx context.Context, req SourceRequest) (*domain.Frame, error)
}
