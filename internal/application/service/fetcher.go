package service

import (
	"context"
	"errors"
	"fmt"

	"coincorr/internal/application/port"
	"coincorr/internal/domain"

	"github.com/rs/zerolog/log"
)

// ErrSourceUnavailable reports that a remote fetch failed and no cached copy
// of the series exists. This is fatal for the pipeline run.
var ErrSourceUnavailable = errors.New("source unavailable")

// Fetcher retrieves frames through a persistent cache. The first successful
// fetch of a source id writes the cache entry; every later call returns the
// cached copy without contacting the provider. Entries are never invalidated
// here: set Refresh to force a re-download that overwrites them.
type Fetcher struct {
	store   port.CacheStore
	refresh bool
}

func NewFetcher(store port.CacheStore, refresh bool) *Fetcher {
	return &Fetcher{store: store, refresh: refresh}
}

// Fetch returns the frame for id, from cache when possible. A corrupt cache
// entry counts as a miss and triggers a re-fetch.
func (f *Fetcher) Fetch(ctx context.Context, src port.SeriesSource, id domain.SourceID, req port.SourceRequest) (*domain.Frame, error) {
	if !f.refresh {
		if fr, ok := f.lookup(ctx, id); ok {
			return fr, nil
		}
	}

	log.Info().Str("source", id.String()).Str("provider", src.Name()).Msg("downloading")
	fr, err := src.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %s", id, ErrSourceUnavailable, err)
	}

	blob, err := fr.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", id, err)
	}
	if err := f.store.Put(ctx, id, blob); err != nil {
		// a failed cache write costs a re-download next run, nothing more
		log.Warn().Err(err).Str("source", id.String()).Msg("cache write failed")
	} else {
		log.Debug().Str("source", id.String()).Int("rows", fr.Len()).Msg("cached")
	}
	return fr, nil
}

func (f *Fetcher) lookup(ctx context.Context, id domain.SourceID) (*domain.Frame, bool) {
	blob, err := f.store.Get(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, port.ErrCacheMiss):
		return nil, false
	default:
		log.Warn().Err(err).Str("source", id.String()).Msg("cache read failed, treating as miss")
		return nil, false
	}

	fr, err := domain.DecodeFrame(blob)
	if err != nil {
		log.Warn().Err(err).Str("source", id.String()).Msg("corrupt cache entry, re-fetching")
		return nil, false
	}
	log.Info().Str("source", id.String()).Int("rows", fr.Len()).Msg("loaded from cache")
	return fr, true
}
