package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"coincorr/internal/application/port"
	"coincorr/internal/application/service"
	"coincorr/internal/application/usecase/analysis"
	"coincorr/internal/domain"
	"coincorr/internal/infrastructure/cachestore/fs"
	"coincorr/internal/infrastructure/cachestore/postgres"
	redisstore "coincorr/internal/infrastructure/cachestore/redis"
	"coincorr/internal/infrastructure/cachestore/sqlite"
	"coincorr/internal/infrastructure/config"
	"coincorr/internal/infrastructure/logger"
	"coincorr/internal/infrastructure/source/poloniex"
	"coincorr/internal/infrastructure/source/quandl"
	"coincorr/internal/interfaces/console"
	"coincorr/presentation"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to config.toml")
	refresh := flag.Bool("refresh", false, "ignore cached data and re-download every source")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Setup(false)
		log.Fatal().Err(err).Str("config", *configPath).Msg("load config failed")
	}
	logger.Setup(cfg.App.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newCacheStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Cache.Backend).Msg("cache store init failed")
	}
	defer store.Close()

	apiKey := cfg.Quandl.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("QUANDL_API_KEY")
	}

	start, err := cfg.StartTime()
	if err != nil {
		log.Fatal().Err(err).Msg("bad range start")
	}
	end, err := cfg.EndTime()
	if err != nil {
		log.Fatal().Err(err).Msg("bad range end")
	}

	windows := make([]domain.Window, 0, len(cfg.Correlation.Years))
	for _, y := range cfg.Correlation.Years {
		windows = append(windows, domain.Year(y))
	}

	sink := console.NewSink(presentation.NewRenderer(cfg.App.TablePreviewRows))

	svc := analysis.NewService(analysis.ServiceDeps{
		BTCSource: quandl.New(cfg.Quandl.BaseURL, apiKey),
		AltSource: poloniex.New(cfg.Poloniex.BaseURL),
		Fetcher:   service.NewFetcher(store, *refresh),
		Sink:      sink,
		Exchanges: cfg.Quandl.Exchanges,
		Altcoins:  cfg.Poloniex.Altcoins,
		Start:     start,
		End:       end,
		Period:    cfg.Period(),
		Windows:   windows,
	})

	log.Info().
		Str("config", *configPath).
		Str("cache", cfg.Cache.Backend).
		Int("exchanges", len(cfg.Quandl.Exchanges)).
		Int("altcoins", len(cfg.Poloniex.Altcoins)).
		Ints("years", cfg.Correlation.Years).
		Msg("coincorr started")

	if err := svc.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("analysis run failed")
	}
}

func newCacheStore(cfg *config.Config) (port.CacheStore, error) {
	switch cfg.Cache.Backend {
	case "sqlite":
		return sqlite.New(cfg.Cache.Path)
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
		return redisstore.New(rdb, cfg.Cache.KeyPrefix), nil
	case "postgres":
		return postgres.New(cfg.Cache.PostgresDSN)
	default:
		return fs.New(cfg.Cache.Dir)
	}
}
