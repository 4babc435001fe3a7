package analysis

import (
	"context"
	"fmt"
	"time"

	"coincorr/internal/application/port"
	"coincorr/internal/application/service"
	"coincorr/internal/domain"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Value columns extracted from each provider's frames.
const (
	btcValueColumn = "Weighted Price"  // Quandl BCHARTS
	altValueColumn = "weightedAverage" // Poloniex chart data
)

type ServiceDeps struct {
	BTCSource port.SeriesSource // per-exchange BTC/USD datasets
	AltSource port.SeriesSource // altcoin/BTC exchange rates
	Fetcher   *service.Fetcher
	Sink      port.Sink

	Exchanges []string // BTC exchange codes, e.g. KRAKEN
	Altcoins  []string // altcoin symbols, e.g. ETH
	Start     time.Time
	End       time.Time
	Period    time.Duration
	Windows   []domain.Window
}

// Service runs the whole analysis batch: fetch, normalize, merge, index,
// convert, merge again, correlate per window. Any failed source aborts the
// run; there is no partial output.
type Service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) *Service {
	return &Service{deps: deps}
}

func (s *Service) Run(ctx context.Context) error {
	btcTable, err := s.buildBTCTable(ctx)
	if err != nil {
		return err
	}
	if err := s.deps.Sink.ShowTable("Bitcoin Price (USD) By Exchange", btcTable); err != nil {
		return err
	}

	index := service.BuildIndex(btcTable)
	log.Info().Int("rows", index.Len()).Msg("built BTC price index")

	combined, err := s.buildCombinedTable(ctx, index)
	if err != nil {
		return err
	}
	if err := s.deps.Sink.ShowTable("Cryptocurrency Prices (USD)", combined); err != nil {
		return err
	}

	for _, w := range s.deps.Windows {
		m := service.Correlate(combined, w)
		log.Info().Str("window", windowTitle(w)).Int("columns", len(m.Labels)).Msg("computed correlations")
		if err := s.deps.Sink.ShowMatrix("Cryptocurrency Correlations, "+windowTitle(w), m); err != nil {
			return err
		}
	}
	return nil
}

// buildBTCTable fetches each exchange's BTC/USD series and aligns them.
// Sources are independent until the merge, so they download concurrently;
// the first failure cancels the rest.
func (s *Service) buildBTCTable(ctx context.Context) (*domain.Table, error) {
	series := make([]domain.Series, len(s.deps.Exchanges))
	g, gctx := errgroup.WithContext(ctx)
	for i, ex := range s.deps.Exchanges {
		g.Go(func() error {
			id := domain.SourceID("BCHARTS-" + ex + "USD")
			frame, err := s.deps.Fetcher.Fetch(gctx, s.deps.BTCSource, id, port.SourceRequest{
				Pair:   "BCHARTS/" + ex + "USD",
				Start:  s.deps.Start,
				End:    s.deps.End,
				Period: s.deps.Period,
			})
			if err != nil {
				return err
			}
			col, err := frame.Column(btcValueColumn)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			series[i] = service.Normalize(ex, col)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return service.Merge(series, s.deps.Exchanges)
}

// buildCombinedTable fetches each altcoin's BTC exchange rate, converts it to
// USD via the index, and merges the results with the index as a final BTC
// column.
func (s *Service) buildCombinedTable(ctx context.Context, index domain.Series) (*domain.Table, error) {
	series := make([]domain.Series, len(s.deps.Altcoins))
	g, gctx := errgroup.WithContext(ctx)
	for i, coin := range s.deps.Altcoins {
		g.Go(func() error {
			id := domain.SourceID("BTC_" + coin)
			frame, err := s.deps.Fetcher.Fetch(gctx, s.deps.AltSource, id, port.SourceRequest{
				Pair:   "BTC_" + coin,
				Start:  s.deps.Start,
				End:    s.deps.End,
				Period: s.deps.Period,
			})
			if err != nil {
				return err
			}
			rate, err := frame.Column(altValueColumn)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			series[i] = service.Convert(service.Normalize(coin, rate), index)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	labels := append(append([]string{}, s.deps.Altcoins...), "BTC")
	return service.Merge(append(series, index), labels)
}

func windowTitle(w domain.Window) string {
	if w.From.Equal(time.Date(w.From.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)) &&
		w.To.Equal(w.From.AddDate(1, 0, 0)) {
		return fmt.Sprintf("%d", w.From.Year())
	}
	return fmt.Sprintf("%s to %s", w.From.Format("2006-01-02"), w.To.Format("2006-01-02"))
}
