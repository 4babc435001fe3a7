package poloniex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"coincorr/internal/application/port"
	"coincorr/internal/domain"
)

// Candle columns, in the order they appear in the resulting frame.
var columns = []string{"high", "low", "open", "close", "volume", "quoteVolume", "weightedAverage"}

// Client fetches Poloniex public chart data: per-period candles for a
// currency pair such as BTC_ETH, with the pair's weighted-average rate.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://poloniex.com/public"
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Name() string { return "poloniex" }

func (c *Client) Fetch(ctx context.Context, req port.SourceRequest) (*domain.Frame, error) {
	period := int64(req.Period / time.Second)
	if period <= 0 {
		period = 86400
	}
	params := url.Values{}
	params.Set("command", "returnChartData")
	params.Set("currencyPair", req.Pair)
	params.Set("start", strconv.FormatInt(req.Start.Unix(), 10))
	params.Set("end", strconv.FormatInt(req.End.Unix(), 10))
	params.Set("period", strconv.FormatInt(period, 10))
	endpoint := c.baseURL + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("poloniex api error: %d %s", resp.StatusCode, string(body))
	}
	return parseChartData(body)
}

type candle struct {
	Date            int64   `json:"date"` // unix seconds
	High            float64 `json:"high"`
	Low             float64 `json:"low"`
	Open            float64 `json:"open"`
	Close           float64 `json:"close"`
	Volume          float64 `json:"volume"`
	QuoteVolume     float64 `json:"quoteVolume"`
	WeightedAverage float64 `json:"weightedAverage"`
}

type apiError struct {
	Error string `json:"error"`
}

func parseChartData(body []byte) (*domain.Frame, error) {
	// error responses come back as an object, data as an array
	if len(body) > 0 && body[0] == '{' {
		var ae apiError
		if err := json.Unmarshal(body, &ae); err == nil && ae.Error != "" {
			return nil, fmt.Errorf("poloniex: %s", ae.Error)
		}
		return nil, fmt.Errorf("poloniex: unexpected response %s", truncate(body, 200))
	}

	var candles []candle
	if err := json.Unmarshal(body, &candles); err != nil {
		return nil, fmt.Errorf("poloniex decode: %w", err)
	}

	times := make([]time.Time, 0, len(candles))
	rows := make([][]domain.Value, 0, len(candles))
	for _, cd := range candles {
		// a single zero-dated candle is Poloniex for "no data"
		if cd.Date == 0 {
			continue
		}
		times = append(times, time.Unix(cd.Date, 0).UTC())
		rows = append(rows, []domain.Value{
			domain.Float(cd.High),
			domain.Float(cd.Low),
			domain.Float(cd.Open),
			domain.Float(cd.Close),
			domain.Float(cd.Volume),
			domain.Float(cd.QuoteVolume),
			domain.Float(cd.WeightedAverage),
		})
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("poloniex returned no data")
	}
	return domain.NewFrame(times, columns, rows)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

var _ port.SeriesSource = (*Client)(nil)
