package quandl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coincorr/internal/application/port"
	"coincorr/internal/domain"
)

// Client fetches daily Quandl datasets, e.g. the BCHARTS/<EXCHANGE>USD
// Bitcoin exchange series. Sampling period is ignored: these datasets are
// daily.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://www.quandl.com/api/v3"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Name() string { return "quandl" }

// Fetch retrieves the dataset named by req.Pair (a code like
// "BCHARTS/KRAKENUSD") over [Start, End].
func (c *Client) Fetch(ctx context.Context, req port.SourceRequest) (*domain.Frame, error) {
	params := url.Values{}
	params.Set("order", "asc")
	if !req.Start.IsZero() {
		params.Set("start_date", req.Start.UTC().Format("2006-01-02"))
	}
	if !req.End.IsZero() {
		params.Set("end_date", req.End.UTC().Format("2006-01-02"))
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	endpoint := fmt.Sprintf("%s/datasets/%s.json?%s",
		strings.TrimRight(c.baseURL, "/"), req.Pair, params.Encode())

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
		return nil, fmt.Errorf("quandl api error: %d %s", resp.StatusCode, string(body))
	}
	return parseDataset(body)
}

type datasetResp struct {
	Dataset struct {
		ColumnNames []string `json:"column_names"`
		Data        [][]any  `json:"data"`
	} `json:"dataset"`
}

// parseDataset converts a Quandl dataset payload into a frame. The first
// column is the date index; the rest become value columns. Nulls and
// non-numeric cells become missing values.
func parseDataset(body []byte) (*domain.Frame, error) {
	var dr datasetResp
	if err := json.Unmarshal(body, &dr); err != nil {
		return nil, fmt.Errorf("quandl decode: %w", err)
	}
	if len(dr.Dataset.ColumnNames) < 2 {
		return nil, fmt.Errorf("quandl dataset has no value columns: %v", dr.Dataset.ColumnNames)
	}
	if len(dr.Dataset.Data) == 0 {
		return nil, fmt.Errorf("quandl dataset is empty")
	}

	columns := dr.Dataset.ColumnNames[1:]
	times := make([]time.Time, 0, len(dr.Dataset.Data))
	rows := make([][]domain.Value, 0, len(dr.Dataset.Data))
	for i, raw := range dr.Dataset.Data {
		if len(raw) != len(dr.Dataset.ColumnNames) {
			return nil, fmt.Errorf("quandl row %d has %d cells, want %d", i, len(raw), len(dr.Dataset.ColumnNames))
		}
		dateStr, ok := raw[0].(string)
		if !ok {
			return nil, fmt.Errorf("quandl row %d: date is %T, want string", i, raw[0])
		}
		ts, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("quandl row %d: %w", i, err)
		}

		row := make([]domain.Value, len(columns))
		for j, cell := range raw[1:] {
			if f, ok := cell.(float64); ok {
				row[j] = domain.Float(f)
			}
		}
		times = append(times, ts)
		rows = append(rows, row)
	}
	return domain.NewFrame(times, columns, rows)
}

var _ port.SeriesSource = (*Client)(nil)
