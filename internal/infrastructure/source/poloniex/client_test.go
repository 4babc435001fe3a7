package poloniex

import "testing"

func TestParseChartData(t *testing.T) {
	body := []byte(`[
		{"date":1451606400,"high":0.0023,"low":0.0021,"open":0.0022,"close":0.00225,"volume":150.5,"quoteVolume":68000.0,"weightedAverage":0.00221},
		{"date":1451692800,"high":0.0024,"low":0.0022,"open":0.00225,"close":0.0023,"volume":120.0,"quoteVolume":52000.0,"weightedAverage":0.00228}
	]`)

	f, err := parseChartData(body)
	if err != nil {
		t.Fatalf("parseChartData failed: %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", f.Len())
	}

	s, err := f.Column("weightedAverage")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if v := s.Points[0].Value; !v.Valid || v.Float64 != 0.00221 {
		t.Errorf("expected 0.00221, got %+v", v)
	}
	if got := f.Times[0].UTC().Format("2006-01-02"); got != "2016-01-01" {
		t.Errorf("expected 2016-01-01, got %s", got)
	}
}

func TestParseChartDataAPIError(t *testing.T) {
	if _, err := parseChartData([]byte(`{"error":"Invalid currency pair."}`)); err == nil {
		t.Errorf("expected error for API error response")
	}
}

func TestParseChartDataNoData(t *testing.T) {
	// Poloniex reports an unknown range as one zero-dated candle
	body := []byte(`[{"date":0,"high":0,"low":0,"open":0,"close":0,"volume":0,"quoteVolume":0,"weightedAverage":0}]`)
	if _, err := parseChartData(body); err == nil {
		t.Errorf("expected error for empty range")
	}
}

func TestParseChartDataMalformed(t *testing.T) {
	if _, err := parseChartData([]byte("<html></html>")); err == nil {
		t.Errorf("expected error for malformed payload")
	}
}
