package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App struct {
		Debug            bool `toml:"debug"`
		TablePreviewRows int  `toml:"table_preview_rows"`
	} `toml:"app"`

	Cache struct {
		Backend     string `toml:"backend"` // fs | sqlite | redis | postgres
		Dir         string `toml:"dir"`
		Path        string `toml:"path"`
		RedisAddr   string `toml:"redis_addr"`
		RedisDB     int    `toml:"redis_db"`
		KeyPrefix   string `toml:"key_prefix"`
		PostgresDSN string `toml:"postgres_dsn"`
	} `toml:"cache"`

	Quandl struct {
		BaseURL   string   `toml:"base_url"`
		APIKey    string   `toml:"api_key"` // falls back to QUANDL_API_KEY
		Exchanges []string `toml:"exchanges"`
	} `toml:"quandl"`

	Poloniex struct {
		BaseURL  string   `toml:"base_url"`
		Altcoins []string `toml:"altcoins"`
	} `toml:"poloniex"`

	Range struct {
		Start         string `toml:"start"` // YYYY-MM-DD
		End           string `toml:"end"`   // empty = now
		PeriodSeconds int    `toml:"period_seconds"`
	} `toml:"range"`

	Correlation struct {
		Years []int `toml:"years"`
	} `toml:"correlation"`
}

func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.TablePreviewRows <= 0 {
		cfg.App.TablePreviewRows = 5
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "fs"
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = ".cache"
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = ".cache/coincorr.db"
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = "coincorr"
	}
	if cfg.Quandl.BaseURL == "" {
		cfg.Quandl.BaseURL = "https://www.quandl.com/api/v3"
	}
	if len(cfg.Quandl.Exchanges) == 0 {
		cfg.Quandl.Exchanges = []string{"KRAKEN", "COINBASE", "BITSTAMP", "ITBIT"}
	}
	if cfg.Poloniex.BaseURL == "" {
		cfg.Poloniex.BaseURL = "https://poloniex.com/public"
	}
	if len(cfg.Poloniex.Altcoins) == 0 {
		cfg.Poloniex.Altcoins = []string{"ETH", "LTC", "XRP", "ETC", "STR", "DASH", "SC", "XMR", "XEM"}
	}
	if cfg.Range.Start == "" {
		cfg.Range.Start = "2015-01-01"
	}
	if cfg.Range.PeriodSeconds <= 0 {
		cfg.Range.PeriodSeconds = 86400
	}
	if len(cfg.Correlation.Years) == 0 {
		cfg.Correlation.Years = []int{2016, 2017}
	}
}

func validate(cfg *Config) error {
	switch cfg.Cache.Backend {
	case "fs", "sqlite", "redis", "postgres":
	default:
		return fmt.Errorf("cache.backend %q unknown (fs|sqlite|redis|postgres)", cfg.Cache.Backend)
	}
	if cfg.Cache.Backend == "redis" && strings.TrimSpace(cfg.Cache.RedisAddr) == "" {
		return errors.New("cache.redis_addr empty but backend is redis")
	}
	if cfg.Cache.Backend == "postgres" && strings.TrimSpace(cfg.Cache.PostgresDSN) == "" {
		return errors.New("cache.postgres_dsn empty but backend is postgres")
	}

	cfg.Quandl.Exchanges = normalizeLabels(cfg.Quandl.Exchanges)
	cfg.Poloniex.Altcoins = normalizeLabels(cfg.Poloniex.Altcoins)
	if len(cfg.Quandl.Exchanges) == 0 {
		return errors.New("quandl.exchanges is empty")
	}
	if len(cfg.Poloniex.Altcoins) == 0 {
		return errors.New("poloniex.altcoins is empty")
	}
	for _, coin := range cfg.Poloniex.Altcoins {
		// BTC is the combined table's reference column
		if coin == "BTC" {
			return errors.New("poloniex.altcoins must not contain BTC")
		}
	}

	if _, err := cfg.StartTime(); err != nil {
		return fmt.Errorf("range.start: %w", err)
	}
	if _, err := cfg.EndTime(); err != nil {
		return fmt.Errorf("range.end: %w", err)
	}
	return nil
}

// StartTime parses the configured range start.
func (cfg *Config) StartTime() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", cfg.Range.Start, time.UTC)
}

// EndTime parses the configured range end; empty means the current time.
func (cfg *Config) EndTime() (time.Time, error) {
	if strings.TrimSpace(cfg.Range.End) == "" {
		return time.Now().UTC(), nil
	}
	return time.ParseInLocation("2006-01-02", cfg.Range.End, time.UTC)
}

// Period returns the sampling period as a duration.
func (cfg *Config) Period() time.Duration {
	return time.Duration(cfg.Range.PeriodSeconds) * time.Second
}

func normalizeLabels(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		u := strings.ToUpper(strings.TrimSpace(s))
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
