package appconf

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/transitstats/mta-ridership/internal/logging"
	"github.com/transitstats/mta-ridership/internal/ridership"
)

// EnvPrefix is prepended to every environment variable the service reads.
const EnvPrefix = "RIDERSHIP_"

// Config holds all the configuration settings for the application.
type Config struct {
	Port          int           `yaml:"port" validate:"min=1,max=65535"`
	Env           string        `yaml:"env" validate:"oneof=development staging production test"`
	DataSource    string        `yaml:"data_source" validate:"required"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" validate:"gt=0"`
	RateLimit     int           `yaml:"rate_limit" validate:"gte=0"`
	ZeroPolicy    string        `yaml:"zero_policy" validate:"oneof=zero-fill error"`
	ReferenceMode string        `yaml:"reference_mode" validate:"required"`
	CacheSize     int           `yaml:"cache_size" validate:"gte=0"`
	CacheTTL      time.Duration `yaml:"cache_ttl" validate:"gte=0"`
	TrendFrom     int           `yaml:"trend_from" validate:"gte=0"`
	TrendTo       int           `yaml:"trend_to" validate:"gte=0"`
	LogLevel      string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat     string        `yaml:"log_format" validate:"oneof=json text"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() Config {
	return Config{
		Port:          4000,
		Env:           "development",
		DataSource:    ridership.DefaultSourceURL,
		FetchTimeout:  30 * time.Second,
		RateLimit:     100,
		ZeroPolicy:    ridership.ZeroFill.String(),
		ReferenceMode: ridership.Subways.Slug(),
		CacheSize:     256,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Load builds the configuration from, in increasing precedence: defaults, the YAML file named by
// -config or RIDERSHIP_CONFIG, a .env file, RIDERSHIP_* environment variables and flags.
func Load(args []string, getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	fs := flag.NewFlagSet("ridership", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var flagCfg Config
	var configPath, envFile string
	fs.StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	fs.StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored if missing)")
	fs.IntVar(&flagCfg.Port, "port", 0, "API server port")
	fs.StringVar(&flagCfg.Env, "env", "", "Environment (development|staging|production)")
	fs.StringVar(&flagCfg.DataSource, "source", "", "URL or path of the ridership CSV")
	fs.DurationVar(&flagCfg.FetchTimeout, "fetch-timeout", 0, "Timeout for downloading the ridership CSV")
	fs.IntVar(&flagCfg.RateLimit, "rate-limit", 0, "Requests per second allowed per client")
	fs.StringVar(&flagCfg.ZeroPolicy, "zero-policy", "", "Zero denominator policy (zero-fill|error)")
	fs.StringVar(&flagCfg.ReferenceMode, "reference-mode", "", "Mode backing the overview recovery KPI")
	fs.IntVar(&flagCfg.CacheSize, "cache-size", 0, "Number of memoized derivations")
	fs.DurationVar(&flagCfg.CacheTTL, "cache-ttl", 0, "Lifetime of memoized derivations (0 keeps them until evicted)")
	fs.IntVar(&flagCfg.TrendFrom, "trend-from", 0, "First year of the default trend window")
	fs.IntVar(&flagCfg.TrendTo, "trend-to", 0, "Last year of the default trend window")
	fs.StringVar(&flagCfg.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	fs.StringVar(&flagCfg.LogFormat, "log-format", "", "Log format (json|text)")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := Default()

	if configPath == "" {
		configPath = getenv(EnvPrefix + "CONFIG")
	}
	if configPath != "" {
		if err := cfg.mergeFile(configPath); err != nil {
			return Config{}, err
		}
	}

	if envFile != "" {
		if err := loadDotEnv(envFile); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(getenv); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		cfg.mergeFlag(f.Name, flagCfg)
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

// loadDotEnv populates the process environment from path. Variables already set win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("error loading env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := getenv(EnvPrefix + key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, v, err)
		}
		*dst = n
		return nil
	}
	dur := func(key string, dst *time.Duration) error {
		v := getenv(EnvPrefix + key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", EnvPrefix, key, v, err)
		}
		*dst = d
		return nil
	}

	str("ENV", &c.Env)
	str("DATA_SOURCE", &c.DataSource)
	str("ZERO_POLICY", &c.ZeroPolicy)
	str("REFERENCE_MODE", &c.ReferenceMode)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)

	return errors.Join(
		num("PORT", &c.Port),
		num("RATE_LIMIT", &c.RateLimit),
		num("CACHE_SIZE", &c.CacheSize),
		num("TREND_FROM", &c.TrendFrom),
		num("TREND_TO", &c.TrendTo),
		dur("FETCH_TIMEOUT", &c.FetchTimeout),
		dur("CACHE_TTL", &c.CacheTTL),
	)
}

func (c *Config) mergeFlag(name string, f Config) {
	switch name {
	case "port":
		c.Port = f.Port
	case "env":
		c.Env = f.Env
	case "source":
		c.DataSource = f.DataSource
	case "fetch-timeout":
		c.FetchTimeout = f.FetchTimeout
	case "rate-limit":
		c.RateLimit = f.RateLimit
	case "zero-policy":
		c.ZeroPolicy = f.ZeroPolicy
	case "reference-mode":
		c.ReferenceMode = f.ReferenceMode
	case "cache-size":
		c.CacheSize = f.CacheSize
	case "cache-ttl":
		c.CacheTTL = f.CacheTTL
	case "trend-from":
		c.TrendFrom = f.TrendFrom
	case "trend-to":
		c.TrendTo = f.TrendTo
	case "log-level":
		c.LogLevel = f.LogLevel
	case "log-format":
		c.LogFormat = f.LogFormat
	}
}

// Validate checks struct tags and the values that need domain parsing.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if _, err := ridership.ParseMode(c.ReferenceMode); err != nil {
		return fmt.Errorf("config validation failed: reference_mode: %w", err)
	}
	if c.TrendFrom != 0 && c.TrendTo != 0 && c.TrendFrom > c.TrendTo {
		return fmt.Errorf("config validation failed: trend_from %d is after trend_to %d", c.TrendFrom, c.TrendTo)
	}
	return nil
}

// Policy returns the parsed zero denominator policy. Call Validate first.
func (c Config) Policy() ridership.ZeroDenominatorPolicy {
	p, _ := ridership.ParseZeroDenominatorPolicy(c.ZeroPolicy)
	return p
}

// Reference returns the parsed reference mode, falling back to Subways.
func (c Config) Reference() ridership.Mode {
	m, err := ridership.ParseMode(c.ReferenceMode)
	if err != nil {
		return ridership.Subways
	}
	return m
}

func (c Config) SlogLevel() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// TrendWindow resolves the default trend window against the years on record.
// Unset bounds default to the first and last year.
func (c Config) TrendWindow(years []int) (int, int) {
	if len(years) == 0 {
		return c.TrendFrom, c.TrendTo
	}
	from, to := years[0], years[len(years)-1]
	if c.TrendFrom != 0 {
		from = c.TrendFrom
	}
	if c.TrendTo != 0 {
		to = c.TrendTo
	}
	return from, to
}
