package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Model    ModelConfig    `yaml:"model"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
	RateLimit   int    `yaml:"rate_limit"` // requests per minute per client
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// ModelConfig points at a quality model document. Empty means the model
// compiled into the binary.
type ModelConfig struct {
	Path string `yaml:"path"`
}

type ScoringConfig struct {
	Precision  int                `yaml:"precision"`
	Workers    int                `yaml:"workers"`
	Thresholds map[string]float64 `yaml:"thresholds"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8600,
			MetricsPort: 8601,
			RateLimit:   120,
		},
		Scoring: ScoringConfig{
			Precision: 0,
			Workers:   4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// maxPrecision matches the decimals a float64 score can carry.
const maxPrecision = 15

func (c *Config) validate() error {
	if p := c.Scoring.Precision; p < 0 || p > maxPrecision {
		return fmt.Errorf("scoring.precision must be between 0 and %d, got %d", maxPrecision, p)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MSGRAM_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("MSGRAM_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("MSGRAM_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("MSGRAM_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = n
		}
	}
	if v := os.Getenv("MSGRAM_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("MSGRAM_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("MSGRAM_MODEL_PATH"); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv("MSGRAM_PRECISION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.Precision = n
		}
	}
	if v := os.Getenv("MSGRAM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.Workers = n
		}
	}
	if v := os.Getenv("MSGRAM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MSGRAM_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// NewLogger builds the process logger from the logging section. Logs go to
// stderr so command output on stdout stays machine-readable. Unknown levels
// fall back to info. Format "auto" picks text on a terminal and JSON otherwise.
func (c LoggingConfig) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.textFormat() {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func (c LoggingConfig) textFormat() bool {
	switch strings.ToLower(c.Format) {
	case "text":
		return true
	case "auto":
		fd := os.Stderr.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	default:
		return false
	}
}
