package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/checktree/internal/widget"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Sessions
	SessionTTL  time.Duration
	MaxSessions int

	// Upload limits
	MaxUploadBytes int64

	// Widget defaults for new trees
	UseLabelAsValue bool
	Filterable      bool
	CollapseEnabled bool
	CollapseSpeed   time.Duration
	FuzzyThreshold  float64

	// Preloaded "default" tree
	DataFile      string
	WatchDataFile bool

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment. If CHECKTREE_CONFIG
// names a TOML file, its keys (the same names as the environment
// variables) supply defaults that the environment overrides.
func Load() (Config, error) {
	e := env{}
	if path := os.Getenv("CHECKTREE_CONFIG"); path != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		e.file = file
	}

	cfg := Config{
		Port: e.envOr("PORT", "8090"),

		APIKey: e.envOr("CHECKTREE_API_KEY", ""),

		SessionTTL:  e.envDuration("SESSION_TTL", 1*time.Hour),
		MaxSessions: e.envInt("MAX_SESSIONS", 1000),

		MaxUploadBytes: e.envInt64("MAX_UPLOAD_BYTES", 10<<20), // 10MB

		UseLabelAsValue: e.envBool("USE_LABEL_AS_VALUE", false),
		Filterable:      e.envBool("FILTERABLE", true),
		CollapseEnabled: e.envBool("COLLAPSE_ENABLED", false),
		CollapseSpeed:   e.envDuration("COLLAPSE_SPEED", 250*time.Millisecond),
		FuzzyThreshold:  e.envFloat("FUZZY_THRESHOLD", 0),

		DataFile:      e.envOr("DATA_FILE", ""),
		WatchDataFile: e.envBool("WATCH_DATA_FILE", true),

		LogLevel:  e.envOr("LOG_LEVEL", "info"),
		LogFormat: e.envOr("LOG_FORMAT", "json"),
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 1 * time.Hour
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.CollapseSpeed <= 0 {
		cfg.CollapseSpeed = 250 * time.Millisecond
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CHECKTREE_API_KEY is required")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("MAX_SESSIONS must not be negative, got %d", c.MaxSessions)
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("FUZZY_THRESHOLD must be between 0 and 1, got %g", c.FuzzyThreshold)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// WidgetOptions returns the options for newly created trees.
func (c Config) WidgetOptions() widget.Options {
	opts := widget.DefaultOptions()
	opts.UseLabelAsValue = c.UseLabelAsValue
	opts.Filterable = c.Filterable
	opts.Collapse.Enabled = c.CollapseEnabled
	opts.Collapse.Speed = c.CollapseSpeed
	opts.FuzzyThreshold = c.FuzzyThreshold
	return opts
}

// readFile decodes a flat TOML table. Values of any scalar type are kept
// in their string form so the env helpers can parse them.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case string:
			out[k] = v
		case bool, int64, float64:
			out[k] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("config file %s: %s must be a string, number or boolean", path, k)
		}
	}
	return out, nil
}

// env looks keys up in the environment first, then in the config file.
type env struct {
	file map[string]string
}

func (e env) get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return e.file[key]
}

func (e env) envOr(key, fallback string) string {
	if v := e.get(key); v != "" {
		return v
	}
	return fallback
}

func (e env) envInt(key string, fallback int) int {
	if v := e.get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func (e env) envInt64(key string, fallback int64) int64 {
	if v := e.get(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func (e env) envFloat(key string, fallback float64) float64 {
	if v := e.get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func (e env) envBool(key string, fallback bool) bool {
	if v := e.get(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func (e env) envDuration(key string, fallback time.Duration) time.Duration {
	if v := e.get(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
