package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is prepended to every environment override, e.g. USERDIR_API_URL
const EnvPrefix = "USERDIR_"

// Config represents the application configuration
type Config struct {
	Version int          `toml:"version"`
	API     APISettings  `toml:"api" envPrefix:"API_"`
	UI      UISettings   `toml:"ui" envPrefix:"UI_"`
	Source  SourceConfig `toml:"source" envPrefix:"SOURCE_"`
}

// APISettings configures the random user endpoint
type APISettings struct {
	BaseURL       string   `toml:"base_url" env:"URL"`
	Results       int      `toml:"results" env:"RESULTS"`
	Pages         int      `toml:"pages" env:"PAGES"`
	Seed          string   `toml:"seed" env:"SEED"`
	Nationalities []string `toml:"nat" env:"NAT"`
	Timeout       Duration `toml:"timeout" env:"TIMEOUT"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	FilterDelay Duration `toml:"filter_delay" env:"FILTER_DELAY"`
	DateFormat  string   `toml:"date_format" env:"DATE_FORMAT"`
	Mouse       bool     `toml:"mouse" env:"MOUSE"`
	Preview     bool     `toml:"preview" env:"PREVIEW"`
}

// SourceConfig selects a local JSON file instead of the API
type SourceConfig struct {
	File  string `toml:"file" env:"FILE"`
	Watch bool   `toml:"watch" env:"WATCH"`
}

// Duration is a time.Duration written as a Go duration string ("500ms")
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText writes the duration as a Go duration string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
	environ  map[string]string
}

// NewConfigService creates a config service for the default location,
// $XDG_CONFIG_HOME/userdir/config.toml
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return NewConfigServiceAt(filepath.Join(configDir, "userdir", "config.toml"))
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// withEnviron replaces the process environment for overrides (tests)
func (cs *configService) withEnviron(environ map[string]string) *configService {
	cs.environ = environ
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file, falling back to defaults when it does not
// exist, and applies USERDIR_* environment overrides
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	opts := env.Options{Prefix: EnvPrefix}
	if cs.environ != nil {
		opts.Environment = cs.environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects values the application cannot run with
func (c *Config) Validate() error {
	switch {
	case c.API.BaseURL == "" && c.Source.File == "":
		return errors.New("config: api.base_url is empty and no source file is set")
	case c.API.Results < 1 || c.API.Results > 5000:
		return fmt.Errorf("config: api.results must be between 1 and 5000, got %d", c.API.Results)
	case c.API.Pages < 1:
		return fmt.Errorf("config: api.pages must be at least 1, got %d", c.API.Pages)
	case c.UI.FilterDelay.Duration < 0:
		return fmt.Errorf("config: ui.filter_delay must not be negative, got %s", c.UI.FilterDelay)
	case c.UI.DateFormat == "":
		return errors.New("config: ui.date_format is empty")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:       "https://randomuser.me/api/",
			Results:       15,
			Pages:         1,
			Nationalities: []string{},
			Timeout:       Duration{10 * time.Second},
		},
		UI: UISettings{
			FilterDelay: Duration{500 * time.Millisecond},
			DateFormat:  "02.01.2006",
			Mouse:       true,
			Preview:     true,
		},
		Source: SourceConfig{
			Watch: true,
		},
	}
}
