package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds hydrant's settings.
type Config struct {
	APIURL       string        `validate:"required"`
	AccessKey    string        `validate:"omitempty,len=64,hexadecimal"`
	Timeout      time.Duration `validate:"gt=0"`
	LogLevel     string        `validate:"oneof=debug info warn error"`
	LogFormat    string        `validate:"oneof=console json"`
	LogFile      string
	MetricsAddr  string        `validate:"omitempty,hostname_port"`
	PollInterval time.Duration `validate:"gte=1s"`
}

const (
	defaultConfigPath   = "~/.config/hydrant/config.toml"
	defaultAPIURL       = "127.0.0.1:45869"
	defaultTimeout      = 10 * time.Second
	defaultLogLevel     = "info"
	defaultLogFormat    = "console"
	defaultLogFile      = "~/.local/state/hydrant/hydrant.log"
	defaultPollInterval = 5 * time.Second

	envAPIURL    = "HYDRANT_API_URL"
	envAccessKey = "HYDRANT_ACCESS_KEY"
)

var validate = validator.New()

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:       defaultAPIURL,
		Timeout:      defaultTimeout,
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
		LogFile:      mustExpand(defaultLogFile),
		PollInterval: defaultPollInterval,
	}
}

// Load reads the config file, falling back to defaults when it is missing, then
// applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		if err := parse(file, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parse(r io.Reader, cfg *Config) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL       string `toml:"api_url"`
		AccessKey    string `toml:"access_key"`
		Timeout      string `toml:"timeout"`
		LogLevel     string `toml:"log_level"`
		LogFormat    string `toml:"log_format"`
		LogFile      string `toml:"log_file"`
		MetricsAddr  string `toml:"metrics_addr"`
		PollInterval string `toml:"poll_interval"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.AccessKey = strings.TrimSpace(raw.AccessKey)
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(raw.PollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envAccessKey)); v != "" {
		cfg.AccessKey = v
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config: %s fails %q", fe.Field(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
