package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/backoffice/internal/resource"
)

// Config holds the backoffice settings.
type Config struct {
	APIBase              string
	PageSize             int
	RequestTimeout       time.Duration
	CloseDeleteOnFailure bool
	LogFile              string
	MetricsAddr          string
	Resource             string
}

const (
	defaultConfigPath     = "~/.config/backoffice/config.toml"
	defaultLogFile        = "~/.local/state/backoffice/backoffice.log"
	defaultAPIBase        = "http://localhost:5000/api"
	defaultPageSize       = 5
	defaultRequestTimeout = 5 * time.Second
	maxPageSize           = 100
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:              defaultAPIBase,
		PageSize:             defaultPageSize,
		RequestTimeout:       defaultRequestTimeout,
		CloseDeleteOnFailure: true,
		LogFile:              mustExpand(defaultLogFile),
		Resource:             resource.DefaultName,
	}
}

// DefaultPath returns the config file read when no path is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Load reads the config file at path, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase              string `toml:"api_base"`
		PageSize             *int   `toml:"page_size"`
		RequestTimeout       string `toml:"request_timeout"`
		CloseDeleteOnFailure *bool  `toml:"close_delete_on_failure"`
		LogFile              string `toml:"log_file"`
		MetricsAddr          string `toml:"metrics_addr"`
		Resource             string `toml:"resource"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
	}
	if raw.PageSize != nil {
		if *raw.PageSize < 1 || *raw.PageSize > maxPageSize {
			return Config{}, fmt.Errorf("page_size must be between 1 and %d, got %d", maxPageSize, *raw.PageSize)
		}
		cfg.PageSize = *raw.PageSize
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("request_timeout must be positive, got %s", v)
		}
		cfg.RequestTimeout = d
	}
	if raw.CloseDeleteOnFailure != nil {
		cfg.CloseDeleteOnFailure = *raw.CloseDeleteOnFailure
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)
	if v := strings.TrimSpace(raw.Resource); v != "" {
		r, err := resource.Lookup(v)
		if err != nil {
			return Config{}, fmt.Errorf("config resource: %w", err)
		}
		cfg.Resource = r.Name
	}

	return cfg, nil
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
