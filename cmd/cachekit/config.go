package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// ConfigFileName is the config file looked up in the working directory when
// --config is not given.
const ConfigFileName = ".cachekit.json"

var (
	errConfigInvalid      = errors.New("invalid config")
	errConfigFileNotFound = errors.New("config file not found")
)

// Config sizes the structures a session works on.
type Config struct {
	Capacity   int     `json:"capacity"`
	LoadFactor float64 `json:"load_factor"` //nolint:tagliatelle // snake_case for config file
	CacheSize  int     `json:"cache_size"`  //nolint:tagliatelle // snake_case for config file
	History    string  `json:"history,omitempty"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Capacity:   64,
		LoadFactor: 0.75,
		CacheSize:  16,
	}
}

// LoadConfig reads a JSONC config file on top of the defaults. A missing file
// is an error only when mustExist is set.
func LoadConfig(path string, mustExist bool) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	fileCfg, err := parseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	return mergeConfig(cfg, fileCfg), nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Capacity != 0 {
		base.Capacity = overlay.Capacity
	}
	if overlay.LoadFactor != 0 {
		base.LoadFactor = overlay.LoadFactor
	}
	if overlay.CacheSize != 0 {
		base.CacheSize = overlay.CacheSize
	}
	if overlay.History != "" {
		base.History = overlay.History
	}
	return base
}

func validateConfig(cfg Config) error {
	if cfg.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", errConfigInvalid, cfg.Capacity)
	}
	if cfg.LoadFactor <= 0 || cfg.LoadFactor > 1 {
		return fmt.Errorf("%w: load_factor must be in (0, 1], got %v", errConfigInvalid, cfg.LoadFactor)
	}
	if cfg.CacheSize <= 0 {
		return fmt.Errorf("%w: cache_size must be positive, got %d", errConfigInvalid, cfg.CacheSize)
	}
	return nil
}
