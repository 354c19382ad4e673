package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_JSONC(t *testing.T) {
	path := writeConfig(t, `{
		// small index for experiments
		"capacity": 8,
		"load_factor": 0.5, /* half full */
		"history": "/tmp/cachekit_history",
	}`)

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Capacity:   8,
		LoadFactor: 0.5,
		CacheSize:  DefaultConfig().CacheSize,
		History:    "/tmp/cachekit_history",
	}, cfg)
}

func TestLoadConfig_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(path, true)
	require.ErrorIs(t, err, errConfigFileNotFound)
}

func TestLoadConfig_Invalid(t *testing.T) {
	for name, content := range map[string]string{
		"syntax":        `{"capacity": }`,
		"unknown field": `{"capacity": 8, "shards": 4}`,
		"wrong type":    `{"capacity": "eight"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content), true)
			require.ErrorIs(t, err, errConfigInvalid)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(DefaultConfig()))

	for name, mutate := range map[string]func(*Config){
		"zero capacity":      func(c *Config) { c.Capacity = 0 },
		"zero load factor":   func(c *Config) { c.LoadFactor = 0 },
		"load factor over 1": func(c *Config) { c.LoadFactor = 1.01 },
		"negative cache":     func(c *Config) { c.CacheSize = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			require.ErrorIs(t, validateConfig(cfg), errConfigInvalid)
		})
	}
}

func TestRun_ConfigThenFlags(t *testing.T) {
	path := writeConfig(t, `{"capacity": 2, "load_factor": 0.5}`)

	out, _, err := runLines(t, []string{"--config", path}, "put a 1", "put b 2")
	require.NoError(t, err)
	requireOutput(t, []string{"ok", "rejected b: load factor ceiling reached (1/2)"}, out)

	out, _, err = runLines(t, []string{"--config", path, "-c", "4"}, "put a 1", "put b 2")
	require.NoError(t, err)
	requireOutput(t, []string{"ok", "ok"}, out)

	_, _, err = runLines(t, []string{"--config", filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorIs(t, err, errConfigFileNotFound)
}
