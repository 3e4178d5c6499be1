package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, uint64(1000000), cfg.Execution.MaxCycles)
	assert.Equal(t, uint(0), cfg.Execution.ClockHz, "0 means unthrottled")
	assert.Equal(t, "run", cfg.Execution.DefaultMode)

	assert.Empty(t, cfg.Device.Directory)

	assert.True(t, cfg.Display.ColorOutput)
	assert.Equal(t, 16, cfg.Display.BytesPerLine)
	assert.Equal(t, "hex", cfg.Display.NumberFormat)

	assert.False(t, cfg.Trace.Enabled)
	assert.Equal(t, "trace.log", cfg.Trace.OutputFile)
	assert.Equal(t, 10, cfg.Trace.HistoryLines)
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}
	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "sicxe-emu" && path != "config.toml" {
			t.Errorf("Expected path in sicxe-emu directory or fallback, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Execution.MaxCycles = 5000000
	cfg.Execution.ClockHz = 1000000
	cfg.Device.Directory = "/tmp/sicxe-devices"
	cfg.Display.ColorOutput = false
	cfg.Trace.Enabled = true
	cfg.Trace.HistoryLines = 500

	require.NoError(t, cfg.SaveTo(configPath))

	_, err := os.Stat(configPath)
	require.NoError(t, err, "config file was not created")

	loaded, err := LoadFrom(configPath)
	require.NoError(t, err)

	assert.Equal(t, uint64(5000000), loaded.Execution.MaxCycles)
	assert.Equal(t, uint(1000000), loaded.Execution.ClockHz)
	assert.Equal(t, "/tmp/sicxe-devices", loaded.Device.Directory)
	assert.False(t, loaded.Display.ColorOutput)
	assert.True(t, loaded.Trace.Enabled)
	assert.Equal(t, 500, loaded.Trace.HistoryLines)
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}
	if cfg.Execution.MaxCycles != 1000000 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[execution]
max_cycles = "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
