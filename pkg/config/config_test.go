package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeConfigFile marshals doc to YAML and writes it as a config file
// inside a fresh temp dir, returning the file path.
func writeConfigFile(t *testing.T, doc map[string]any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfigFile(t, map[string]any{
		"logging": map[string]any{
			"level":  "debug",
			"output": "stdout",
		},
		"locales": []string{"de_DE", "de"},
		"cache": map[string]any{
			"type": "badger",
			"badger": map[string]any{
				"path": "/var/cache/thunar-vfs",
			},
		},
		"monitor": map[string]any{
			"max_watches": 128,
		},
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level, "level is normalized to upper case")
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, []string{"de_DE", "de"}, cfg.Locales)
	assert.Equal(t, "badger", cfg.Cache.Type)
	assert.Equal(t, "/var/cache/thunar-vfs", cfg.Cache.Badger["path"])
	assert.Equal(t, 128, cfg.Monitor.MaxWatches)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [not: valid"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_NoDefaultFileUsesDefaults(t *testing.T) {
	// Point the default lookup at an empty config home.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Empty(t, cfg.Locales)
	assert.Zero(t, cfg.Monitor.MaxWatches)
}

func TestLoad_DefaultFileInConfigHome(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, "thunar-vfs")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	data, err := yaml.Marshal(map[string]any{
		"logging": map[string]any{"level": "warn"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0o644))

	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output, "unset fields still default")
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, map[string]any{
		"logging": map[string]any{
			"level":  "info",
			"output": "stderr",
		},
	})

	t.Setenv("THUNAR_VFS_LOGGING_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{
			name: "bad log level",
			doc: map[string]any{
				"logging": map[string]any{"level": "verbose"},
			},
		},
		{
			name: "bad cache type",
			doc: map[string]any{
				"cache": map[string]any{"type": "redis"},
			},
		},
		{
			name: "negative max watches",
			doc: map[string]any{
				"monitor": map[string]any{"max_watches": -1},
			},
		},
		{
			name: "invalid locale identifier",
			doc: map[string]any{
				"locales": []string{"de DE"},
			},
		},
		{
			name: "badger without path",
			doc: map[string]any{
				"cache": map[string]any{"type": "badger"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.doc)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "memory", cfg.Cache.Type)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "debug", Output: "/var/log/thunar-vfs.log"},
		Cache:   CacheConfig{Type: "none"},
	}
	ApplyDefaults(cfg)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "/var/log/thunar-vfs.log", cfg.Logging.Output)
	assert.Equal(t, "none", cfg.Cache.Type)
}

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, Validate(cfg))
}
