package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNothingConfigured(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":12345", cfg.ListenAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 30, cfg.WriteTimeout)
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "switchboard.yaml")
	data := "listen_addr: \":5000\"\nmetrics_addr: \":9100\"\nwrite_timeout: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, 5, cfg.WriteTimeout)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "switchboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":5000\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 30, cfg.WriteTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "switchboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":5000\"\n"), 0o644))

	t.Setenv("SWITCHBOARD_ADDR", ":6000")
	t.Setenv("SWITCHBOARD_WRITE_TIMEOUT", "7")
	t.Setenv("SWITCHBOARD_METRICS_ADDR", ":9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.ListenAddr)
	assert.Equal(t, ":9999", cfg.MetricsAddr)
	assert.Equal(t, 7, cfg.WriteTimeout)
}

func TestLoad_BadEnvDurationIsIgnored(t *testing.T) {
	t.Setenv("SWITCHBOARD_WRITE_TIMEOUT", "soon")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.WriteTimeout)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "switchboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
