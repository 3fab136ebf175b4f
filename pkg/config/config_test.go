package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// load builds a fresh viper from args with config discovery confined to an
// empty directory.
func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	fs := pflag.NewFlagSet("ship", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse(args))

	v := New()
	require.NoError(t, BindFlags(v, fs))
	return Load(v)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ship.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	assert.True(t, cfg.Push)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.Telemetry)
	assert.Empty(t, cfg.Message)
	assert.Empty(t, cfg.Remote)
	assert.Empty(t, cfg.PushLog)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := load(t, "-m", "Fix typo", "--no-push", "--remote", "upstream", "--push-log", "/tmp/p.log", "--debug")
	require.NoError(t, err)

	assert.Equal(t, "Fix typo", cfg.Message)
	assert.False(t, cfg.Push)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, "/tmp/p.log", cfg.PushLog)
	assert.True(t, cfg.Debug)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SHIP_REMOTE", "mirror")
	t.Setenv("SHIP_PUSH", "false")
	t.Setenv("SHIP_TELEMETRY", "true")

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "mirror", cfg.Remote)
	assert.False(t, cfg.Push)
	assert.True(t, cfg.Telemetry)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, "remote: fromfile\npush: false\npush-log: /var/tmp/ship.log\n")

	cfg, err := load(t, "--config", path)
	require.NoError(t, err)

	assert.Equal(t, "fromfile", cfg.Remote)
	assert.False(t, cfg.Push)
	assert.Equal(t, "/var/tmp/ship.log", cfg.PushLog)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoad_FlagBeatsEnvBeatsFile(t *testing.T) {
	path := writeConfig(t, "remote: fromfile\n")
	t.Setenv("SHIP_REMOTE", "fromenv")

	cfg, err := load(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Remote)

	cfg, err = load(t, "--config", path, "--remote", "fromflag")
	require.NoError(t, err)
	assert.Equal(t, "fromflag", cfg.Remote)
}

func TestLoad_DiscoveredFile(t *testing.T) {
	xdg := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "ship"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "ship", "config.yaml"), []byte("telemetry: true\n"), 0o644))

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", xdg)
	fs := pflag.NewFlagSet("ship", pflag.ContinueOnError)
	AddFlags(fs)
	v := New()
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.True(t, cfg.Telemetry)
	assert.Equal(t, filepath.Join(xdg, "ship", "config.yaml"), cfg.ConfigFile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := load(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
