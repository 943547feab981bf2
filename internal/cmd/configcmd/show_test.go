package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/md-compiler/internal/config"
)

// clearEnv unsets every MDC_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range config.EnvVars {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{Engine: "commonmark", Extension: ".htm"}).Save(configPath))

	var out bytes.Buffer
	err := runShow(configPath, true, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "commonmark  (source: config)")
	assert.Contains(t, out.String(), ".htm  (source: config)")
	assert.Contains(t, out.String(), "table  (source: default)")
	assert.Contains(t, out.String(), "Config file: "+configPath)
	assert.NotContains(t, out.String(), "file not found")
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{Engine: "native"}).Save(configPath))
	t.Setenv("MDC_ENGINE", "commonmark")

	var out bytes.Buffer
	require.NoError(t, runShow(configPath, true, &out))
	assert.Contains(t, out.String(), "commonmark  (source: MDC_ENGINE)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	var out bytes.Buffer
	err := runShow(configPath, true, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "native  (source: default)")
	assert.Contains(t, out.String(), ".html  (source: default)")
	assert.Contains(t, out.String(), "(file not found)")
}

func TestRunShow_DefaultPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	var out bytes.Buffer
	require.NoError(t, runShow("", true, &out))
	assert.Contains(t, out.String(), filepath.Join(dir, "mdc", "config.yml"))
}
