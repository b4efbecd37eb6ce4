package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracewire.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "tracewire-demo", cfg.ServiceName)
	assert.True(t, cfg.Sampled)
	assert.Equal(t, 5, cfg.MessageCount)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
service_name: checkout
destination: payments
sampled: false
message_count: 3
zipkin_url: http://localhost:9411/api/v2/spans
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "checkout", cfg.ServiceName)
	assert.Equal(t, "payments", cfg.Destination)
	assert.False(t, cfg.Sampled)
	assert.Equal(t, 3, cfg.MessageCount)
	assert.Equal(t, "http://localhost:9411/api/v2/spans", cfg.ZipkinURL)
	// unset fields keep their defaults
	assert.Equal(t, "inmemory", cfg.System)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "service_name: [broken")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.ServiceName = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Destination = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MessageCount = 0
	assert.Error(t, cfg.Validate())
}
