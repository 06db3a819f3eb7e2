package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/germanamz/pagecraft/pkg/providers/huggingface"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "pagecraft.yaml", cfg.SettingsFile)
	assert.Equal(t, 2*time.Minute, cfg.Generation.Timeout)
	assert.Equal(t, huggingface.DefaultEndpoint, cfg.HuggingFace.Endpoint)
	assert.Equal(t, huggingface.DeviceWebGPU, cfg.HuggingFace.Options().Device)
	assert.Empty(t, cfg.HuggingFace.Options().FallbackDevice)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	data := `address: ":9090"
settings_file: /etc/pagecraft/settings.yaml
log_level: debug
generation:
  timeout: 45s
huggingface:
  device: wasm
  fallback_device: cpu
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, "/etc/pagecraft/settings.yaml", cfg.SettingsFile)
	assert.Equal(t, 45*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, huggingface.Options{Device: huggingface.DeviceWASM, FallbackDevice: huggingface.DeviceCPU}, cfg.HuggingFace.Options())
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PAGECRAFT_ADDRESS", ":9999")
	t.Setenv("PAGECRAFT_GENERATION_TIMEOUT", "5s")
	t.Setenv("PAGECRAFT_HUGGINGFACE_FALLBACK_DEVICE", "wasm")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Address)
	assert.Equal(t, 5*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, "wasm", cfg.HuggingFace.FallbackDevice)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("address: [unterminated"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestLevel_Invalid(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, Config{LogLevel: "loud"}.Level())
	assert.Equal(t, zerolog.WarnLevel, Config{LogLevel: "WARN"}.Level())
}
