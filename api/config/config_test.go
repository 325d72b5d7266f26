package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"CONFIG_FILE",
	"PORT",
	"XRPL_DATA_API_URL",
	"XRPL_TIMEOUT",
	"XRPL_USER_AGENT",
	"CORS_ALLOW_ORIGINS",
	"LOG_LEVEL",
	"SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, DefaultXRPLDataAPIURL, cfg.XRPLDataAPIURL)
	assert.Zero(t, cfg.XRPLTimeout, "upstream calls are unbounded unless configured")
	assert.Equal(t, "xrpl-balance-proxy/1.0", cfg.XRPLUserAgent)
	assert.Equal(t, "*", cfg.CORSAllowOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("XRPL_DATA_API_URL", "http://localhost:5005")
	t.Setenv("XRPL_TIMEOUT", "3s")
	t.Setenv("XRPL_USER_AGENT", "probe")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://127.0.0.1:3000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SHUTDOWN_TIMEOUT", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://localhost:5005", cfg.XRPLDataAPIURL)
	assert.Equal(t, 3*time.Second, cfg.XRPLTimeout)
	assert.Equal(t, "probe", cfg.XRPLUserAgent)
	assert.Equal(t, "http://127.0.0.1:3000", cfg.CORSAllowOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
port: "7000"
log_level: warn
shutdown_timeout: 5s
xrpl:
  base_url: https://ledger.example.com
  timeout: 2s
  user_agent: from-file
cors:
  allow_origins: https://wallet.example.com
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7100", cfg.Port, "environment wins over the file")
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://ledger.example.com", cfg.XRPLDataAPIURL)
	assert.Equal(t, 2*time.Second, cfg.XRPLTimeout)
	assert.Equal(t, "from-file", cfg.XRPLUserAgent)
	assert.Equal(t, "https://wallet.example.com", cfg.CORSAllowOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad timeout", env: map[string]string{"XRPL_TIMEOUT": "soon"}},
		{name: "negative timeout", env: map[string]string{"XRPL_TIMEOUT": "-1s"}},
		{name: "bad shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "10"}},
		{name: "base url without scheme", env: map[string]string{"XRPL_DATA_API_URL": "data.ripple.com"}},
		{name: "missing config file", env: map[string]string{"CONFIG_FILE": "/does/not/exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", writeConfigFile(t, "xrpl: [unterminated"))

	_, err := Load()
	assert.ErrorContains(t, err, "parse yaml")
}
