package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file under a fake home directory with the
// required 0600 permissions and points loading at it.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "screend")
	require.NoError(t, os.MkdirAll(dir, 0700))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadWithFile("")
	require.NoError(t, err)

	assert.Equal(t, 8170, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout.Duration())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "disabled", cfg.Reasoner.Provider)
	assert.Equal(t, 1, cfg.Reasoner.Retries)
	assert.Equal(t, 3, cfg.Suggester.TopK)
	assert.True(t, cfg.Screening.PreferNegativeAssertion)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  http_port: 9999
  shutdown_timeout: 5s
logging:
  level: debug
  format: console
reasoner:
  provider: anthropic
  api_key: sk-test-123
  model: claude-sonnet-4-20250514
  timeout: 45s
suggester:
  top_k: 5
`)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout.Duration())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "anthropic", cfg.Reasoner.Provider)
	assert.Equal(t, "sk-test-123", cfg.Reasoner.APIKey.Value())
	assert.Equal(t, 45*time.Second, cfg.Reasoner.Timeout.Duration())
	assert.Equal(t, 5, cfg.Suggester.TopK)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  http_port: 9999\n")
	t.Setenv("SCREEND_SERVER_HTTP_PORT", "7777")
	t.Setenv("SCREEND_LOGGING_LEVEL", "warn")
	t.Setenv("SCREEND_REASONER_API_KEY", "sk-from-env")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "sk-from-env", cfg.Reasoner.APIKey.Value())
}

func TestLoadRejectsInsecurePermissions(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "screend")
	require.NoError(t, os.MkdirAll(dir, 0700))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http_port: 9999\n"), 0644))

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure config file permissions")
}

func TestLoadRejectsPathOutsideAllowedDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	outside := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(outside, []byte(""), 0600))

	_, err := LoadWithFile(outside)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path validation failed")
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults valid",
			mutate: func(*Config) {},
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid log level",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid log format",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Reasoner.Provider = "bard" },
			wantErr: "invalid reasoner provider",
		},
		{
			name:    "provider without key",
			mutate:  func(c *Config) { c.Reasoner.Provider = "openai" },
			wantErr: "requires an api key",
		},
		{
			name:    "zero top_k",
			mutate:  func(c *Config) { c.Suggester.TopK = 0 },
			wantErr: "top_k",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestSecretRedaction(t *testing.T) {
	s := Secret("sk-super-secret")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", s))
	assert.Equal(t, "Secret([REDACTED])", fmt.Sprintf("%#v", s))
	assert.Equal(t, "sk-super-secret", s.Value())
	assert.True(t, s.IsSet())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `"[REDACTED]"`, string(data))

	var empty Secret
	assert.Equal(t, "", empty.String())
	assert.False(t, empty.IsSet())
}

func TestDurationUnmarshal(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("90s")))
	assert.Equal(t, 90*time.Second, d.Duration())

	assert.Error(t, d.UnmarshalText([]byte("-5s")))
	assert.Error(t, d.UnmarshalText([]byte("not-a-duration")))

	out, err := json.Marshal(Duration(time.Minute))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m0s"`, string(out))
}
