package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("HCLOUD_TOKEN", "env-token")
	t.Setenv("HCLOUD_ENDPOINT", "https://mock.example.com/v1")
	t.Setenv("HCLOUD_APPLICATION", "my-tool")
	t.Setenv("HCLOUD_APPLICATION_VERSION", "1.2.3")
	t.Setenv("HCLOUD_TIMEOUT", "45s")
	t.Setenv("HCLOUD_POLL_INTERVAL", "250ms")
	t.Setenv("HCLOUD_INSECURE_SKIP_VERIFY", "true")

	cfg := FromEnv()

	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "https://mock.example.com/v1", cfg.Endpoint)
	assert.Equal(t, "my-tool", cfg.Application)
	assert.Equal(t, "1.2.3", cfg.ApplicationVersion)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.True(t, cfg.InsecureSkipVerify)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HCLOUD_TIMEOUT", "not-a-duration")
	t.Setenv("HCLOUD_INSECURE_SKIP_VERIFY", "yes-please")

	cfg := FromEnv()
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.False(t, cfg.InsecureSkipVerify)
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HCLOUD_TOKEN", "")

	path := writeConfigFile(t, `
token: file-token
endpoint: https://mock.example.com/v1
application: my-tool
application_version: 1.0.0
timeout: 20s
poll_interval: 200ms
poll_timeout: 2m
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "https://mock.example.com/v1", cfg.Endpoint)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, 200*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.PollTimeout)
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	t.Setenv("HCLOUD_TOKEN", "env-token")
	t.Setenv("HCLOUD_TIMEOUT", "90s")

	path := writeConfigFile(t, `
token: file-token
timeout: 20s
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestLoadFile_MissingToken(t *testing.T) {
	t.Setenv("HCLOUD_TOKEN", "")

	path := writeConfigFile(t, `
endpoint: https://mock.example.com/v1
`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token is required")
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "token: [unclosed")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{Token: "t"}
	assert.NoError(t, valid.Validate())

	missing := Config{}
	assert.Error(t, missing.Validate())

	negative := Config{Token: "t", Timeout: -time.Second}
	assert.Error(t, negative.Validate())
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	empty := Config{Token: "t"}
	assert.Empty(t, empty.Options(), "defaults are left to the client")

	full := Config{
		Token:              "t",
		Endpoint:           "https://mock.example.com/v1",
		Application:        "my-tool",
		Timeout:            10 * time.Second,
		PollInterval:       time.Second,
		PollTimeout:        time.Minute,
		InsecureSkipVerify: true,
	}
	assert.Len(t, full.Options(), 6)
}

func TestConfig_NewClient(t *testing.T) {
	t.Parallel()

	cfg := Config{Token: "t", Endpoint: "https://mock.example.com/v1"}
	client, err := cfg.NewClient()
	require.NoError(t, err)
	assert.Equal(t, "https://mock.example.com/v1", client.Endpoint())

	_, err = (&Config{}).NewClient()
	assert.Error(t, err)
}
