// Package config loads client configuration from the environment and
// from YAML files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/imamik/hcapi/hcapi"
)

// Config holds everything needed to construct a client.
type Config struct {
	Token              string        `mapstructure:"token" yaml:"token"`
	Endpoint           string        `mapstructure:"endpoint" yaml:"endpoint"`
	Application        string        `mapstructure:"application" yaml:"application"`
	ApplicationVersion string        `mapstructure:"application_version" yaml:"application_version"`
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout"`
	PollInterval       time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	PollTimeout        time.Duration `mapstructure:"poll_timeout" yaml:"poll_timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// FromEnv loads the configuration from environment variables. If a
// variable is not set or invalid, a zero value is used and the client
// falls back to its defaults.
//
// Environment Variables:
//   - HCLOUD_TOKEN
//   - HCLOUD_ENDPOINT
//   - HCLOUD_APPLICATION
//   - HCLOUD_APPLICATION_VERSION
//   - HCLOUD_TIMEOUT (e.g. 30s)
//   - HCLOUD_POLL_INTERVAL (e.g. 500ms)
//   - HCLOUD_POLL_TIMEOUT (e.g. 5m)
//   - HCLOUD_INSECURE_SKIP_VERIFY (true/false)
func FromEnv() *Config {
	return &Config{
		Token:              os.Getenv("HCLOUD_TOKEN"),
		Endpoint:           os.Getenv("HCLOUD_ENDPOINT"),
		Application:        os.Getenv("HCLOUD_APPLICATION"),
		ApplicationVersion: os.Getenv("HCLOUD_APPLICATION_VERSION"),
		Timeout:            parseDuration("HCLOUD_TIMEOUT", 0),
		PollInterval:       parseDuration("HCLOUD_POLL_INTERVAL", 0),
		PollTimeout:        parseDuration("HCLOUD_POLL_TIMEOUT", 0),
		InsecureSkipVerify: parseBool("HCLOUD_INSECURE_SKIP_VERIFY", false),
	}
}

// LoadFile reads and parses the configuration from a YAML file.
// Environment variables take precedence over file values.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(rawConfig); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	env := FromEnv()
	if env.Token != "" {
		c.Token = env.Token
	}
	if env.Endpoint != "" {
		c.Endpoint = env.Endpoint
	}
	if env.Application != "" {
		c.Application = env.Application
		c.ApplicationVersion = env.ApplicationVersion
	}
	if env.Timeout != 0 {
		c.Timeout = env.Timeout
	}
	if env.PollInterval != 0 {
		c.PollInterval = env.PollInterval
	}
	if env.PollTimeout != 0 {
		c.PollTimeout = env.PollTimeout
	}
	if env.InsecureSkipVerify {
		c.InsecureSkipVerify = true
	}
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("token is required (set token in the config file or HCLOUD_TOKEN)")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("poll_interval must not be negative")
	}
	if c.PollTimeout < 0 {
		return fmt.Errorf("poll_timeout must not be negative")
	}
	return nil
}

// Options converts the configuration into client options. The token is
// not part of the result, it is passed to hcapi.NewClient directly.
func (c *Config) Options() []hcapi.Option {
	var opts []hcapi.Option
	if c.Endpoint != "" {
		opts = append(opts, hcapi.WithEndpoint(c.Endpoint))
	}
	if c.Application != "" {
		opts = append(opts, hcapi.WithApplication(c.Application, c.ApplicationVersion))
	}
	if c.Timeout != 0 {
		opts = append(opts, hcapi.WithTimeout(c.Timeout))
	}
	if c.PollInterval != 0 {
		opts = append(opts, hcapi.WithPollInterval(c.PollInterval))
	}
	if c.PollTimeout != 0 {
		opts = append(opts, hcapi.WithPollTimeout(c.PollTimeout))
	}
	if c.InsecureSkipVerify {
		opts = append(opts, hcapi.WithInsecureSkipVerify())
	}
	return opts
}

// NewClient builds a client from the configuration.
func (c *Config) NewClient(extra ...hcapi.Option) (*hcapi.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return hcapi.NewClient(c.Token, append(c.Options(), extra...)...), nil
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseBool parses a boolean from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseBool(envVar string, defaultVal bool) bool {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}

	return b
}
