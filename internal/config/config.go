// Package config loads client settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	EnvAPIURL = "UNIFIND_API_URL"
	EnvConfig = "UNIFIND_CONFIG"
)

// Config holds client settings.
type Config struct {
	APIURL         string `yaml:"api_url"`
	SessionDB      string `yaml:"session_db"`
	CacheTTL       string `yaml:"cache_ttl"`
	RequestTimeout string `yaml:"request_timeout"`
	LogFile        string `yaml:"log_file"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		APIURL:         "http://localhost:5000",
		SessionDB:      DefaultSessionPath(),
		CacheTTL:       "5m",
		RequestTimeout: "15s",
	}
}

// DefaultSessionPath returns the session database path under the user's
// config directory.
func DefaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "unifind-session.sqlite3"
	}
	return filepath.Join(dir, "unifind", "session.sqlite3")
}

// DefaultPath returns the config file named by UNIFIND_CONFIG, or the one
// under the user's config directory.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "unifind", "config.yaml")
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if u := os.Getenv(EnvAPIURL); u != "" {
		c.APIURL = u
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
}

// Validate checks that the API URL is absolute and durations parse.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: must be an absolute http(s) URL", c.APIURL)
	}
	for name, v := range map[string]string{"cache_ttl": c.CacheTTL, "request_timeout": c.RequestTimeout} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
	}
	return nil
}

// GetCacheTTL returns how long fetched report lists stay fresh.
func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// GetRequestTimeout returns the HTTP client timeout.
func (c *Config) GetRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}
