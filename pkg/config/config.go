// Package config loads and persists camd configuration: per-provider API
// keys and the cache window. The config file lives at ~/.camd/config.yaml
// with restricted permissions since it holds credentials. Environment
// variables override file values at load time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	camderrors "github.com/cheapamd/camd/pkg/errors"
)

const (
	configFileName = "config.yaml"
	cacheFileName  = "cache.json"

	// DefaultCacheWindow is how long aggregation results are served from
	// cache before providers are re-queried.
	DefaultCacheWindow = 5 * time.Minute

	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "CAMD_CONFIG_DIR"

	// EnvCacheMinutes overrides the cache window, in minutes.
	EnvCacheMinutes = "CAMD_CACHE_MINUTES"

	// EnvDebug enables debug logging when set to a non-empty value.
	EnvDebug = "CAMD_DEBUG"

	// EnvRunpodAPIKey overrides the RunPod API key.
	EnvRunpodAPIKey = "RUNPOD_API_KEY"

	// EnvVultrAPIKey overrides the Vultr API key.
	EnvVultrAPIKey = "VULTR_API_KEY"
)

// Credential holds one provider's API key.
type Credential struct {
	APIKey string `yaml:"apiKey"`
}

// Config is the persisted camd configuration.
type Config struct {
	// Providers maps provider name to its credential.
	Providers map[string]Credential `yaml:"providers"`

	// CacheMinutes is the cache window in minutes. Zero means default.
	CacheMinutes int `yaml:"cacheMinutes,omitempty"`
}

// Dir returns the configuration directory, honoring CAMD_CONFIG_DIR.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".camd"
	}
	return filepath.Join(home, ".camd")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), configFileName)
}

// CachePath returns the cache file path.
func CachePath() string {
	return filepath.Join(Dir(), cacheFileName)
}

// Exists reports whether a config file is present.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Load reads the config file and applies environment overrides.
// A missing file yields a CONFIG_MISSING structured error; environment
// variables alone can still produce a usable config via LoadOrEnv.
func Load() (*Config, error) {
	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, camderrors.Newf(camderrors.ErrCodeConfigMissing,
				"no configuration found at %s, run 'camd setup' or use --demo", Path())
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", Path(), err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// LoadOrEnv returns the file config when present, otherwise a config built
// purely from environment variables. It fails with CONFIG_MISSING only when
// neither source yields a credential.
func LoadOrEnv() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		if !camderrors.HasCode(err, camderrors.ErrCodeConfigMissing) {
			return nil, err
		}
		cfg = &Config{}
		cfg.applyEnv()
		if len(cfg.Providers) == 0 {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if c.Providers == nil {
		c.Providers = make(map[string]Credential)
	}
	if key := os.Getenv(EnvRunpodAPIKey); key != "" {
		c.Providers["runpod"] = Credential{APIKey: key}
	}
	if key := os.Getenv(EnvVultrAPIKey); key != "" {
		c.Providers["vultr"] = Credential{APIKey: key}
	}
	if mins := os.Getenv(EnvCacheMinutes); mins != "" {
		if m, err := strconv.Atoi(mins); err == nil && m > 0 {
			c.CacheMinutes = m
		}
	}
}

// CacheWindow returns the configured cache window.
func (c *Config) CacheWindow() time.Duration {
	if c.CacheMinutes > 0 {
		return time.Duration(c.CacheMinutes) * time.Minute
	}
	return DefaultCacheWindow
}

// Credential returns the stored credential for a provider.
func (c *Config) Credential(provider string) (Credential, bool) {
	cred, ok := c.Providers[provider]
	return cred, ok && cred.APIKey != ""
}

// ConfiguredProviders returns the names of providers with a non-empty key,
// in map order (callers sort when ordering matters).
func (c *Config) ConfiguredProviders() []string {
	names := make([]string, 0, len(c.Providers))
	for name, cred := range c.Providers {
		if cred.APIKey != "" {
			names = append(names, name)
		}
	}
	return names
}

// Save writes the config file with owner-only permissions, creating the
// config directory if needed. The file is replaced atomically so a crash
// mid-write never leaves a truncated credentials file.
func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp := Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, Path()); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}
