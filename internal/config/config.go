// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage backends a draft can live in.
const (
	BackendFile   = "file"
	BackendNATS   = "nats"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists every accepted backend value.
var Backends = []string{BackendFile, BackendNATS, BackendRedis, BackendSQLite, BackendMemory}

// Config holds all configuration values for listwiz.
type Config struct {
	DataDir       string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	LogFile       string `mapstructure:"log_file" yaml:"log_file"`
	Backend       string `mapstructure:"backend" yaml:"backend"`
	DraftKeyName  string `mapstructure:"draft_key" yaml:"draft_key"`
	Profile       string `mapstructure:"profile" yaml:"profile"`
	DebounceMs    int    `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	RedisAddr     string `mapstructure:"redis_addr" yaml:"redis_addr"`
	RedisTTLHours int    `mapstructure:"redis_ttl_hours" yaml:"redis_ttl_hours"`
	SQLitePath    string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	NATSBucket    string `mapstructure:"nats_bucket" yaml:"nats_bucket"`
}

var envKeys = []string{
	"data_dir",
	"log_level",
	"log_file",
	"backend",
	"draft_key",
	"profile",
	"debounce_ms",
	"redis_addr",
	"redis_ttl_hours",
	"sqlite_path",
	"nats_bucket",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("listwiz")

	v.SetDefault("data_dir", ".listwiz")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("backend", BackendFile)
	v.SetDefault("draft_key", "")
	v.SetDefault("profile", "default")
	v.SetDefault("debounce_ms", 500)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_ttl_hours", 24)
	v.SetDefault("sqlite_path", "")
	v.SetDefault("nats_bucket", "listwiz_drafts")

	v.SetEnvPrefix("LISTWIZ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings so Unmarshal sees env-only keys
	for _, key := range envKeys {
		if err := v.BindEnv(key, "LISTWIZ_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		// Need to set config file explicitly for merge
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects values no backend could work with.
func (c *Config) Validate() error {
	known := false
	for _, b := range Backends {
		if c.Backend == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown backend %q (want one of %s)", c.Backend, strings.Join(Backends, ", "))
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	if c.RedisTTLHours < 0 {
		return fmt.Errorf("redis_ttl_hours must not be negative, got %d", c.RedisTTLHours)
	}
	return nil
}

// DraftKey returns the storage key for the draft slot. An explicit
// draft_key wins; otherwise the key is derived from the profile name.
func (c *Config) DraftKey() string {
	if c.DraftKeyName != "" {
		return c.DraftKeyName
	}
	profile := slug.Make(c.Profile)
	if profile == "" {
		profile = "default"
	}
	return "listing-draft-" + profile
}

// Debounce returns the quiet period before a draft write.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// RedisTTL returns the expiry applied to Redis drafts.
func (c *Config) RedisTTL() time.Duration {
	return time.Duration(c.RedisTTLHours) * time.Hour
}

// DatabasePath returns the sqlite file, defaulting into the data dir.
func (c *Config) DatabasePath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.DataDir, "drafts.db")
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/listwiz/listwiz.yml or $XDG_CONFIG_HOME/listwiz/listwiz.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "listwiz", "listwiz.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "listwiz", "listwiz.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "listwiz.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return writeFile(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return writeFile(ProjectPath(), cfg)
}

func writeFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
