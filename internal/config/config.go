// Package config loads FluffyMUD settings from a YAML file overlaid with
// FLUFFYMUD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FLUFFYMUD_"

// DefaultPath is where the CLI looks for a config file.
const DefaultPath = "fluffymud.yaml"

type Config struct {
	Server  ServerConfig  `yaml:"server" envPrefix:"SERVER_"`
	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOG_"`
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`
	Game    GameConfig    `yaml:"game" envPrefix:"GAME_"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr" env:"ADDR"`
	AdminAccount string `yaml:"admin_account" env:"ADMIN_ACCOUNT"`
	TLS          bool   `yaml:"tls" env:"TLS"`
	CertFile     string `yaml:"cert_file" env:"CERT_FILE"`
	KeyFile      string `yaml:"key_file" env:"KEY_FILE"`
}

type StorageConfig struct {
	AccountsPath string `yaml:"accounts" env:"ACCOUNTS"`
	AreasPath    string `yaml:"areas" env:"AREAS"`
	ProfilesPath string `yaml:"profiles" env:"PROFILES"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
	Path string `yaml:"path" env:"PATH"`
}

type GameConfig struct {
	DisabledCommands []string `yaml:"disabled_commands,omitempty" env:"DISABLED_COMMANDS" envSeparator:","`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":4000",
			AdminAccount: "admin",
			CertFile:     filepath.Join("data", "tls", "cert.pem"),
			KeyFile:      filepath.Join("data", "tls", "key.pem"),
		},
		Storage: StorageConfig{
			AccountsPath: filepath.Join("data", "accounts.json"),
			AreasPath:    filepath.Join("data", "areas"),
			ProfilesPath: filepath.Join("data", "profiles.db"),
		},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Addr: "127.0.0.1:9100", Path: "/metrics"},
	}
}

// Load reads path on top of the defaults, then applies environment
// overrides. A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays FLUFFYMUD_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	if strings.TrimSpace(c.Storage.AccountsPath) == "" {
		return fmt.Errorf("storage.accounts is required")
	}
	if strings.TrimSpace(c.Storage.ProfilesPath) == "" {
		return fmt.Errorf("storage.profiles is required")
	}
	if c.Server.TLS && (c.Server.CertFile == "" || c.Server.KeyFile == "") {
		return fmt.Errorf("server.cert_file and server.key_file are required with tls")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Metrics.Addr != "" && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /")
	}
	return nil
}

// Save writes cfg as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
