// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Store backend identifiers accepted by the "store" key.
const (
	StoreFile = "file"
	StoreNATS = "nats"
)

// Email transport identifiers accepted by the "email_transport" key.
const (
	EmailEndpoint = "endpoint"
	EmailSES      = "ses"
)

// Config holds all configuration values for intake.
type Config struct {
	RecipientEmail string        `mapstructure:"recipient_email" yaml:"recipient_email"`
	SenderEmail    string        `mapstructure:"sender_email" yaml:"sender_email"`
	EmailEndpoint  string        `mapstructure:"email_endpoint" yaml:"email_endpoint"`
	EmailTransport string        `mapstructure:"email_transport" yaml:"email_transport"`
	AWSRegion      string        `mapstructure:"aws_region" yaml:"aws_region"`
	AssistModel    string        `mapstructure:"assist_model" yaml:"assist_model"`
	AssistAPIKey   string        `mapstructure:"assist_api_key" yaml:"assist_api_key"`
	Locale         string        `mapstructure:"locale" yaml:"locale"`
	DataDir        string        `mapstructure:"data_dir" yaml:"data_dir"`
	Store          string        `mapstructure:"store" yaml:"store"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	RequestRetries int           `mapstructure:"request_retries" yaml:"request_retries"`
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("intake")

	// Set defaults (recipient_email has no default - it's required for submit)
	v.SetDefault("sender_email", "no-reply@intake.local")
	v.SetDefault("email_endpoint", "")
	v.SetDefault("email_transport", EmailEndpoint)
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("assist_model", "gemini-2.0-flash")
	v.SetDefault("assist_api_key", "")
	v.SetDefault("locale", "en")
	v.SetDefault("data_dir", ".intake")
	v.SetDefault("store", StoreFile)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("request_retries", 3)

	// Setup ENV binding with INTAKE_ prefix
	v.SetEnvPrefix("INTAKE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better parsing of non-string values
	envKeys := []string{
		"recipient_email", "sender_email", "email_endpoint", "email_transport",
		"aws_region", "assist_model", "assist_api_key", "locale", "data_dir",
		"store", "log_level", "log_file", "request_timeout", "request_retries",
	}
	for _, key := range envKeys {
		envName := "INTAKE_" + strings.ToUpper(key)
		if err := v.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
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

// Validate checks enum-valued keys for unknown values.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreNATS:
	default:
		return fmt.Errorf("invalid store backend %q (want %q or %q)", c.Store, StoreFile, StoreNATS)
	}
	switch c.EmailTransport {
	case EmailEndpoint, EmailSES:
	default:
		return fmt.Errorf("invalid email transport %q (want %q or %q)", c.EmailTransport, EmailEndpoint, EmailSES)
	}
	if c.RequestRetries < 0 {
		return fmt.Errorf("request_retries must be >= 0, got %d", c.RequestRetries)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/intake/intake.yml or $XDG_CONFIG_HOME/intake/intake.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "intake", "intake.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "intake", "intake.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./intake.yml in the current working directory.
func ProjectPath() string {
	return "intake.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ProjectPath(), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
