package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/germanamz/mealplanner/pkg/failure"
	"gopkg.in/yaml.v3"
)

// Defaults applied by LoadConfig.
const (
	DefaultKind      = "openai"
	DefaultTimeout   = "60s"
	DefaultOutputDir = "."
)

// Config is the explicit configuration passed into the generation flow.
type Config struct {
	Provider  ProviderConfig `yaml:"provider"`
	Timeout   string         `yaml:"timeout"`    // Request timeout as a duration string (e.g. "60s").
	OutputDir string         `yaml:"output_dir"` // Directory downloads are written to.
}

// ProviderConfig describes the completion service.
type ProviderConfig struct {
	Kind    string `yaml:"kind"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"` //nolint:gosec // configuration field, not a hardcoded secret
	Model   string `yaml:"model"`
}

// credentialEnvVars maps provider kinds to the variable holding their key.
var credentialEnvVars = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"grok":      "GROK_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// CredentialEnvVar returns the environment variable the key for kind is read from.
func CredentialEnvVar(kind string) string {
	if v, ok := credentialEnvVars[kind]; ok {
		return v
	}
	return strings.ToUpper(strings.ReplaceAll(kind, "-", "_")) + "_API_KEY"
}

// LoadConfig reads an optional YAML file and returns a Config with defaults
// applied. A missing file is not an error. Environment variables referenced
// as ${VAR} or $VAR in the YAML are expanded before parsing, and an empty
// api_key falls back to the provider's credential variable, so a key loaded
// from a .env file is picked up without any config file at all.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("engine: load config: %w", err)
		default:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return Config{}, fmt.Errorf("engine: parse config: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Provider.Kind == "" {
		c.Provider.Kind = DefaultKind
	}
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = os.Getenv(CredentialEnvVar(c.Provider.Kind))
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// RequestTimeout parses Timeout.
func (c Config) RequestTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("engine: config: invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("engine: config: timeout must be positive, got %q", c.Timeout)
	}
	return d, nil
}

// Validate checks that the configuration is usable. A missing key yields a
// *failure.MissingCredentialError naming the variable to set.
func (c Config) Validate() error {
	if _, ok := getFactory(c.Provider.Kind); !ok {
		return fmt.Errorf("engine: config: unknown provider kind %q (known: %s)",
			c.Provider.Kind, strings.Join(KnownProviderKinds(), ", "))
	}

	if _, err := c.RequestTimeout(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Provider.APIKey) == "" {
		return &failure.MissingCredentialError{EnvVar: CredentialEnvVar(c.Provider.Kind)}
	}

	return nil
}
