// Package config loads and validates cleanspeak configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration for the CLI and the engine.
// Invalid values surface at load time, not at first use.
type Config struct {
	// Level is the cleanup aggressiveness: off, light, standard, aggressive.
	Level string `mapstructure:"level" yaml:"level" validate:"oneof=off light standard aggressive"`

	// PreserveIntentional keeps emphasis repetition and verb usage of
	// filler-overlapping words.
	PreserveIntentional bool `mapstructure:"preserve_intentional" yaml:"preserve_intentional"`

	// Provider selects the LLM backend for aggressive mode. Empty means
	// auto-detect from API-key environment variables.
	Provider string `mapstructure:"provider" yaml:"provider,omitempty" validate:"omitempty,oneof=groq anthropic openai ollama"`

	// Model overrides the provider's default model.
	Model string `mapstructure:"model" yaml:"model,omitempty"`

	// APIKey is the credential for the provider. Usually supplied via
	// environment (GROQ_API_KEY etc.) rather than the config file.
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`

	// ChunkSize bounds per-call input length on the aggressive path.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size,omitempty" validate:"gte=0"`

	// Temperature for the LLM rewrite.
	Temperature float64 `mapstructure:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`

	// HistoryPath overrides where transcription history is stored.
	HistoryPath string `mapstructure:"history_path" yaml:"history_path,omitempty"`

	// VocabularyFile overrides where domain-term hints are read from.
	VocabularyFile string `mapstructure:"vocabulary_file" yaml:"vocabulary_file,omitempty"`
}

// Default returns the configuration used when no file or flags are set.
func Default() *Config {
	return &Config{
		Level:               "standard",
		PreserveIntentional: true,
		Temperature:         0.1,
	}
}

// Load unmarshals the merged viper state into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and returns a descriptive error for
// the first violation.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return fmt.Errorf("validating configuration: %w", err)
	}
	return fmt.Errorf("invalid configuration: %s", formatFieldError(errs[0]))
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", e.Field(), e.Param(), e.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", e.Field(), e.Tag())
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cleanspeak.yaml"
	}
	return filepath.Join(home, ".cleanspeak.yaml")
}

const fileHeader = `# cleanspeak configuration.
# Cleanup level: off, light, standard, aggressive.
# API keys are usually better kept in the environment
# (GROQ_API_KEY, ANTHROPIC_API_KEY, OPENAI_API_KEY).
`

// WriteDefault writes a commented starter config to path, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
