package llm

import (
	"fmt"
	"os"
	"sort"
)

// ProviderFactory creates providers.
type ProviderFactory func(cfg ProviderConfig) (Provider, error)

// DefaultModels maps provider names to their default models.
var DefaultModels = map[string]string{
	"groq":      defaultGroqModel,
	"anthropic": "claude-sonnet-4-20250514",
	"openai":    "gpt-4o",
	"ollama":    "llama3.2",
}

var registry = map[string]ProviderFactory{
	"groq": func(cfg ProviderConfig) (Provider, error) {
		return NewGroqProvider(cfg)
	},
	"anthropic": func(cfg ProviderConfig) (Provider, error) {
		return NewAnthropicProvider(cfg)
	},
	"openai": func(cfg ProviderConfig) (Provider, error) {
		return NewOpenAIProvider(cfg)
	},
	"ollama": func(cfg ProviderConfig) (Provider, error) {
		return NewOllamaProvider(cfg)
	},
}

// NewProvider creates a provider by name.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (available: groq, anthropic, openai, ollama)", name)
	}
	return factory(cfg)
}

// RegisterProvider adds a custom provider factory.
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

// AvailableProviders returns the sorted list of registered providers.
func AvailableProviders() []string {
	providers := make([]string, 0, len(registry))
	for name := range registry {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// DetectProvider auto-detects the best provider based on available API
// keys. Returns the provider name and API key.
// Priority: GROQ_API_KEY > ANTHROPIC_API_KEY > OPENAI_API_KEY > ollama
// (no key needed).
func DetectProvider() (provider string, apiKey string) {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return "groq", key
	}

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return "anthropic", key
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return "openai", key
	}

	// Fall back to Ollama (no key required)
	return "ollama", ""
}

// GetDefaultModel returns the default model for a provider.
func GetDefaultModel(provider string) string {
	if model, ok := DefaultModels[provider]; ok {
		return model
	}
	return ""
}
