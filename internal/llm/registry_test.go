package llm

import (
	"sort"
	"strings"
	"testing"
)

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider("mystery", DefaultProviderConfig())
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "mystery") {
		t.Errorf("error %q should name the provider", err)
	}
	if !strings.Contains(err.Error(), "groq") {
		t.Errorf("error %q should list available providers", err)
	}
}

func TestAvailableProviders(t *testing.T) {
	providers := AvailableProviders()

	if !sort.StringsAreSorted(providers) {
		t.Errorf("providers not sorted: %v", providers)
	}

	want := map[string]bool{"groq": false, "anthropic": false, "openai": false, "ollama": false}
	for _, p := range providers {
		if _, ok := want[p]; ok {
			want[p] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("provider %q missing from %v", name, providers)
		}
	}
}

func TestGetDefaultModel(t *testing.T) {
	for _, provider := range AvailableProviders() {
		if GetDefaultModel(provider) == "" {
			t.Errorf("no default model for %q", provider)
		}
	}
	if got := GetDefaultModel("mystery"); got != "" {
		t.Errorf("GetDefaultModel(mystery) = %q, want empty", got)
	}
}

func TestDetectProvider(t *testing.T) {
	clearKeys := func(t *testing.T) {
		t.Setenv("GROQ_API_KEY", "")
		t.Setenv("ANTHROPIC_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "")
	}

	t.Run("groq takes priority", func(t *testing.T) {
		clearKeys(t)
		t.Setenv("GROQ_API_KEY", "gk")
		t.Setenv("OPENAI_API_KEY", "ok")
		provider, key := DetectProvider()
		if provider != "groq" || key != "gk" {
			t.Errorf("DetectProvider() = %q/%q, want groq/gk", provider, key)
		}
	})

	t.Run("anthropic before openai", func(t *testing.T) {
		clearKeys(t)
		t.Setenv("ANTHROPIC_API_KEY", "ak")
		t.Setenv("OPENAI_API_KEY", "ok")
		provider, _ := DetectProvider()
		if provider != "anthropic" {
			t.Errorf("DetectProvider() = %q, want anthropic", provider)
		}
	})

	t.Run("falls back to ollama without keys", func(t *testing.T) {
		clearKeys(t)
		provider, key := DetectProvider()
		if provider != "ollama" || key != "" {
			t.Errorf("DetectProvider() = %q/%q, want ollama with no key", provider, key)
		}
	})
}

func TestNewProvider_KnownNames(t *testing.T) {
	for _, name := range []string{"groq", "anthropic", "openai", "ollama"} {
		cfg := DefaultProviderConfig()
		cfg.APIKey = "test-key"
		p, err := NewProvider(name, cfg)
		if err != nil {
			t.Errorf("NewProvider(%q) error = %v", name, err)
			continue
		}
		if p.Name() != name {
			t.Errorf("Name() = %q, want %q", p.Name(), name)
		}
	}
}
