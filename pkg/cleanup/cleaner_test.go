package cleanup

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmarsh/cleanspeak/internal/llm"
)

// fakeProvider is a scriptable llm.Provider for exercising the
// aggressive path without network access.
type fakeProvider struct {
	response string
	err      error
	calls    int
	lastReq  llm.CompletionRequest
}

func (p *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	p.calls++
	p.lastReq = req
	if p.err != nil {
		return llm.CompletionResponse{}, p.err
	}
	return llm.CompletionResponse{Content: p.response, FinishReason: "stop", Model: "fake"}, nil
}

func (p *fakeProvider) Name() string { return "fake" }

func mustClean(t *testing.T, cfg *Config, text string) string {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out, err := c.Clean(text)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	return out
}

func configAt(level Level) *Config {
	cfg := DefaultConfig()
	cfg.Level = level
	return cfg
}

// --- Construction ---

func TestNew(t *testing.T) {
	t.Run("nil config uses default", func(t *testing.T) {
		c, err := New(nil)
		if err != nil {
			t.Fatalf("New(nil) error = %v", err)
		}
		if c.Level() != LevelStandard {
			t.Errorf("default level = %v, want %v", c.Level(), LevelStandard)
		}
	})

	t.Run("out-of-range level rejected", func(t *testing.T) {
		_, err := New(&Config{Level: Level(42)})
		if err == nil {
			t.Fatal("expected error for invalid level")
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("error type = %T, want *ConfigError", err)
		}
	})

	t.Run("negative chunk size rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ChunkSize = -1
		if _, err := New(cfg); err == nil {
			t.Fatal("expected error for negative chunk size")
		}
	})

	t.Run("zero chunk size defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ChunkSize = 0
		c, err := New(cfg)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if c.config.ChunkSize != DefaultChunkSize {
			t.Errorf("ChunkSize = %d, want %d", c.config.ChunkSize, DefaultChunkSize)
		}
	})

	t.Run("caller config not mutated", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ChunkSize = 0
		if _, err := New(cfg); err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if cfg.ChunkSize != 0 {
			t.Error("New() mutated the caller's config")
		}
	})
}

func TestName(t *testing.T) {
	c, _ := New(nil)
	if c.Name() != "cleanup(standard)" {
		t.Errorf("Name() = %q, want %q", c.Name(), "cleanup(standard)")
	}
}

// --- Off level ---

func TestClean_Off_ReturnsVerbatim(t *testing.T) {
	inputs := []string{
		"",
		"um, uh, you know, like, whatever",
		"I I I think think so...",
		"  leading and trailing whitespace  ",
	}
	for _, in := range inputs {
		if got := mustClean(t, configAt(LevelOff), in); got != in {
			t.Errorf("off-level Clean(%q) = %q, want input back verbatim", in, got)
		}
	}
}

// --- Light level ---

func TestClean_Light(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"removes um", "Hello, um, world!", "Hello, world!"},
		{"removes uh", "I was, uh, thinking", "I was, thinking"},
		{"removes multiple interjections", "Um, so uh, hmm, yes", "so yes"},
		{"case insensitive", "UM, sure. Uh huh.", "sure. huh."},
		{"keeps discourse markers", "It's like, you know, fine", "It's like, you know, fine"},
		{"no fillers untouched", "The quarterly report is ready.", "The quarterly report is ready."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustClean(t, configAt(LevelLight), tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// --- Standard level ---

func TestClean_Standard(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"removes discourse fillers",
			"Hello, um, world!",
			"Hello, world!",
		},
		{
			"removes basically and okay",
			"Okay, so basically we're done.",
			"we're done.",
		},
		{
			"ellipsis false start",
			"Can you... sorry, can you send this?",
			"can you send this?",
		},
		{
			"repeated clause after correction marker",
			"send it to, I mean, send it to Bob",
			"send it to Bob",
		},
		{
			"stutter collapsed",
			"I I think it's fine",
			"I think it's fine",
		},
		{
			"triple repetition collapsed",
			"the the the the thing",
			"the thing",
		},
		{
			"like filler removed",
			"It's like really good",
			"It's really good",
		},
		{
			"like verb preserved",
			"I like this feature",
			"I like this feature",
		},
		{
			"like before determiner preserved",
			"It sounds like a good plan",
			"It sounds like a good plan",
		},
		{
			"so mid-sentence preserved",
			"I think so too",
			"I think so too",
		},
		{
			"leading ellipsis removed",
			"...and then we left",
			"and then we left",
		},
		{
			"doubled ellipsis cleaned",
			"I went there. ... It was fine.",
			"I went there. It was fine.",
		},
		{
			"whitespace normalized",
			"too   many    spaces .",
			"too many spaces.",
		},
		{
			"empty input",
			"",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustClean(t, configAt(LevelStandard), tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_EmphasisRepetition(t *testing.T) {
	input := "It was very very important"

	t.Run("preserved by default", func(t *testing.T) {
		if got := mustClean(t, configAt(LevelStandard), input); got != input {
			t.Errorf("Clean(%q) = %q, want emphasis kept", input, got)
		}
	})

	t.Run("collapsed when preservation off", func(t *testing.T) {
		cfg := configAt(LevelStandard)
		cfg.PreserveIntentional = false
		want := "It was very important"
		if got := mustClean(t, cfg, input); got != want {
			t.Errorf("Clean(%q) = %q, want %q", input, got, want)
		}
	})
}

// --- Cross-cutting properties ---

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Hello, um, world!",
		"Can you... sorry, can you send this?",
		"I I think it's, uh, fine",
		"Okay, so basically we're done.",
		"It was very very important",
		"plain text with no disfluencies at all.",
	}
	for _, level := range []Level{LevelLight, LevelStandard} {
		c, err := New(configAt(level))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		for _, in := range inputs {
			once, _ := c.Clean(in)
			twice, _ := c.Clean(once)
			if once != twice {
				t.Errorf("level %v not idempotent on %q: first %q, second %q", level, in, once, twice)
			}
		}
	}
}

func TestClean_NeverGrows(t *testing.T) {
	inputs := []string{
		"Hello, um, world!",
		"the the the thing",
		"   spaced   out   input   ",
		"no changes needed here",
	}
	for _, level := range []Level{LevelLight, LevelStandard} {
		for _, in := range inputs {
			got := mustClean(t, configAt(level), in)
			if len(got) > len(in) {
				t.Errorf("level %v grew input %q to %q", level, in, got)
			}
		}
	}
}

func TestClean_NoDanglingPunctuation(t *testing.T) {
	inputs := []string{
		"Hello, um, world!",
		"I think, uh , that it works .",
		"Can you... sorry, can you send this ?",
	}
	c, _ := New(configAt(LevelStandard))
	for _, in := range inputs {
		got, _ := c.Clean(in)
		for _, bad := range []string{" ,", " .", " !", " ?", "  "} {
			if strings.Contains(got, bad) {
				t.Errorf("Clean(%q) = %q contains %q", in, got, bad)
			}
		}
	}
}

func TestClean_ArbitraryInput(t *testing.T) {
	inputs := []string{
		"",
		"    ",
		"...",
		",,,,!!!???",
		"héllo wörld, um, ça va? 🙂",
		"日本語のテキスト um テスト",
		strings.Repeat("word ", 10000),
		"\x00\x01\x02 binary-ish \xff",
	}
	for _, level := range []Level{LevelOff, LevelLight, LevelStandard, LevelAggressive} {
		c, err := New(configAt(level))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		for _, in := range inputs {
			if _, err := c.Clean(in); err != nil {
				t.Errorf("level %v Clean(%q...) error = %v, want nil", level, truncate(in, 20), err)
			}
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// --- Stats ---

func TestCleanWithStats(t *testing.T) {
	c, _ := New(configAt(LevelStandard))
	input := "Hello, um, um, world! I I agree."
	result := c.CleanWithStats(context.Background(), input)

	if result.Content == "" {
		t.Fatal("expected non-empty content")
	}
	if result.Stats.InputBytes != len(input) {
		t.Errorf("InputBytes = %d, want %d", result.Stats.InputBytes, len(input))
	}
	if result.Stats.OutputBytes != len(result.Content) {
		t.Errorf("OutputBytes = %d, want %d", result.Stats.OutputBytes, len(result.Content))
	}
	if got := result.Stats.FillersRemoved["um"]; got != 2 {
		t.Errorf("FillersRemoved[um] = %d, want 2", got)
	}
	if result.Stats.RepetitionsCollapsed != 1 {
		t.Errorf("RepetitionsCollapsed = %d, want 1", result.Stats.RepetitionsCollapsed)
	}
	if result.Stats.TotalFillersRemoved() != 2 {
		t.Errorf("TotalFillersRemoved() = %d, want 2", result.Stats.TotalFillersRemoved())
	}
	if result.Stats.ReductionPercent() <= 0 {
		t.Errorf("ReductionPercent() = %f, want > 0", result.Stats.ReductionPercent())
	}
	if result.Stats.LLMUsed {
		t.Error("LLMUsed should be false on the rule pipeline")
	}
}

func TestCleanWithStats_EmphasisCounter(t *testing.T) {
	c, _ := New(configAt(LevelStandard))
	result := c.CleanWithStats(context.Background(), "really really good and very very bad")
	if result.Stats.EmphasisPreserved != 2 {
		t.Errorf("EmphasisPreserved = %d, want 2", result.Stats.EmphasisPreserved)
	}
}

// --- Aggressive level ---

func TestAggressive_NoProvider_FallsBackToStandard(t *testing.T) {
	input := "Hello, um, world! I I agree."

	std, _ := New(configAt(LevelStandard))
	agg, _ := New(configAt(LevelAggressive))

	wantContent, _ := std.Clean(input)
	result := agg.CleanWithStats(context.Background(), input)

	if result.Content != wantContent {
		t.Errorf("aggressive without provider = %q, want standard output %q", result.Content, wantContent)
	}
	if result.Stats.FallbackReason == "" {
		t.Error("expected FallbackReason to be set")
	}
	if result.Stats.LLMUsed {
		t.Error("LLMUsed should be false without a provider")
	}
}

func TestAggressive_UsesProviderResponse(t *testing.T) {
	provider := &fakeProvider{response: "Clean text from the model."}
	cfg := configAt(LevelAggressive)
	cfg.Provider = provider

	c, _ := New(cfg)
	result := c.CleanWithStats(context.Background(), "So, um, this is the, like, raw text here.")

	if result.Content != "Clean text from the model." {
		t.Errorf("Content = %q, want provider response", result.Content)
	}
	if !result.Stats.LLMUsed {
		t.Error("LLMUsed should be true")
	}
	if result.Stats.ChunksProcessed != 1 {
		t.Errorf("ChunksProcessed = %d, want 1", result.Stats.ChunksProcessed)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
	if provider.lastReq.MaxTokens == 0 {
		t.Error("expected a proportional MaxTokens budget")
	}
}

func TestAggressive_ProviderError_FallsBack(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	cfg := configAt(LevelAggressive)
	cfg.Provider = provider

	input := "Hello, um, world! I I agree."
	std, _ := New(configAt(LevelStandard))
	wantContent, _ := std.Clean(input)

	c, _ := New(cfg)
	result := c.CleanWithStats(context.Background(), input)

	if result.Content != wantContent {
		t.Errorf("Content = %q, want standard output %q", result.Content, wantContent)
	}
	if result.Stats.LLMUsed {
		t.Error("LLMUsed should be false after fallback")
	}
	if !result.HasWarnings() {
		t.Fatal("expected a warning for the failed rewrite")
	}
	if result.Warnings[0].Phase != "llm" {
		t.Errorf("warning phase = %q, want llm", result.Warnings[0].Phase)
	}
}

func TestAggressive_OverAggressiveResponse_FallsBack(t *testing.T) {
	provider := &fakeProvider{response: "ok"}
	cfg := configAt(LevelAggressive)
	cfg.Provider = provider

	input := "This is a reasonably long sentence, um, that should survive mostly intact after cleanup."
	c, _ := New(cfg)
	result := c.CleanWithStats(context.Background(), input)

	if result.Content == "ok" {
		t.Error("a response far shorter than the input should be discarded")
	}
	if result.Stats.LLMUsed {
		t.Error("LLMUsed should be false after discarding the response")
	}
	if result.Stats.FallbackReason == "" {
		t.Error("expected FallbackReason to be set")
	}
}

func TestAggressive_ChunksLongInput(t *testing.T) {
	provider := &fakeProvider{response: "A cleaned sentence comes back here."}
	cfg := configAt(LevelAggressive)
	cfg.Provider = provider
	cfg.ChunkSize = 60

	input := "First sentence of the transcript goes here. Second sentence follows right after it. Third sentence closes the recording out."
	c, _ := New(cfg)
	result := c.CleanWithStats(context.Background(), input)

	if result.Stats.ChunksProcessed < 2 {
		t.Errorf("ChunksProcessed = %d, want >= 2", result.Stats.ChunksProcessed)
	}
	if provider.calls != result.Stats.ChunksProcessed {
		t.Errorf("provider calls = %d, want %d", provider.calls, result.Stats.ChunksProcessed)
	}
	if !result.Stats.LLMUsed {
		t.Error("LLMUsed should be true")
	}
}

func TestAggressive_VocabularyHintsInPrompt(t *testing.T) {
	provider := &fakeProvider{response: "Kubernetes and Terraform stay as they are."}
	cfg := configAt(LevelAggressive)
	cfg.Provider = provider
	cfg.VocabularyHints = "Kubernetes, Terraform"

	c, _ := New(cfg)
	c.CleanWithStats(context.Background(), "um, we use kubernetes and terraform a lot")

	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}
	prompt := provider.lastReq.Messages[0].Content
	if !strings.Contains(prompt, "Kubernetes, Terraform") {
		t.Errorf("prompt missing vocabulary hints: %q", prompt)
	}
}

// --- Chunk splitting ---

func TestSplitIntoChunks(t *testing.T) {
	cfg := configAt(LevelAggressive)
	cfg.ChunkSize = 40
	c, _ := New(cfg)

	t.Run("short input is one chunk", func(t *testing.T) {
		chunks := c.splitIntoChunks("short text")
		if len(chunks) != 1 || chunks[0] != "short text" {
			t.Errorf("chunks = %q, want the input alone", chunks)
		}
	})

	t.Run("splits at sentence boundaries", func(t *testing.T) {
		chunks := c.splitIntoChunks("One sentence here. Another one there. And a third one too.")
		if len(chunks) < 2 {
			t.Fatalf("chunks = %d, want >= 2", len(chunks))
		}
		joined := strings.Join(chunks, " ")
		for _, want := range []string{"One sentence here.", "Another one there.", "And a third one too."} {
			if !strings.Contains(joined, want) {
				t.Errorf("chunks %q lost sentence %q", chunks, want)
			}
		}
	})

	t.Run("oversized sentence kept whole", func(t *testing.T) {
		long := "this single sentence is far longer than the configured chunk size limit here"
		chunks := c.splitIntoChunks(long + ". Short one.")
		found := false
		for _, ch := range chunks {
			if strings.Contains(ch, long) {
				found = true
			}
		}
		if !found {
			t.Errorf("oversized sentence was split: %q", chunks)
		}
	})
}

// --- Benchmarks ---

var benchInput = strings.Repeat("So, um, I I think we should, like, basically just, you know, go ahead. Can you... sorry, can you check it? ", 20)

func BenchmarkClean_Light(b *testing.B) {
	c, _ := New(configAt(LevelLight))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Clean(benchInput)
	}
}

func BenchmarkClean_Standard(b *testing.B) {
	c, _ := New(configAt(LevelStandard))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Clean(benchInput)
	}
}
