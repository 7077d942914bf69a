package cleanup

import (
	"context"
	"time"

	"github.com/dmarsh/cleanspeak/internal/logger"
	"github.com/dmarsh/cleanspeak/pkg/cleaner"
)

var _ cleaner.Cleaner = (*Cleaner)(nil)

// Cleaner removes speech disfluencies from transcribed text.
//
// A Cleaner is stateless per call: the only shared state is the pattern
// cache built at construction, which is read-only afterwards, so one
// instance may serve concurrent Clean calls without locking.
type Cleaner struct {
	config *Config
	pat    *compiledPatterns
}

// New creates a Cleaner with the given configuration, pre-compiling all
// matching patterns so per-call latency excludes compilation cost.
// If config is nil, DefaultConfig() is used.
//
// A nil LLM provider with LevelAggressive is valid: the aggressive path
// degrades to the standard pipeline at call time, not at construction.
func New(config *Config) (*Cleaner, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Level < LevelOff || config.Level > LevelAggressive {
		return nil, &ConfigError{Field: "level", Value: config.Level.String()}
	}
	if config.ChunkSize < 0 {
		return nil, &ConfigError{Field: "chunk_size", Value: "negative"}
	}
	cfg := *config
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	return &Cleaner{
		config: &cfg,
		pat:    compilePatterns(),
	}, nil
}

// Name returns the cleaner identifier for logging.
func (c *Cleaner) Name() string {
	return "cleanup(" + c.config.Level.String() + ")"
}

// Level returns the configured cleanup level.
func (c *Cleaner) Level() Level {
	return c.config.Level
}

// Clean removes disfluencies from text according to the configured level.
// It is a total function: it never fails for any input, including empty
// strings and arbitrary binary-ish content. The error return exists to
// satisfy the cleaner.Cleaner interface and is always nil.
func (c *Cleaner) Clean(text string) (string, error) {
	return c.CleanContext(context.Background(), text)
}

// CleanContext is Clean with a caller-supplied context. The context only
// bounds the external LLM call on the aggressive path; the rule stages
// are pure in-memory transformations with no suspension points.
func (c *Cleaner) CleanContext(ctx context.Context, text string) (string, error) {
	if c.config.Level == LevelOff {
		return text, nil
	}
	return c.CleanWithStats(ctx, text).Content, nil
}

// CleanWithStats performs cleanup and returns the content together with
// per-stage metrics and any warnings. Content is always populated.
func (c *Cleaner) CleanWithStats(ctx context.Context, text string) *Result {
	start := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.InputBytes = len(text)

	switch {
	case c.config.Level == LevelOff || text == "":
		result.Content = text
	case c.config.Level == LevelLight:
		result.Content = c.cleanLight(text, result)
	case c.config.Level == LevelStandard:
		result.Content = c.cleanStandard(text, result)
	default:
		result.Content = c.cleanAggressive(ctx, text, result)
	}

	result.Stats.OutputBytes = len(result.Content)
	result.Stats.TotalDuration = time.Since(start)
	logger.Debug("cleanup complete",
		"level", c.config.Level.String(),
		"input_bytes", result.Stats.InputBytes,
		"output_bytes", result.Stats.OutputBytes,
		"rule_duration", result.Stats.RuleDuration,
		"llm_duration", result.Stats.LLMDuration,
		"total_duration", result.Stats.TotalDuration)
	return result
}

// cleanLight removes only the interjection fillers, then normalizes.
func (c *Cleaner) cleanLight(text string, result *Result) string {
	start := time.Now()
	out := c.removeFillerRules(text, c.pat.lightFillers, result)
	out = c.normalizeWhitespace(out)
	result.Stats.RuleDuration += time.Since(start)
	return out
}

// cleanStandard runs the four-stage rule pipeline. Order matters: false
// starts first (their markers overlap the filler lexicon), then fillers,
// then repetitions, then ellipsis cleanup left behind by stage one.
func (c *Cleaner) cleanStandard(text string, result *Result) string {
	start := time.Now()
	out := c.removeFalseStarts(text, result)
	out = c.removeFillers(out, result)
	out = c.collapseRepetitions(out, result)
	out = c.cleanEllipses(out)
	out = c.normalizeWhitespace(out)
	result.Stats.RuleDuration += time.Since(start)
	return out
}

// ConfigError reports a construction-time misconfiguration. This is the
// one failure the engine surfaces: it indicates a setup mistake rather
// than a runtime condition.
type ConfigError struct {
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return "cleanup: invalid configuration: " + e.Field + "=" + e.Value
}
