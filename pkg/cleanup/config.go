// Package cleanup removes speech disfluencies from transcribed text.
// It sits between a transcriber and an output handler, turning raw
// speech-to-text output into clean written text: filler words, stutter
// repetitions, false starts, and self-corrections are removed while
// intentional emphasis and legitimate word usage are preserved.
package cleanup

import (
	"fmt"
	"strings"

	"github.com/dmarsh/cleanspeak/internal/llm"
)

// Level controls how aggressively a Cleaner rewrites text.
type Level int

const (
	// LevelOff performs no cleanup; input is returned verbatim.
	LevelOff Level = iota

	// LevelLight removes only obvious interjections (um, uh, ah).
	LevelLight

	// LevelStandard runs the full rule pipeline: false starts, fillers,
	// repetitions, and ellipsis cleanup.
	LevelStandard

	// LevelAggressive delegates the rewrite to an LLM provider, falling
	// back to LevelStandard on any failure.
	LevelAggressive
)

// String returns the config-file spelling of the level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelLight:
		return "light"
	case LevelStandard:
		return "standard"
	case LevelAggressive:
		return "aggressive"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel converts a config string into a Level.
// Accepted values are "off", "light", "standard", and "aggressive".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off":
		return LevelOff, nil
	case "light":
		return LevelLight, nil
	case "standard":
		return LevelStandard, nil
	case "aggressive":
		return LevelAggressive, nil
	default:
		return LevelOff, fmt.Errorf("unknown cleanup level %q (available: off, light, standard, aggressive)", s)
	}
}

// DefaultChunkSize is the maximum chunk length in characters for batch
// processing in aggressive mode. ~500 chars is roughly 100-125 tokens,
// safe for most models.
const DefaultChunkSize = 500

// Config defines all configuration options for a Cleaner.
type Config struct {
	// Level selects which transformation stages run.
	Level Level

	// PreserveIntentional keeps emphasis repetition ("very very important")
	// and applies the verb-vs-filler heuristic for "like".
	PreserveIntentional bool

	// Provider is the LLM backend used by LevelAggressive. A nil provider
	// is valid configuration: aggressive cleanup degrades to the standard
	// pipeline at call time.
	Provider llm.Provider

	// Temperature for the LLM rewrite. Low values keep the model close
	// to the input.
	Temperature float64

	// ChunkSize is the maximum chunk length in characters before long
	// input is split at sentence boundaries for the aggressive path.
	// Zero means DefaultChunkSize.
	ChunkSize int

	// VocabularyHints is an optional comma-separated list of domain terms
	// the LLM rewrite must keep verbatim.
	VocabularyHints string
}

// DefaultConfig returns the configuration used by the CLI when nothing
// else is specified: standard cleanup with intentional-pattern
// preservation enabled.
func DefaultConfig() *Config {
	return &Config{
		Level:               LevelStandard,
		PreserveIntentional: true,
		Temperature:         0.1,
		ChunkSize:           DefaultChunkSize,
	}
}
