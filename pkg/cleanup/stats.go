package cleanup

import (
	"fmt"
	"strings"
	"time"
)

// Stats captures metrics about what the cleaner did.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes"`
	OutputBytes int `json:"output_bytes"`

	// Rule-stage counters
	FillersRemoved       map[string]int `json:"fillers_removed"` // token -> count
	FalseStartsRemoved   int            `json:"false_starts_removed"`
	RepetitionsCollapsed int            `json:"repetitions_collapsed"`
	EmphasisPreserved    int            `json:"emphasis_preserved"`

	// Aggressive-path details
	LLMUsed         bool   `json:"llm_used"`
	ChunksProcessed int    `json:"chunks_processed,omitempty"`
	FallbackReason  string `json:"fallback_reason,omitempty"`

	// Timing
	RuleDuration  time.Duration `json:"rule_duration_ms"`
	LLMDuration   time.Duration `json:"llm_duration_ms"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// NewStats creates a Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		FillersRemoved: make(map[string]int),
	}
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// TotalFillersRemoved returns the sum across all filler tokens.
func (s *Stats) TotalFillersRemoved() int {
	total := 0
	for _, count := range s.FillersRemoved {
		total += count
	}
	return total
}

// RecordFiller records removed occurrences of a filler token.
func (s *Stats) RecordFiller(token string, count int) {
	if count > 0 {
		s.FillersRemoved[strings.ToLower(token)] += count
	}
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent()))

	if len(s.FillersRemoved) > 0 {
		parts := make([]string, 0, len(s.FillersRemoved))
		for token, count := range s.FillersRemoved {
			parts = append(parts, fmt.Sprintf("%s=%d", token, count))
		}
		sb.WriteString("Fillers removed: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	if s.FalseStartsRemoved > 0 {
		sb.WriteString(fmt.Sprintf("False starts removed: %d\n", s.FalseStartsRemoved))
	}
	if s.RepetitionsCollapsed > 0 {
		sb.WriteString(fmt.Sprintf("Repetitions collapsed: %d\n", s.RepetitionsCollapsed))
	}
	if s.EmphasisPreserved > 0 {
		sb.WriteString(fmt.Sprintf("Emphasis runs preserved: %d\n", s.EmphasisPreserved))
	}

	if s.LLMUsed {
		sb.WriteString(fmt.Sprintf("LLM rewrite: yes (%d chunk(s), %v)\n",
			s.ChunksProcessed, s.LLMDuration.Round(time.Millisecond)))
	} else if s.FallbackReason != "" {
		sb.WriteString(fmt.Sprintf("LLM rewrite: fell back to standard (%s)\n", s.FallbackReason))
	}

	sb.WriteString(fmt.Sprintf("Timing: rules=%v, llm=%v, total=%v\n",
		s.RuleDuration.Round(time.Millisecond),
		s.LLMDuration.Round(time.Millisecond),
		s.TotalDuration.Round(time.Millisecond)))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during cleanup.
type Warning struct {
	Phase   string `json:"phase"`   // "rules", "llm"
	Message string `json:"message"` // Human-readable description
	Context string `json:"context"` // Detail such as the provider error
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a cleanup operation. Content is always
// populated: failures degrade to less aggressive cleanup, never to an
// empty result.
type Result struct {
	// Content is the cleaned text.
	Content string `json:"content"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
