package cleanup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmarsh/cleanspeak/internal/llm"
	"github.com/dmarsh/cleanspeak/internal/logger"
)

// rewriteInstruction is the fixed template for the LLM-assisted rewrite.
// The model must return only the cleaned text, nothing else.
const rewriteInstruction = `Clean this speech transcription by removing disfluencies.

Remove: filler words (um, uh, like, you know), false starts, repetitions, incomplete sentences before corrections.
Preserve: core meaning, natural tone, intentional emphasis.`

// minOutputRatio is the sanity threshold for the LLM response: anything
// shorter than this fraction of the input is treated as over-aggressive
// and discarded in favor of the standard pipeline.
const minOutputRatio = 0.3

// cleanAggressive delegates the rewrite to the configured LLM provider.
// Every failure mode falls back to the standard pipeline: a missing
// provider short-circuits without attempting the call, and transport
// errors, malformed responses, and over-aggressive rewrites are all
// recovered locally. The caller never sees an error from this path.
func (c *Cleaner) cleanAggressive(ctx context.Context, text string, result *Result) string {
	if c.config.Provider == nil {
		result.Stats.FallbackReason = "no provider configured"
		return c.cleanStandard(text, result)
	}

	start := time.Now()
	defer func() {
		result.Stats.LLMDuration = time.Since(start)
	}()

	// Long input is split at sentence boundaries and cleaned chunk by
	// chunk; a failed chunk falls back to standard for that chunk only.
	if len(text) > c.config.ChunkSize {
		return c.cleanInChunks(ctx, text, result)
	}

	cleaned, err := c.rewriteChunk(ctx, text)
	if err != nil {
		logger.Warn("llm cleanup failed, using rule-based pipeline", "error", err)
		result.AddWarning("llm", "rewrite failed, fell back to standard", err.Error())
		result.Stats.FallbackReason = err.Error()
		return c.cleanStandard(text, result)
	}

	result.Stats.LLMUsed = true
	result.Stats.ChunksProcessed = 1
	return cleaned
}

// cleanInChunks rewrites each sentence-boundary chunk independently and
// joins the results, normalizing once at the end.
func (c *Cleaner) cleanInChunks(ctx context.Context, text string, result *Result) string {
	chunks := c.splitIntoChunks(text)
	logger.Debug("processing llm cleanup in chunks", "chunks", len(chunks), "input_bytes", len(text))

	cleaned := make([]string, 0, len(chunks))
	anyRewritten := false
	for i, chunk := range chunks {
		out, err := c.rewriteChunk(ctx, chunk)
		if err != nil {
			logger.Warn("chunk rewrite failed, using rule-based pipeline for chunk",
				"chunk", i+1, "chunks", len(chunks), "error", err)
			result.AddWarning("llm", fmt.Sprintf("chunk %d/%d fell back to standard", i+1, len(chunks)), err.Error())
			out = c.cleanStandard(chunk, result)
		} else {
			anyRewritten = true
		}
		cleaned = append(cleaned, out)
	}

	result.Stats.LLMUsed = anyRewritten
	result.Stats.ChunksProcessed = len(chunks)
	return c.normalizeWhitespace(strings.Join(cleaned, " "))
}

// rewriteChunk performs one LLM call for one chunk of text. The token
// budget is proportional to the input length.
func (c *Cleaner) rewriteChunk(ctx context.Context, text string) (string, error) {
	resp, err := c.config.Provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: c.buildPrompt(text)},
		},
		MaxTokens:   len(text) * 2,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return "", err
	}

	cleaned := strings.TrimSpace(resp.Content)
	if len(cleaned) < int(float64(len(text))*minOutputRatio) {
		return "", fmt.Errorf("response too short (%d of %d bytes), treating as over-aggressive", len(cleaned), len(text))
	}
	return cleaned, nil
}

// buildPrompt interpolates the input into the instruction template,
// optionally carrying the user's vocabulary hints.
func (c *Cleaner) buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString(rewriteInstruction)
	if c.config.VocabularyHints != "" {
		b.WriteString("\nKeep these domain terms exactly as written: ")
		b.WriteString(c.config.VocabularyHints)
		b.WriteString(".")
	}
	b.WriteString("\n\nInput: ")
	b.WriteString(text)
	b.WriteString("\n\nOutput only the cleaned text, nothing else:")
	return b.String()
}

// splitIntoChunks splits text at sentence boundaries, keeping each chunk
// under ChunkSize where possible. A single sentence longer than the
// chunk size becomes its own chunk.
func (c *Cleaner) splitIntoChunks(text string) []string {
	if len(text) <= c.config.ChunkSize {
		return []string{text}
	}

	var sentences []string
	last := 0
	for _, m := range c.pat.sentenceEnd.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[last:m[0]+1])
		last = m[1]
	}
	if last < len(text) {
		sentences = append(sentences, text[last:])
	}

	var chunks []string
	var current []string
	currentLen := 0
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if currentLen+len(sentence)+1 > c.config.ChunkSize {
			if len(current) > 0 {
				chunks = append(chunks, strings.Join(current, " "))
				current = current[:0]
				currentLen = 0
			}
			if len(sentence) > c.config.ChunkSize {
				chunks = append(chunks, sentence)
				continue
			}
		}
		current = append(current, sentence)
		currentLen += len(sentence) + 1
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}
