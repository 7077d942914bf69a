package cleanup

import (
	"regexp"
	"strings"
)

// fillerRule is a pre-compiled matcher for one lexicon entry.
type fillerRule struct {
	token   string
	pattern *regexp.Regexp
}

// markerRule holds the two pre-compiled matchers for one correction marker:
// the ellipsis false-start form ("X... sorry, Y") and the clause-repeat
// form ("X, sorry, X").
type markerRule struct {
	marker     string
	falseStart *regexp.Regexp
	repeat     *regexp.Regexp
}

// compiledPatterns caches every matcher a Cleaner needs. It is built once
// at construction and never mutated afterwards, so a single Cleaner is
// safe for concurrent use.
type compiledPatterns struct {
	lightFillers    []fillerRule
	standardFillers []fillerRule

	markers []markerRule

	// likeWord matches the bare token for the preservation heuristic;
	// context checks happen around the match.
	likeWord *regexp.Regexp
	// soClauseStart matches "so" only at the start of a sentence or
	// clause, keeping "I think so" intact.
	soClauseStart *regexp.Regexp

	word         *regexp.Regexp
	trailingJunk *regexp.Regexp

	leadingEllipsis *regexp.Regexp
	doubledEllipsis *regexp.Regexp

	sentenceEnd *regexp.Regexp

	spaceRuns        *regexp.Regexp
	spaceBeforePunct *regexp.Regexp
}

// fillerPattern builds the word-boundary-safe removal pattern for a
// filler token or phrase. A trailing comma and whitespace are consumed
// with the filler so removal leaves no dangling punctuation.
func fillerPattern(token string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b,?\s*`)
}

func compileFillers(tokens []string) []fillerRule {
	rules := make([]fillerRule, 0, len(tokens))
	for _, token := range longestFirst(tokens) {
		rules = append(rules, fillerRule{token: token, pattern: fillerPattern(token)})
	}
	return rules
}

func compileMarkers(markers []string) []markerRule {
	rules := make([]markerRule, 0, len(markers))
	for _, marker := range markers {
		quoted := regexp.QuoteMeta(marker)
		rules = append(rules, markerRule{
			marker:     marker,
			falseStart: regexp.MustCompile(`(?i)[^.!?]*?\.{3,}\s*` + quoted + `\b,?\s*`),
			repeat:     regexp.MustCompile(`(?i)([^,]+),\s*` + quoted + `\b,?\s*`),
		})
	}
	return rules
}

func compilePatterns() *compiledPatterns {
	return &compiledPatterns{
		lightFillers:    compileFillers(fillersLight),
		standardFillers: compileFillers(fillersStandard),
		markers:         compileMarkers(correctionMarkers),

		likeWord:      regexp.MustCompile(`(?i)\blike\b`),
		soClauseStart: regexp.MustCompile(`(?i)(^|\.\s+|,\s*)so\b,?\s+([A-Za-z])`),

		word:         regexp.MustCompile(`\w+`),
		trailingJunk: regexp.MustCompile(`^,?\s*`),

		leadingEllipsis: regexp.MustCompile(`^\s*\.{2,}\s*`),
		doubledEllipsis: regexp.MustCompile(`\.\s+\.{2,}\s*`),

		sentenceEnd: regexp.MustCompile(`[.!?]\s+`),

		spaceRuns:        regexp.MustCompile(` +`),
		spaceBeforePunct: regexp.MustCompile(`\s+([.,!?])`),
	}
}

// precededByFirstPerson reports whether the text immediately before
// offset ends with the standalone pronoun "I" plus whitespace, as in
// "I like pizza".
func precededByFirstPerson(text string, offset int) bool {
	i := offset
	for i > 0 && (text[i-1] == ' ' || text[i-1] == '\t' || text[i-1] == '\n' || text[i-1] == '\r') {
		i--
	}
	if i == offset || i == 0 {
		return false
	}
	if text[i-1] != 'i' && text[i-1] != 'I' {
		return false
	}
	// The "i" must be a standalone word, not the tail of another one.
	if i >= 2 && isWordByte(text[i-2]) {
		return false
	}
	return true
}

// followedByContinuation reports whether rest begins with whitespace and
// one of the determiner-like continuations ("like to", "like the").
func followedByContinuation(rest string) bool {
	i := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '\t' || rest[i] == '\n' || rest[i] == '\r') {
		i++
	}
	if i == 0 || i == len(rest) {
		return false
	}
	j := i
	for j < len(rest) && isWordByte(rest[j]) {
		j++
	}
	return likeContinuations[strings.ToLower(rest[i:j])]
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
