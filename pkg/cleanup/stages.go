package cleanup

import "strings"

// removeFalseStarts removes abandoned clauses around correction markers.
// Two shapes are handled per marker: "X... sorry, Y" collapses to "Y",
// and "X, sorry, X" (exact repeat) collapses to "X". The marker itself
// is consumed along with its punctuation.
func (c *Cleaner) removeFalseStarts(text string, result *Result) string {
	out := text
	for _, rule := range c.pat.markers {
		if matches := rule.falseStart.FindAllStringIndex(out, -1); matches != nil {
			out = rule.falseStart.ReplaceAllString(out, "")
			result.Stats.FalseStartsRemoved += len(matches)
		}
		out = c.collapseMarkerRepeat(out, rule, result)
	}
	return out
}

// collapseMarkerRepeat handles "<clause>, <marker>, <clause>" where the
// two clause occurrences are textually identical (case-insensitive),
// keeping the first occurrence only. Go's regexp has no backreferences,
// so the repeat check runs against the captured clause by hand.
func (c *Cleaner) collapseMarkerRepeat(text string, rule markerRule, result *Result) string {
	matches := rule.repeat.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	changed := false
	for _, m := range matches {
		if m[0] < last {
			continue
		}
		clause := text[m[2]:m[3]]
		rest := text[m[1]:]
		if len(rest) < len(clause) || !strings.EqualFold(rest[:len(clause)], clause) {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(clause)
		last = m[1] + len(clause)
		changed = true
		result.Stats.FalseStartsRemoved++
	}
	if !changed {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// removeFillers strips the extended filler lexicon, longest phrase
// first. "like" and "so" get context-sensitive handling since both have
// legitimate non-filler usage.
func (c *Cleaner) removeFillers(text string, result *Result) string {
	out := text
	for _, rule := range c.pat.standardFillers {
		switch {
		case rule.token == "like" && c.config.PreserveIntentional:
			out = c.removeLikePreserving(out, result)
		case rule.token == "so":
			out = c.removeSoClauseStart(out, result)
		default:
			out = c.removeFillerRule(out, rule, result)
		}
	}
	return out
}

// removeFillerRules applies a pre-compiled rule set in order.
func (c *Cleaner) removeFillerRules(text string, rules []fillerRule, result *Result) string {
	out := text
	for _, rule := range rules {
		out = c.removeFillerRule(out, rule, result)
	}
	return out
}

func (c *Cleaner) removeFillerRule(text string, rule fillerRule, result *Result) string {
	matches := rule.pattern.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m[0]])
		last = m[1]
	}
	b.WriteString(text[last:])
	result.Stats.RecordFiller(rule.token, len(matches))
	return b.String()
}

// removeLikePreserving removes "like" as a discourse filler while
// keeping verb and comparative usage: an occurrence directly preceded by
// the pronoun "I" ("I like pizza") or directly followed by a
// determiner-like continuation ("looks like the", "would like to") is
// left alone. This is a lookahead heuristic, not a parse; it will
// misclassify some sentences and that is accepted behavior.
func (c *Cleaner) removeLikePreserving(text string, result *Result) string {
	matches := c.pat.likeWord.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	removed := 0
	for _, m := range matches {
		if precededByFirstPerson(text, m[0]) || followedByContinuation(text[m[1]:]) {
			continue
		}
		junk := c.pat.trailingJunk.FindString(text[m[1]:])
		b.WriteString(text[last:m[0]])
		last = m[1] + len(junk)
		removed++
	}
	if removed == 0 {
		return text
	}
	b.WriteString(text[last:])
	result.Stats.RecordFiller("like", removed)
	return b.String()
}

// removeSoClauseStart removes "so" only at the start of a sentence or
// clause. "So, let's begin" loses the filler; "I think so" keeps it.
func (c *Cleaner) removeSoClauseStart(text string, result *Result) string {
	matches := c.pat.soClauseStart.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	result.Stats.RecordFiller("so", len(matches))
	return c.pat.soClauseStart.ReplaceAllString(text, "${1}${2}")
}

// collapseRepetitions folds a word followed by one to three identical
// repetitions (case-insensitive, whitespace-separated) into a single
// occurrence. With intentional-pattern preservation on, emphasis words
// ("very very important") are exempt.
func (c *Cleaner) collapseRepetitions(text string, result *Result) string {
	words := c.pat.word.FindAllStringIndex(text, -1)
	if len(words) < 2 {
		return text
	}
	var b strings.Builder
	last := 0
	changed := false
	i := 0
	for i < len(words) {
		w := text[words[i][0]:words[i][1]]
		j := i
		for j+1 < len(words) && j-i < 3 {
			gap := text[words[j][1]:words[j+1][0]]
			next := text[words[j+1][0]:words[j+1][1]]
			if gap == "" || strings.TrimSpace(gap) != "" || !strings.EqualFold(next, w) {
				break
			}
			j++
		}
		if j > i {
			if c.config.PreserveIntentional && emphasisWords[strings.ToLower(w)] {
				result.Stats.EmphasisPreserved++
			} else {
				b.WriteString(text[last:words[i][1]])
				last = words[j][1]
				changed = true
				result.Stats.RepetitionsCollapsed++
			}
		}
		i = j + 1
	}
	if !changed {
		return text
	}
	b.WriteString(text[last:])
	return b.String()
}

// cleanEllipses removes orphaned ellipses left behind by false-start
// removal: a leading dot run at the very start of the string, and a
// period followed by a dot run which would double terminal punctuation.
func (c *Cleaner) cleanEllipses(text string) string {
	out := c.pat.leadingEllipsis.ReplaceAllString(text, "")
	out = c.pat.doubledEllipsis.ReplaceAllString(out, ". ")
	return out
}

// normalizeWhitespace collapses runs of spaces, removes space before
// sentence punctuation, and trims. Idempotent: running it on already
// normalized text changes nothing.
func (c *Cleaner) normalizeWhitespace(text string) string {
	out := c.pat.spaceRuns.ReplaceAllString(text, " ")
	out = c.pat.spaceBeforePunct.ReplaceAllString(out, "${1}")
	return strings.TrimSpace(out)
}
