package cleanup

import "sort"

// fillersLight are the interjection-only fillers removed at LevelLight.
var fillersLight = []string{
	"um", "uh", "ah", "er", "hmm", "mm", "mhm",
}

// fillersStandard adds discourse markers on top of fillersLight.
// The standard set is always a superset of the light set.
var fillersStandard = append([]string{
	"like", "you know", "i mean", "so", "basically",
	"actually", "literally", "right", "okay", "well",
	"anyway", "you see", "kind of", "sort of",
}, fillersLight...)

// correctionMarkers signal a false start or self-correction.
var correctionMarkers = []string{
	"sorry", "i mean", "no wait", "actually",
	"let me rephrase", "correction", "rather",
}

// emphasisWords are exempt from repetition collapsing when
// intentional-pattern preservation is enabled. "very very important"
// is emphasis, not a stutter.
var emphasisWords = map[string]bool{
	"very":   true,
	"really": true,
	"so":     true,
	"much":   true,
	"too":    true,
	"super":  true,
}

// likeContinuations are words that, directly after "like", suggest
// comparative or verb usage ("would you like to", "looks like the")
// rather than a discourse filler.
var likeContinuations = map[string]bool{
	"to":   true,
	"the":  true,
	"a":    true,
	"my":   true,
	"your": true,
	"this": true,
	"that": true,
	"it":   true,
}

// longestFirst returns a copy of tokens ordered by descending length so
// phrase fillers ("you know") match before any single-word component.
func longestFirst(tokens []string) []string {
	ordered := make([]string, len(tokens))
	copy(ordered, tokens)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	return ordered
}
