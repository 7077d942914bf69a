// cleanspeak-compare is a standalone tool for testing and tuning the
// disfluency cleanup pipeline.
//
// Usage:
//
//	cleanspeak-compare [options] [file]
//
// Examples:
//
//	# Clean a transcript and show stats
//	cleanspeak-compare transcript.txt
//
//	# Clean at a specific level
//	cleanspeak-compare -level light transcript.txt
//
//	# Clean stdin
//	echo "So, um, I I think it's fine" | cleanspeak-compare
//
//	# Compare all levels side by side
//	cleanspeak-compare -compare transcript.txt
//
//	# Show only stats, don't output text
//	cleanspeak-compare -stats-only transcript.txt
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmarsh/cleanspeak/pkg/cleanup"
)

var (
	// Config options
	level    = flag.String("level", "standard", "Cleanup level: off, light, standard, aggressive")
	preserve = flag.Bool("preserve", true, "Keep emphasis repetition and legitimate filler-word uses")

	// Output options
	outputFile = flag.String("o", "", "Write cleaned text to file")
	statsOnly  = flag.Bool("stats-only", false, "Only show stats, don't output text")
	jsonStats  = flag.Bool("json", false, "Output stats as JSON")
	verbose    = flag.Bool("v", false, "Verbose output (show warnings)")
	quiet      = flag.Bool("q", false, "Quiet mode (no stats, only text)")

	// Compare mode
	compare = flag.Bool("compare", false, "Compare all cleanup levels")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cleanspeak-compare - Test tool for the disfluency cleanup pipeline\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cleanspeak-compare [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cleanspeak-compare transcript.txt\n")
		fmt.Fprintf(os.Stderr, "  cleanspeak-compare -level light transcript.txt\n")
		fmt.Fprintf(os.Stderr, "  cleanspeak-compare -compare transcript.txt\n")
	}

	flag.Parse()

	// Get input source
	var text string
	var source string
	var err error

	if flag.NArg() > 0 {
		text, err = readFile(flag.Arg(0))
		source = flag.Arg(0)
	} else {
		data, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", rerr)
			os.Exit(1)
		}
		text = string(data)
		source = "stdin"
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(text) == 0 {
		fmt.Fprintf(os.Stderr, "Error: empty input\n")
		os.Exit(1)
	}

	// Compare mode
	if *compare {
		runComparison(text, source)
		return
	}

	cleaner, err := buildCleaner(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result := cleaner.CleanWithStats(context.Background(), text)

	// Output stats
	if !*quiet {
		if *jsonStats {
			outputJSONStats(result, source)
		} else {
			outputTextStats(result, source)
		}
	}

	// Output warnings
	if *verbose && result.HasWarnings() {
		fmt.Fprintf(os.Stderr, "\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "  %s\n", w.String())
		}
	}

	// Output text
	if !*statsOnly {
		if *outputFile != "" {
			if err := os.WriteFile(*outputFile, []byte(result.Content), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
				os.Exit(1)
			}
			if !*quiet {
				fmt.Fprintf(os.Stderr, "\nWritten to %s\n", *outputFile)
			}
		} else if !*quiet {
			fmt.Println("\n--- Cleaned Text ---")
			fmt.Println(result.Content)
		} else {
			fmt.Println(result.Content)
		}
	}
}

func buildCleaner(levelStr string) (*cleanup.Cleaner, error) {
	lvl, err := cleanup.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	cfg := cleanup.DefaultConfig()
	cfg.Level = lvl
	cfg.PreserveIntentional = *preserve

	return cleanup.New(cfg)
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file %s: %w", path, err)
	}
	return string(data), nil
}

func outputTextStats(result *cleanup.Result, source string) {
	fmt.Fprintf(os.Stderr, "\n=== Cleanup Stats ===\n")
	fmt.Fprintf(os.Stderr, "Source: %s\n", source)
	fmt.Fprintf(os.Stderr, "%s", result.Stats.String())
}

func outputJSONStats(result *cleanup.Result, source string) {
	stats := struct {
		Source  string         `json:"source"`
		Stats   *cleanup.Stats `json:"stats"`
		Reduced float64        `json:"reduction_percent"`
	}{
		Source:  source,
		Stats:   result.Stats,
		Reduced: result.Stats.ReductionPercent(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(stats)
}

func runComparison(text string, source string) {
	// Aggressive runs without a provider here, so it exercises the
	// rule-based fallback path rather than an LLM.
	levels := []cleanup.Level{
		cleanup.LevelOff,
		cleanup.LevelLight,
		cleanup.LevelStandard,
		cleanup.LevelAggressive,
	}

	fmt.Printf("\n=== Level Comparison for %s ===\n", source)
	fmt.Printf("Input size: %d bytes\n\n", len(text))
	fmt.Printf("%-12s %10s %10s %8s %10s\n", "Level", "Output", "Fillers", "Reduce%", "Time")
	fmt.Printf("%-12s %10s %10s %8s %10s\n", "-----", "------", "-------", "-------", "----")

	for _, lvl := range levels {
		cfg := cleanup.DefaultConfig()
		cfg.Level = lvl
		cfg.PreserveIntentional = *preserve

		cleaner, err := cleanup.New(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		result := cleaner.CleanWithStats(context.Background(), text)

		fmt.Printf("%-12s %10d %10d %7.1f%% %10v\n",
			lvl.String(),
			result.Stats.OutputBytes,
			result.Stats.TotalFillersRemoved(),
			result.Stats.ReductionPercent(),
			result.Stats.TotalDuration.Round(time.Millisecond))
	}

	fmt.Println()
}
