package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmarsh/cleanspeak/internal/config"
	"github.com/dmarsh/cleanspeak/internal/history"
	"github.com/dmarsh/cleanspeak/internal/llm"
	"github.com/dmarsh/cleanspeak/internal/logger"
	"github.com/dmarsh/cleanspeak/internal/vocabulary"
	"github.com/dmarsh/cleanspeak/pkg/cleanup"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [text]",
	Short: "Clean disfluencies from text",
	Long: `Clean speech disfluencies from text.

Input comes from the argument, a file (-f), or stdin. Output goes to
stdout or a file (-o). The aggressive level needs an LLM provider; it
auto-detects one from GROQ_API_KEY, ANTHROPIC_API_KEY, or
OPENAI_API_KEY, falling back to a local Ollama instance.

Examples:
  # Clean an argument
  cleanspeak clean "So, um, I think we should, like, go"

  # Clean a file, write the result next to it
  cleanspeak clean -f raw.txt -o clean.txt

  # Aggressive cleanup, record the result in history
  cleanspeak clean -f raw.txt -l aggressive --history`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()

	// Input/output
	flags.StringP("file", "f", "", "read input from file instead of argument or stdin")
	flags.StringP("output", "o", "", "output file (default: stdout)")

	// Cleanup settings
	flags.StringP("level", "l", "", "cleanup level: off, light, standard, aggressive")
	flags.Bool("preserve-intentional", true, "keep emphasis repetition and legitimate uses of filler words")

	// LLM settings (aggressive level only)
	flags.StringP("provider", "p", "", "LLM provider: groq, anthropic, openai, ollama (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.Float64("temperature", 0, "sampling temperature for the LLM rewrite")
	flags.Int("chunk-size", 0, "max chunk length in characters for long input")
	flags.String("vocabulary", "", "vocabulary file with domain terms to keep verbatim")

	// Reporting
	flags.Bool("stats", false, "print cleanup statistics to stderr")
	flags.Bool("json", false, "emit cleaned text, stats, and warnings as JSON")
	flags.Bool("history", false, "record the result in transcription history")

	// Bind to viper
	_ = viper.BindPFlag("level", flags.Lookup("level"))
	_ = viper.BindPFlag("preserve_intentional", flags.Lookup("preserve-intentional"))
	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("temperature", flags.Lookup("temperature"))
	_ = viper.BindPFlag("chunk_size", flags.Lookup("chunk-size"))
	_ = viper.BindPFlag("vocabulary_file", flags.Lookup("vocabulary"))
}

// cleanReport is the --json output shape.
type cleanReport struct {
	Text     string            `json:"text"`
	Level    string            `json:"level"`
	Stats    *cleanup.Stats    `json:"stats"`
	Warnings []cleanup.Warning `json:"warnings,omitempty"`
}

func runClean(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		logError("%v", err)
		return err
	}
	logger.Debug("configuration loaded", "level", cfg.Level, "provider", cfg.Provider)

	text, err := readInput(cmd, args)
	if err != nil {
		logError("%v", err)
		return err
	}

	cleaner, err := buildCleaner(cfg)
	if err != nil {
		logError("%v", err)
		return err
	}
	logger.Debug("cleaner ready", "name", cleaner.Name())

	result := cleaner.CleanWithStats(ctx, text)
	for _, w := range result.Warnings {
		logger.Warn("cleanup warning", "phase", w.Phase, "message", w.Message, "context", w.Context)
	}

	if save, _ := cmd.Flags().GetBool("history"); save {
		if err := recordHistory(cfg, text, result); err != nil {
			// History is best-effort: the cleaned text still goes out.
			logger.Warn("failed to record history", "error", err)
		}
	}

	out := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logError("creating output file: %v", err)
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cleanReport{
			Text:     result.Content,
			Level:    cleaner.Level().String(),
			Stats:    result.Stats,
			Warnings: result.Warnings,
		}); err != nil {
			logError("encoding result: %v", err)
			return err
		}
	} else {
		fmt.Fprintln(out, result.Content)
	}

	if showStats, _ := cmd.Flags().GetBool("stats"); showStats {
		logInfo("%s", result.Stats.String())
	}

	return nil
}

// readInput resolves the input text: argument, --file, or stdin.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path) //#nosec G304 -- CLI tool reads user-specified input file
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		return string(data), nil
	}

	if len(args) > 0 {
		return args[0], nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// buildCleaner assembles a cleanup.Cleaner from the merged config,
// wiring up an LLM provider and vocabulary hints for aggressive mode.
func buildCleaner(cfg *config.Config) (*cleanup.Cleaner, error) {
	level, err := cleanup.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	cc := cleanup.DefaultConfig()
	cc.Level = level
	cc.PreserveIntentional = cfg.PreserveIntentional
	if cfg.Temperature > 0 {
		cc.Temperature = cfg.Temperature
	}
	if cfg.ChunkSize > 0 {
		cc.ChunkSize = cfg.ChunkSize
	}

	if level == cleanup.LevelAggressive {
		provider, err := buildProvider(cfg)
		if err != nil {
			// A broken provider setup degrades to rule-based cleanup,
			// same as a provider failing mid-request.
			logger.Warn("LLM provider unavailable, aggressive cleanup will fall back to rules", "error", err)
		}
		cc.Provider = provider

		hints, err := vocabulary.Load(cfg.VocabularyFile)
		if err != nil {
			logger.Warn("failed to load vocabulary", "error", err)
		}
		cc.VocabularyHints = hints
	}

	return cleanup.New(cc)
}

// buildProvider creates the LLM provider named in config, or auto-detects
// one from the environment.
func buildProvider(cfg *config.Config) (llm.Provider, error) {
	name := cfg.Provider
	apiKey := cfg.APIKey

	if name == "" {
		name, apiKey = llm.DetectProvider()
		logger.Debug("auto-detected provider", "provider", name)
	}

	pc := llm.DefaultProviderConfig()
	pc.APIKey = apiKey
	pc.Model = cfg.Model
	if pc.Model == "" {
		pc.Model = llm.GetDefaultModel(name)
	}

	return llm.NewProvider(name, pc)
}

// recordHistory appends the cleanup result to the JSONL history store.
func recordHistory(cfg *config.Config, raw string, result *cleanup.Result) error {
	path := cfg.HistoryPath
	if path == "" {
		path = history.DefaultPath()
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}

	_, err = store.Add(history.Record{
		Text:            strings.TrimSpace(result.Content),
		Raw:             raw,
		Level:           cfg.Level,
		Timestamp:       time.Now().UTC(),
		DurationSeconds: result.Stats.TotalDuration.Seconds(),
	})
	return err
}
