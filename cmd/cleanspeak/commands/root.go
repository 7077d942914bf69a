// Package commands implements the CLI commands for cleanspeak.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "cleanspeak",
	Short: "Remove speech disfluencies from transcribed text",
	Long: `Cleanspeak turns raw speech-to-text output into clean written text.

Filler words, stutter repetitions, false starts, and self-corrections
are removed while intentional emphasis and legitimate word usage are
preserved. The aggressive level hands the rewrite to an LLM and falls
back to rule-based cleanup on any failure.

Examples:
  # Clean text from stdin at the default level
  echo "So, um, I think we should, like, go" | cleanspeak clean

  # Light cleanup of a transcript file
  cleanspeak clean -f transcript.txt -l light

  # Aggressive cleanup with Groq
  GROQ_API_KEY=... cleanspeak clean -f transcript.txt -l aggressive

  # Show what was removed
  cleanspeak clean "I I think it's, uh, fine" --stats`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.cleanspeak.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".cleanspeak")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("CLEANSPEAK")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "GROQ_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
