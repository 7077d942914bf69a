package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmarsh/cleanspeak/internal/history"
	"github.com/dmarsh/cleanspeak/internal/logger"
	"github.com/dmarsh/cleanspeak/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect transcription history",
	Long: `Inspect the transcription history recorded by 'clean --history'.

History lives in a JSONL file (default ~/.cleanspeak/history.jsonl) and
keeps the most recent entries.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent history entries",
	RunE:  runHistoryList,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search history entries by text",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySearch,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historySearchCmd, historyClearCmd)

	historyCmd.PersistentFlags().String("path", "", "history file (default ~/.cleanspeak/history.jsonl)")

	for _, c := range []*cobra.Command{historyListCmd, historySearchCmd} {
		c.Flags().IntP("limit", "n", 20, "max entries to show (0=all)")
		c.Flags().String("format", "jsonl", "output format: json, jsonl, yaml")
	}
}

func openStore(cmd *cobra.Command) (*history.Store, error) {
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		path = viper.GetString("history_path")
	}
	if path == "" {
		path = history.DefaultPath()
	}
	return history.Open(path)
}

func writeRecords(cmd *cobra.Command, records []history.Record) error {
	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	w, err := output.NewWriter(os.Stdout, format)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{Debug: viper.GetBool("debug"), Quiet: viper.GetBool("quiet")})

	store, err := openStore(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(limit)
	if err != nil {
		logError("%v", err)
		return err
	}

	if len(records) == 0 {
		logInfo("history is empty")
		return nil
	}
	return writeRecords(cmd, records)
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{Debug: viper.GetBool("debug"), Quiet: viper.GetBool("quiet")})

	store, err := openStore(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.Search(args[0], limit)
	if err != nil {
		logError("%v", err)
		return err
	}

	if len(records) == 0 {
		logInfo("no entries match %q", args[0])
		return nil
	}
	return writeRecords(cmd, records)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{Debug: viper.GetBool("debug"), Quiet: viper.GetBool("quiet")})

	store, err := openStore(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	if err := store.Clear(); err != nil {
		logError("%v", err)
		return err
	}
	fmt.Println("history cleared")
	return nil
}
