package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmarsh/cleanspeak/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cleanspeak configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write a commented starter config to ~/.cleanspeak.yaml (or the
path given with --path). Refuses to overwrite an existing file.`,
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().String("path", "", "config file location (default ~/.cleanspeak.yaml)")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		path = config.DefaultPath()
	}

	if err := config.WriteDefault(path); err != nil {
		logError("%v", err)
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
