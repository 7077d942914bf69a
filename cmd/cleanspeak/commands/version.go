package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmarsh/cleanspeak/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("json", false, "output as JSON")
	versionCmd.Flags().Bool("short", false, "print the bare version string")
}

func runVersion(cmd *cobra.Command, args []string) error {
	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Println(version.String())
		return nil
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out, err := json.MarshalIndent(version.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(version.Full())
	return nil
}
